package cli

import (
	"fmt"
	"os"

	"github.com/snoody/tft-tierlist/internal/metrics"
	"github.com/snoody/tft-tierlist/internal/repository/postgres"
	"github.com/snoody/tft-tierlist/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seed <draft>...",
		Short: "Insert drafts straight into the database",
		Long:  "Validate each draft and insert it as a new composition. Stops at the first draft that fails.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSeed,
	}
	cmd.Flags().String("database-url", "", "Postgres URL (default: $DATABASE_URL)")

	RootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	dsn, _ := cmd.Flags().GetString("database-url")
	dsn = firstNonEmpty(dsn, os.Getenv("DATABASE_URL"))
	if dsn == "" {
		return fmt.Errorf("--database-url or DATABASE_URL is required")
	}

	logger := newLogger()
	defer logger.Sync()

	cat, err := loadCatalog(cmd.Context(), logger)
	if err != nil {
		return err
	}

	db, err := postgres.NewConnection(dsn, "production")
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := service.NewCompositionService(
		postgres.NewCompositionRepository(db),
		cat,
		metrics.NewCollector("tierctl"),
		logger.Named("seed"),
	)

	out := cmd.OutOrStdout()
	for _, path := range args {
		draft, err := LoadDraft(path)
		if err != nil {
			return err
		}

		comp, err := svc.Create(cmd.Context(), draft)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		logger.Debug("seeded composition", zap.String("file", path), zap.String("id", comp.ID.String()))
		fmt.Fprintf(out, "%s\t%s\t%s\n", comp.ID, comp.Tier, comp.Name)
	}
	return nil
}
