// Package cli implements the tierctl commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/config"
	"github.com/snoody/tft-tierlist/internal/logging"
	"github.com/snoody/tft-tierlist/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultCatalogURL = "https://raw.communitydragon.org/latest/cdragon/tft/en_us.json"

var (
	catalogPath string
	catalogSet  string
	formatFlag  string
	logLevel    string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "tierctl",
	Short:         "Work with TFT composition drafts",
	Long:          "Preview synergies, validate composition drafts and load them into a tierlist database or server.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		if formatFlag != "json" && formatFlag != "text" {
			return fmt.Errorf("unknown format %q: use json or text", formatFlag)
		}
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "Game data file (default: $CATALOG_PATH, else download $CATALOG_URL)")
	RootCmd.PersistentFlags().StringVar(&catalogSet, "set", "", "Set key inside the game data (default: $CATALOG_SET or set16)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level for diagnostics on stderr")
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	logger, err := logging.New("production", logLevel)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func loadCatalog(ctx context.Context, logger *zap.Logger) (*catalog.Catalog, error) {
	cfg := &config.Config{
		CatalogPath: firstNonEmpty(catalogPath, os.Getenv("CATALOG_PATH")),
		CatalogURL:  firstNonEmpty(os.Getenv("CATALOG_URL"), defaultCatalogURL),
		CatalogSet:  firstNonEmpty(catalogSet, os.Getenv("CATALOG_SET"), "set16"),
	}
	return service.LoadCatalog(ctx, cfg, logger)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
