package cli

import (
	"errors"

	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/metrics"
	"github.com/snoody/tft-tierlist/internal/service"
	"github.com/snoody/tft-tierlist/internal/synergy"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "synergies <unit>...",
		Short: "Preview the synergies a set of units activates",
		Long:  "Compute synergies for units given by name or apiName. Each unit counts once per trait.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSynergies,
	}
	cmd.Flags().Bool("active", false, "Only show active synergies")

	RootCmd.AddCommand(cmd)
}

func runSynergies(cmd *cobra.Command, args []string) error {
	activeOnly, _ := cmd.Flags().GetBool("active")

	logger := newLogger()
	defer logger.Sync()

	cat, err := loadCatalog(cmd.Context(), logger)
	if err != nil {
		return err
	}

	svc := service.NewCatalogService(cat, metrics.NewCollector("tierctl"))
	list, err := svc.PreviewSynergies(args)
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			printValidationErrors(cmd.ErrOrStderr(), "synergies", verrs)
		}
		return err
	}
	if activeOnly {
		list = synergy.Active(list)
	}

	summaries := synergy.Summarize(list)
	if formatFlag == "json" {
		return printJSON(cmd.OutOrStdout(), summaries)
	}
	printSynergies(cmd.OutOrStdout(), summaries)
	return nil
}
