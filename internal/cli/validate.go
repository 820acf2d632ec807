package cli

import (
	"errors"
	"fmt"

	"github.com/snoody/tft-tierlist/internal/builder"
	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/spf13/cobra"
)

var errInvalidDrafts = errors.New("one or more drafts are invalid")

type validationReport struct {
	File      string                   `json:"file"`
	Valid     bool                     `json:"valid"`
	Name      string                   `json:"name,omitempty"`
	Tier      domain.Rank              `json:"tier,omitempty"`
	Synergies []string                 `json:"synergies,omitempty"`
	Errors    []domain.ValidationError `json:"errors,omitempty"`
	Problem   string                   `json:"problem,omitempty"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "validate <draft>...",
		Short: "Check drafts against every save rule",
		Long:  "Replay each draft through the builder and report every rule it breaks. Drafts may be YAML, TOML or JSON.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}

	RootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	cat, err := loadCatalog(cmd.Context(), logger)
	if err != nil {
		return err
	}

	reports := make([]validationReport, 0, len(args))
	failed := false
	for _, path := range args {
		report := validateFile(cat, path)
		if !report.Valid {
			failed = true
		}
		reports = append(reports, report)
	}

	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		if err := printJSON(out, reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			switch {
			case r.Valid:
				fmt.Fprintf(out, "%s: ok %q (%s) synergies: %s\n", r.File, r.Name, r.Tier, joinOrDash(r.Synergies))
			case r.Problem != "":
				fmt.Fprintf(out, "%s: %s\n", r.File, r.Problem)
			default:
				printValidationErrors(out, r.File, r.Errors)
			}
		}
	}

	if failed {
		return errInvalidDrafts
	}
	return nil
}

func validateFile(cat *catalog.Catalog, path string) validationReport {
	report := validationReport{File: path}

	draft, err := LoadDraft(path)
	if err != nil {
		report.Problem = err.Error()
		return report
	}

	record, err := validateDraft(cat, draft)
	if err != nil {
		var verrs domain.ValidationErrors
		if !errors.As(err, &verrs) {
			report.Problem = err.Error()
			return report
		}
		report.Errors = verrs
		return report
	}

	report.Valid = true
	report.Name = record.Name
	report.Tier = record.Tier
	report.Synergies = record.ActiveSynergyNames()
	return report
}

// validateDraft runs the same checks a save would, without storing anything.
func validateDraft(cat *catalog.Catalog, draft *builder.Draft) (*domain.Composition, error) {
	b, err := builder.FromDraft(cat, draft)
	if err != nil {
		return nil, err
	}
	record, err := b.ValidateForSave()
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}
