package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/synergy"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSynergies(w io.Writer, summaries []synergy.Summary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "no synergies")
		return
	}
	for _, s := range summaries {
		state := "inactive"
		if s.IsActive {
			state = fmt.Sprintf("tier %d", s.ActiveTier)
		}
		line := fmt.Sprintf("%-16s %2d  %s", s.Name, s.Count, state)
		if s.UnitsToNext > 0 {
			line += fmt.Sprintf(" (+%d for next)", s.UnitsToNext)
		}
		fmt.Fprintln(w, line)
	}
}

func printValidationErrors(w io.Writer, prefix string, errs domain.ValidationErrors) {
	for _, e := range errs {
		fmt.Fprintf(w, "%s: %s %s\n", prefix, e.Field, e.Reason)
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
