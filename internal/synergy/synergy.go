// Package synergy derives which tag bonuses a set of selected units activates.
//
// The calculation is pure: counts are taken once per selected unit and tag
// (star level, items and the lead flag never matter), each counted tag is
// resolved against the tag catalog, and the highest threshold whose minimum is
// met becomes the active tier. Tags that are counted but absent from the
// catalog are dropped rather than reported as errors.
package synergy

import (
	"sort"

	"github.com/snoody/tft-tierlist/internal/domain"
)

// ActiveSynergy is a derived tag bonus. ActiveTier is 0 when no threshold is met,
// otherwise the 1-based index of the highest threshold reached.
//
// MinUnits, MaxUnits and Style describe the active threshold, or the first
// threshold when the tag is inactive. They are zero when the tag has no thresholds.
type ActiveSynergy struct {
	Tag        *domain.TagDefinition `json:"tag"`
	Count      int                   `json:"count"`
	ActiveTier int                   `json:"activeTier"`
	MinUnits   int                   `json:"minUnits"`
	MaxUnits   int                   `json:"maxUnits"`
	Style      int                   `json:"style"`
}

// IsActive reports whether at least the first threshold is met.
func (s ActiveSynergy) IsActive() bool {
	return s.ActiveTier > 0
}

// UnitsToNext returns how many more units are needed for the next threshold,
// or 0 when the highest threshold is already reached.
func (s ActiveSynergy) UnitsToNext() int {
	if s.Tag == nil || s.ActiveTier >= len(s.Tag.Thresholds) {
		return 0
	}
	return s.Tag.Thresholds[s.ActiveTier].MinUnits - s.Count
}

// Calculator resolves tag identifiers against a fixed tag catalog.
type Calculator struct {
	tags  []domain.TagDefinition
	index map[string]int
}

// NewCalculator indexes tags by apiName and display name.
func NewCalculator(tags []domain.TagDefinition) *Calculator {
	c := &Calculator{
		tags:  tags,
		index: make(map[string]int, len(tags)*2),
	}
	for i, t := range tags {
		for _, key := range []string{t.ID, t.Name} {
			if key == "" {
				continue
			}
			if _, exists := c.index[key]; !exists {
				c.index[key] = i
			}
		}
	}
	return c
}

// Compute returns one entry per catalog-resolved tag carried by the selection,
// ordered by ActiveTier then Count (both descending), ties in first-seen order.
func (c *Calculator) Compute(units []*domain.SelectedUnit) []ActiveSynergy {
	counts := make(map[string]int)
	var order []string

	for _, su := range units {
		if su == nil || su.Unit == nil {
			continue
		}
		for _, tag := range su.Unit.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	result := make([]ActiveSynergy, 0, len(order))
	for _, key := range order {
		i, ok := c.index[key]
		if !ok {
			continue
		}
		result = append(result, evaluate(&c.tags[i], counts[key]))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].ActiveTier != result[j].ActiveTier {
			return result[i].ActiveTier > result[j].ActiveTier
		}
		return result[i].Count > result[j].Count
	})

	return result
}

func evaluate(tag *domain.TagDefinition, count int) ActiveSynergy {
	s := ActiveSynergy{Tag: tag, Count: count}

	for i := len(tag.Thresholds) - 1; i >= 0; i-- {
		if count >= tag.Thresholds[i].MinUnits {
			s.ActiveTier = i + 1
			break
		}
	}

	ref := s.ActiveTier - 1
	if ref < 0 {
		ref = 0
	}
	if ref < len(tag.Thresholds) {
		s.MinUnits = tag.Thresholds[ref].MinUnits
		s.MaxUnits = tag.Thresholds[ref].MaxUnits
		s.Style = tag.Thresholds[ref].Style
	}

	return s
}

// Compute is a convenience for one-off calculations.
func Compute(units []*domain.SelectedUnit, tags []domain.TagDefinition) []ActiveSynergy {
	return NewCalculator(tags).Compute(units)
}

// Active filters to synergies with ActiveTier > 0, preserving order.
func Active(synergies []ActiveSynergy) []ActiveSynergy {
	out := make([]ActiveSynergy, 0, len(synergies))
	for _, s := range synergies {
		if s.IsActive() {
			out = append(out, s)
		}
	}
	return out
}

// Summary is the wire form of an ActiveSynergy: the tag reduced to its
// identity plus the derived progress fields.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Count       int    `json:"count"`
	ActiveTier  int    `json:"activeTier"`
	IsActive    bool   `json:"isActive"`
	MinUnits    int    `json:"minUnits"`
	MaxUnits    int    `json:"maxUnits"`
	Style       int    `json:"style"`
	UnitsToNext int    `json:"unitsToNext"`
}

func Summarize(synergies []ActiveSynergy) []Summary {
	out := make([]Summary, len(synergies))
	for i, s := range synergies {
		out[i] = Summary{
			ID:          s.Tag.ID,
			Name:        s.Tag.Name,
			Icon:        s.Tag.Icon,
			Count:       s.Count,
			ActiveTier:  s.ActiveTier,
			IsActive:    s.IsActive(),
			MinUnits:    s.MinUnits,
			MaxUnits:    s.MaxUnits,
			Style:       s.Style,
			UnitsToNext: s.UnitsToNext(),
		}
	}
	return out
}
