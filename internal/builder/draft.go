package builder

import (
	"errors"
	"fmt"

	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/domain"
)

// DraftUnit references a catalog unit by name or apiName.
type DraftUnit struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Items   []string `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
	IsCarry bool     `json:"isCarry,omitempty" yaml:"isCarry,omitempty" toml:"isCarry,omitempty"`
	Stars   int      `json:"stars,omitempty" yaml:"stars,omitempty" toml:"stars,omitempty"`
}

// Draft is the save payload for a composition. Synergies are never accepted
// from input; they are always derived from the champions.
type Draft struct {
	Name        string            `json:"name" yaml:"name" toml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Champions   []DraftUnit       `json:"champions" yaml:"champions" toml:"champions"`
	Tier        domain.Rank       `json:"tier,omitempty" yaml:"tier,omitempty" toml:"tier,omitempty"`
	Positioning []domain.Position `json:"positioning,omitempty" yaml:"positioning,omitempty" toml:"positioning,omitempty"`
	Augments    []string          `json:"augments,omitempty" yaml:"augments,omitempty" toml:"augments,omitempty"`
	Artifacts   []string          `json:"artifacts,omitempty" yaml:"artifacts,omitempty" toml:"artifacts,omitempty"`
	VideoURL    string            `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty" toml:"videoUrl,omitempty"`
	TacterURL   string            `json:"tacterUrl,omitempty" yaml:"tacterUrl,omitempty" toml:"tacterUrl,omitempty"`
	TFTSet      string            `json:"tftSet,omitempty" yaml:"tftSet,omitempty" toml:"tftSet,omitempty"`
	Patch       string            `json:"patch,omitempty" yaml:"patch,omitempty" toml:"patch,omitempty"`
	Playstyle   string            `json:"playstyle,omitempty" yaml:"playstyle,omitempty" toml:"playstyle,omitempty"`
	Difficulty  domain.Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty" toml:"difficulty,omitempty"`
	IsActive    *bool             `json:"isActive,omitempty" yaml:"isActive,omitempty" toml:"isActive,omitempty"`
}

// FromDraft replays a draft through the builder mutations. Every rejected
// mutation is reported; the returned error is a domain.ValidationErrors.
// Save rules are not checked here, call ValidateForSave for that.
func FromDraft(cat *catalog.Catalog, d *Draft) (*Builder, error) {
	b := New(cat)
	var errs domain.ValidationErrors

	for i, du := range d.Champions {
		field := fmt.Sprintf("champions[%d]", i)

		su, err := b.AddUnit(du.Name)
		if err != nil {
			if errors.Is(err, domain.ErrUnitLimit) {
				errs.Add("champions", fmt.Sprintf("must have at most %d entries", domain.MaxUnitsPerComp))
				break
			}
			errs.Add(field, fmt.Sprintf("unknown champion %q", du.Name))
			continue
		}

		if len(du.Items) > 0 {
			if err := b.SetItems(su.ID, du.Items); err != nil {
				errs.Add(field+".items", itemReason(err))
			}
		}
		if du.Stars != 0 {
			if err := b.SetStars(su.ID, du.Stars); err != nil {
				errs.Add(field+".stars", "must be 1, 2 or 3")
			}
		}
		if du.IsCarry {
			_ = b.ToggleLead(su.ID)
		}
	}

	for i, a := range d.Augments {
		if err := b.AddAugment(a); err != nil {
			errs.Add(fmt.Sprintf("augments[%d]", i), "must not be empty")
		}
	}
	for i, a := range d.Artifacts {
		if err := b.AddArtifact(a); err != nil {
			errs.Add(fmt.Sprintf("artifacts[%d]", i), "must not be empty")
		}
	}

	meta := b.Metadata()
	meta.Name = d.Name
	meta.Description = d.Description
	if d.Tier != "" {
		meta.Tier = d.Tier
	}
	meta.VideoURL = d.VideoURL
	meta.TacterURL = d.TacterURL
	if d.TFTSet != "" {
		meta.TFTSet = d.TFTSet
	}
	meta.Patch = d.Patch
	meta.Playstyle = d.Playstyle
	meta.Difficulty = d.Difficulty
	if d.IsActive != nil {
		meta.IsActive = *d.IsActive
	}
	b.SetMetadata(meta)
	b.SetPositioning(d.Positioning)

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

func itemReason(err error) string {
	if errors.Is(err, domain.ErrItemLimit) {
		return fmt.Sprintf("must have at most %d entries", domain.MaxItemsPerUnit)
	}
	return "must not contain empty entries"
}

// DraftFromComposition rebuilds the editable draft of a stored record.
func DraftFromComposition(c *domain.Composition) *Draft {
	champions := make([]DraftUnit, len(c.Champions))
	for i, ch := range c.Champions {
		champions[i] = DraftUnit{
			Name:    ch.Name,
			Items:   append([]string(nil), ch.Items...),
			IsCarry: ch.IsCarry,
			Stars:   ch.Stars,
		}
	}

	active := c.IsActive
	return &Draft{
		Name:        c.Name,
		Description: c.Description,
		Champions:   champions,
		Tier:        c.Tier,
		Positioning: append([]domain.Position(nil), c.Positioning...),
		Augments:    append([]string(nil), c.Augments...),
		Artifacts:   append([]string(nil), c.Artifacts...),
		VideoURL:    c.VideoURL,
		TacterURL:   c.TacterURL,
		TFTSet:      c.TFTSet,
		Patch:       c.Patch,
		Playstyle:   c.Playstyle,
		Difficulty:  c.Difficulty,
		IsActive:    &active,
	}
}
