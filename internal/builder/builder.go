// Package builder holds a working composition owned by a single editing
// session. Every unit mutation recomputes synergies; structural limits (unit
// and item caps) are rejected at the call, and the remaining save-time rules
// are checked by ValidateForSave.
package builder

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/synergy"
	"gorm.io/datatypes"
)

// Metadata is the free-text and enum part of a composition.
type Metadata struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Tier        domain.Rank       `json:"tier"`
	VideoURL    string            `json:"videoUrl"`
	TacterURL   string            `json:"tacterUrl"`
	TFTSet      string            `json:"tftSet"`
	Patch       string            `json:"patch"`
	Playstyle   string            `json:"playstyle"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	IsActive    bool              `json:"isActive"`
}

// Builder is not safe for concurrent use.
type Builder struct {
	cat  *catalog.Catalog
	calc *synergy.Calculator

	units     []*domain.SelectedUnit
	synergies []synergy.ActiveSynergy

	meta        Metadata
	augments    []string
	artifacts   []string
	positioning []domain.Position
}

// New returns an empty builder for the given catalog with rank B and the
// catalog's set label.
func New(cat *catalog.Catalog) *Builder {
	return &Builder{
		cat:  cat,
		calc: synergy.NewCalculator(cat.Tags()),
		meta: Metadata{
			Tier:     domain.DefaultRank,
			TFTSet:   cat.SetLabel(),
			IsActive: true,
		},
	}
}

func (b *Builder) recompute() {
	b.synergies = b.calc.Compute(b.units)
}

func (b *Builder) find(id string) (*domain.SelectedUnit, int, error) {
	for i, su := range b.units {
		if su.ID == id {
			return su, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", domain.ErrSelectedUnitNotFound, id)
}

// AddUnit selects the catalog unit identified by key (name or apiName) with
// the default star level and no items. The returned value is a copy; further
// edits go through the builder by its ID.
func (b *Builder) AddUnit(key string) (domain.SelectedUnit, error) {
	if len(b.units) >= domain.MaxUnitsPerComp {
		return domain.SelectedUnit{}, domain.ErrUnitLimit
	}

	def, ok := b.cat.Unit(key)
	if !ok {
		return domain.SelectedUnit{}, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, key)
	}

	su := &domain.SelectedUnit{
		ID:    uuid.NewString(),
		Unit:  def,
		Items: []string{},
		Stars: domain.DefaultStarLevel,
	}
	b.units = append(b.units, su)
	b.recompute()

	return copyUnit(su), nil
}

func (b *Builder) RemoveUnit(id string) error {
	_, i, err := b.find(id)
	if err != nil {
		return err
	}

	b.units = append(b.units[:i], b.units[i+1:]...)
	b.recompute()
	return nil
}

// SetItems replaces a unit's item list. Duplicates are allowed.
func (b *Builder) SetItems(id string, items []string) error {
	su, _, err := b.find(id)
	if err != nil {
		return err
	}
	if len(items) > domain.MaxItemsPerUnit {
		return domain.ErrItemLimit
	}
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			return domain.ErrEmptyValue
		}
	}

	su.Items = append([]string{}, items...)
	b.recompute()
	return nil
}

func (b *Builder) AddItem(id, item string) error {
	su, _, err := b.find(id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(item) == "" {
		return domain.ErrEmptyValue
	}
	if len(su.Items) >= domain.MaxItemsPerUnit {
		return domain.ErrItemLimit
	}

	su.Items = append(su.Items, item)
	b.recompute()
	return nil
}

func (b *Builder) RemoveItem(id string, index int) error {
	su, _, err := b.find(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(su.Items) {
		return domain.ErrIndexOutOfRange
	}

	su.Items = append(su.Items[:index], su.Items[index+1:]...)
	b.recompute()
	return nil
}

// ToggleLead flips the lead flag. Several units may be lead at once.
func (b *Builder) ToggleLead(id string) error {
	su, _, err := b.find(id)
	if err != nil {
		return err
	}

	su.IsLead = !su.IsLead
	b.recompute()
	return nil
}

func (b *Builder) SetStars(id string, stars int) error {
	su, _, err := b.find(id)
	if err != nil {
		return err
	}
	if !domain.ValidStarLevel(stars) {
		return domain.ErrInvalidStarLevel
	}

	su.Stars = stars
	b.recompute()
	return nil
}

func (b *Builder) AddAugment(value string) error {
	return addText(&b.augments, value)
}

func (b *Builder) RemoveAugment(index int) error {
	return removeText(&b.augments, index)
}

func (b *Builder) AddArtifact(value string) error {
	return addText(&b.artifacts, value)
}

func (b *Builder) RemoveArtifact(index int) error {
	return removeText(&b.artifacts, index)
}

func addText(list *[]string, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.ErrEmptyValue
	}
	*list = append(*list, value)
	return nil
}

func removeText(list *[]string, index int) error {
	if index < 0 || index >= len(*list) {
		return domain.ErrIndexOutOfRange
	}
	*list = append((*list)[:index], (*list)[index+1:]...)
	return nil
}

func (b *Builder) SetName(name string)               { b.meta.Name = name }
func (b *Builder) SetDescription(desc string)        { b.meta.Description = desc }
func (b *Builder) SetRank(rank domain.Rank)          { b.meta.Tier = rank }
func (b *Builder) SetVideoURL(url string)            { b.meta.VideoURL = strings.TrimSpace(url) }
func (b *Builder) SetTacterURL(url string)           { b.meta.TacterURL = strings.TrimSpace(url) }
func (b *Builder) SetTFTSet(set string)              { b.meta.TFTSet = set }
func (b *Builder) SetPatch(patch string)             { b.meta.Patch = patch }
func (b *Builder) SetPlaystyle(style string)         { b.meta.Playstyle = style }
func (b *Builder) SetDifficulty(d domain.Difficulty) { b.meta.Difficulty = d }
func (b *Builder) SetActive(active bool)             { b.meta.IsActive = active }

// SetMetadata replaces all metadata at once.
func (b *Builder) SetMetadata(m Metadata) {
	m.VideoURL = strings.TrimSpace(m.VideoURL)
	m.TacterURL = strings.TrimSpace(m.TacterURL)
	b.meta = m
}

// SetPositioning stores board placements as given.
func (b *Builder) SetPositioning(positions []domain.Position) {
	b.positioning = append([]domain.Position(nil), positions...)
}

func (b *Builder) Metadata() Metadata {
	return b.meta
}

// Units returns a copy of the current selection.
func (b *Builder) Units() []domain.SelectedUnit {
	out := make([]domain.SelectedUnit, len(b.units))
	for i, su := range b.units {
		out[i] = copyUnit(su)
	}
	return out
}

// Unit returns a copy of one selected unit.
func (b *Builder) Unit(id string) (domain.SelectedUnit, bool) {
	su, _, err := b.find(id)
	if err != nil {
		return domain.SelectedUnit{}, false
	}
	return copyUnit(su), true
}

func copyUnit(su *domain.SelectedUnit) domain.SelectedUnit {
	out := *su
	out.Items = append([]string{}, su.Items...)
	return out
}

// Synergies returns the result of the last recomputation, inactive tags included.
func (b *Builder) Synergies() []synergy.ActiveSynergy {
	return append([]synergy.ActiveSynergy(nil), b.synergies...)
}

func (b *Builder) Augments() []string {
	return append([]string{}, b.augments...)
}

func (b *Builder) Artifacts() []string {
	return append([]string{}, b.artifacts...)
}

func (b *Builder) Positioning() []domain.Position {
	return append([]domain.Position{}, b.positioning...)
}

// Validate runs every save rule and returns the complete list of failures.
func (b *Builder) Validate() domain.ValidationErrors {
	var errs domain.ValidationErrors

	name := strings.TrimSpace(b.meta.Name)
	switch {
	case name == "":
		errs.Add("name", "is required")
	case len([]rune(name)) > domain.MaxCompNameLength:
		errs.Add("name", fmt.Sprintf("must be at most %d characters", domain.MaxCompNameLength))
	}

	if len([]rune(b.meta.Description)) > domain.MaxDescriptionLength {
		errs.Add("description", fmt.Sprintf("must be at most %d characters", domain.MaxDescriptionLength))
	}

	if len(b.units) < domain.MinUnitsPerComp {
		errs.Add("champions", "at least one champion is required")
	}
	for i, su := range b.units {
		if len(su.Items) > domain.MaxItemsPerUnit {
			errs.Add(fmt.Sprintf("champions[%d].items", i), fmt.Sprintf("must have at most %d entries", domain.MaxItemsPerUnit))
		}
		if !domain.ValidStarLevel(su.Stars) {
			errs.Add(fmt.Sprintf("champions[%d].stars", i), "must be 1, 2 or 3")
		}
	}

	b.recompute()
	if len(synergy.Active(b.synergies)) == 0 {
		errs.Add("synergies", "no active synergies")
	}

	if b.meta.VideoURL != "" && !domain.ValidVideoURL(b.meta.VideoURL) {
		errs.Add("videoUrl", "must be a valid YouTube URL")
	}
	if b.meta.TacterURL != "" && !domain.ValidTacterURL(b.meta.TacterURL) {
		errs.Add("tacterUrl", "must be a valid Tacter.gg URL")
	}

	if !b.meta.Tier.IsValid() {
		errs.Add("tier", "must be one of S, A, B, C, D")
	}
	if b.meta.Difficulty != "" && !b.meta.Difficulty.IsValid() {
		errs.Add("difficulty", "must be one of Easy, Medium, Hard")
	}

	return errs
}

// ValidateForSave checks every save rule and, on success, returns a new record
// with the active synergies frozen as snapshots. The error is a
// domain.ValidationErrors listing every failure.
func (b *Builder) ValidateForSave() (*domain.Composition, error) {
	if err := b.Validate().Err(); err != nil {
		return nil, err
	}

	champions := make([]domain.ChampionEntry, len(b.units))
	for i, su := range b.units {
		champions[i] = domain.ChampionEntry{
			Name:    su.Unit.Name,
			Cost:    su.Unit.Cost,
			Items:   append([]string{}, su.Items...),
			IsCarry: su.IsLead,
			Stars:   su.Stars,
		}
	}

	active := synergy.Active(b.synergies)
	snapshot := make([]domain.SynergyEntry, len(active))
	for i, s := range active {
		snapshot[i] = domain.SynergyEntry{
			Name:     s.Tag.Name,
			Tier:     s.ActiveTier,
			IsActive: true,
		}
	}

	return &domain.Composition{
		Name:        strings.TrimSpace(b.meta.Name),
		Description: b.meta.Description,
		Champions:   datatypes.NewJSONSlice(champions),
		Synergies:   datatypes.NewJSONSlice(snapshot),
		Tier:        b.meta.Tier,
		Positioning: datatypes.NewJSONSlice(b.Positioning()),
		Augments:    datatypes.NewJSONSlice(b.Augments()),
		Artifacts:   datatypes.NewJSONSlice(b.Artifacts()),
		VideoURL:    b.meta.VideoURL,
		TacterURL:   b.meta.TacterURL,
		TFTSet:      b.meta.TFTSet,
		Patch:       b.meta.Patch,
		Playstyle:   b.meta.Playstyle,
		Difficulty:  b.meta.Difficulty,
		IsActive:    b.meta.IsActive,
	}, nil
}
