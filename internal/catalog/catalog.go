// Package catalog holds the immutable game reference data (units, tags, items)
// for one game data set. A Catalog is built once and shared read-only.
package catalog

import (
	"sort"
	"strings"

	"github.com/snoody/tft-tierlist/internal/domain"
)

type Catalog struct {
	set   string
	units []domain.UnitDefinition
	tags  []domain.TagDefinition
	items []domain.ItemDefinition

	unitIndex map[string]int
	tagIndex  map[string]int
	itemIndex map[string]int
}

// New copies the given definitions into a new Catalog and indexes them by
// display name and apiName. Later entries never shadow earlier ones.
func New(set string, units []domain.UnitDefinition, tags []domain.TagDefinition, items []domain.ItemDefinition) *Catalog {
	c := &Catalog{
		set:       set,
		units:     append([]domain.UnitDefinition(nil), units...),
		tags:      append([]domain.TagDefinition(nil), tags...),
		items:     append([]domain.ItemDefinition(nil), items...),
		unitIndex: make(map[string]int, len(units)*3),
		tagIndex:  make(map[string]int, len(tags)*2),
		itemIndex: make(map[string]int, len(items)*2),
	}

	for i, u := range c.units {
		index(c.unitIndex, i, u.ID, u.Name, u.CharacterName)
	}
	for i, t := range c.tags {
		index(c.tagIndex, i, t.ID, t.Name)
	}
	for i, it := range c.items {
		index(c.itemIndex, i, it.ID, it.Name)
	}

	return c
}

func index(m map[string]int, i int, keys ...string) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, exists := m[k]; !exists {
			m[k] = i
		}
	}
}

// Set returns the game data set key, e.g. "set16".
func (c *Catalog) Set() string {
	return c.set
}

// SetLabel returns a display label for the set, e.g. "Set 16".
func (c *Catalog) SetLabel() string {
	n := strings.TrimPrefix(strings.ToLower(c.set), "set")
	if n == "" || n == strings.ToLower(c.set) {
		return c.set
	}
	return "Set " + n
}

func (c *Catalog) Units() []domain.UnitDefinition {
	return c.units
}

func (c *Catalog) Tags() []domain.TagDefinition {
	return c.tags
}

func (c *Catalog) Items() []domain.ItemDefinition {
	return c.items
}

// Unit looks up a unit by apiName, display name or character name.
func (c *Catalog) Unit(key string) (*domain.UnitDefinition, bool) {
	i, ok := c.unitIndex[key]
	if !ok {
		return nil, false
	}
	return &c.units[i], true
}

// Tag looks up a tag by apiName or display name.
func (c *Catalog) Tag(key string) (*domain.TagDefinition, bool) {
	i, ok := c.tagIndex[key]
	if !ok {
		return nil, false
	}
	return &c.tags[i], true
}

// Item looks up an item by apiName or display name.
func (c *Catalog) Item(key string) (*domain.ItemDefinition, bool) {
	i, ok := c.itemIndex[key]
	if !ok {
		return nil, false
	}
	return &c.items[i], true
}

// PlayableUnits filters out pseudo-units (armory keys, emblem armories) and
// anything outside the 1-5 cost range or without tags. Sorted by cost, then name.
func (c *Catalog) PlayableUnits() []domain.UnitDefinition {
	out := make([]domain.UnitDefinition, 0, len(c.units))
	for _, u := range c.units {
		if isPlayable(&u) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func isPlayable(u *domain.UnitDefinition) bool {
	return u.Cost >= domain.MinUnitCost &&
		u.Cost <= domain.MaxUnitCost &&
		len(u.Tags) > 0 &&
		!strings.Contains(u.ID, "ArmoryKey") &&
		!strings.Contains(u.ID, "EmblemArmory")
}

// UnitsByCost returns the playable units of the given cost.
func (c *Catalog) UnitsByCost(cost int) []domain.UnitDefinition {
	var out []domain.UnitDefinition
	for _, u := range c.PlayableUnits() {
		if u.Cost == cost {
			out = append(out, u)
		}
	}
	return out
}

// BasicItems returns components, i.e. items not crafted from anything.
func (c *Catalog) BasicItems() []domain.ItemDefinition {
	var out []domain.ItemDefinition
	for _, it := range c.items {
		if !it.IsCombined() {
			out = append(out, it)
		}
	}
	return out
}

// CombinedItems returns items crafted from components.
func (c *Catalog) CombinedItems() []domain.ItemDefinition {
	var out []domain.ItemDefinition
	for _, it := range c.items {
		if it.IsCombined() {
			out = append(out, it)
		}
	}
	return out
}
