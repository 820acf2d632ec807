package domain

import "encoding/json"

// UnitDefinition is a selectable combat piece from the game data set.
type UnitDefinition struct {
	ID            string          `json:"apiName"`       // e.g., "TFT16_Warwick"
	Name          string          `json:"name"`          // Display name
	CharacterName string          `json:"characterName"` // e.g., "TFT16_Warwick"
	Cost          int             `json:"cost"`          // 1-5
	Tags          []string        `json:"traits"`        // Tag identifiers, in game-data order
	Role          string          `json:"role,omitempty"`
	Icon          string          `json:"icon,omitempty"`
	Stats         json.RawMessage `json:"stats,omitempty"`
}

// HasTag reports whether the unit carries the given tag identifier.
func (u *UnitDefinition) HasTag(tag string) bool {
	for _, t := range u.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ActivationThreshold is a (minimum unit count -> effect tier) breakpoint for a tag.
type ActivationThreshold struct {
	MinUnits  int                `json:"minUnits"`
	MaxUnits  int                `json:"maxUnits"`
	Style     int                `json:"style"` // 1 bronze, 2 silver, 3 gold, 4 chromatic
	Variables map[string]float64 `json:"variables,omitempty"`
}

// TagDefinition is a trait shared by units. Thresholds are ordered ascending by MinUnits.
type TagDefinition struct {
	ID          string                `json:"apiName"`
	Name        string                `json:"name"`
	Description string                `json:"desc"`
	Icon        string                `json:"icon"`
	Thresholds  []ActivationThreshold `json:"effects"`
}

// ItemDefinition is an equippable item. Composition lists the basic items it is built from.
type ItemDefinition struct {
	ID          string   `json:"apiName"`
	Name        string   `json:"name"`
	Description string   `json:"desc"`
	Icon        string   `json:"icon"`
	Composition []string `json:"from"`
	Unique      bool     `json:"unique,omitempty"`
}

// IsCombined reports whether the item is crafted from other items.
func (i *ItemDefinition) IsCombined() bool {
	return len(i.Composition) > 0
}

const (
	MaxItemsPerUnit      = 3
	MinUnitsPerComp      = 1
	MaxUnitsPerComp      = 10
	DefaultStarLevel     = 2
	MaxCompNameLength    = 100
	MaxDescriptionLength = 500
	MinUnitCost          = 1
	MaxUnitCost          = 5
)

// SelectedUnit is a unit placed in a working composition.
// Unit points into the catalog and must not be modified.
type SelectedUnit struct {
	ID     string          `json:"id"`
	Unit   *UnitDefinition `json:"unit"`
	Items  []string        `json:"items"`
	Stars  int             `json:"stars"`
	IsLead bool            `json:"isCarry"`
}

// ValidStarLevel reports whether stars is in {1,2,3}.
func ValidStarLevel(stars int) bool {
	return stars >= 1 && stars <= 3
}
