package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/snoody/tft-tierlist/internal/domain"
)

// DefaultSet is the game data set loaded when none is configured.
const DefaultSet = "set16"

type setData struct {
	Champions []domain.UnitDefinition `json:"champions"`
	Items     []domain.ItemDefinition `json:"items"`
	Traits    []domain.TagDefinition  `json:"traits"`
}

// Parse reads game data shaped as {"<set>": {"champions": [...], "items": [...], "traits": [...]}}.
func Parse(r io.Reader, set string) (*Catalog, error) {
	var sets map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&sets); err != nil {
		return nil, fmt.Errorf("failed to decode game data: %w", err)
	}

	raw, ok := sets[set]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogSetMissing, set)
	}

	var data setData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", set, err)
	}
	if len(data.Champions) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogEmpty, set)
	}

	for i := range data.Traits {
		thresholds := data.Traits[i].Thresholds
		sort.SliceStable(thresholds, func(a, b int) bool {
			return thresholds[a].MinUnits < thresholds[b].MinUnits
		})
	}

	return New(set, data.Champions, data.Traits, data.Items), nil
}

// LoadFile parses the game data file at path.
func LoadFile(path, set string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open game data: %w", err)
	}
	defer f.Close()

	return Parse(f, set)
}
