package catalog_test

import (
	"strings"
	"testing"

	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.LoadFile("testdata/set16.json", "set16")
	require.NoError(t, err)
	return cat
}

func TestLoadFile(t *testing.T) {
	cat := loadSample(t)

	assert.Equal(t, "set16", cat.Set())
	assert.Equal(t, "Set 16", cat.SetLabel())
	assert.Len(t, cat.Units(), 7)
	assert.Len(t, cat.Tags(), 4)
	assert.Len(t, cat.Items(), 4)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		set     string
		wantErr error
	}{
		{
			name:    "missing set",
			body:    `{"set15": {"champions": [{"apiName": "A", "name": "A", "cost": 1, "traits": ["X"]}]}}`,
			set:     "set16",
			wantErr: domain.ErrCatalogSetMissing,
		},
		{
			name:    "set without units",
			body:    `{"set16": {"champions": [], "items": [], "traits": []}}`,
			set:     "set16",
			wantErr: domain.ErrCatalogEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse(strings.NewReader(tt.body), tt.set)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		_, err := catalog.Parse(strings.NewReader(`{"set16": [`), "set16")
		assert.Error(t, err)
	})
}

func TestParse_SortsThresholdsAscending(t *testing.T) {
	cat := loadSample(t)

	bruiser, ok := cat.Tag("Bruiser")
	require.True(t, ok)
	require.Len(t, bruiser.Thresholds, 3)

	assert.Equal(t, 2, bruiser.Thresholds[0].MinUnits)
	assert.Equal(t, 4, bruiser.Thresholds[1].MinUnits)
	assert.Equal(t, 6, bruiser.Thresholds[2].MinUnits)
	assert.Equal(t, 4, bruiser.Thresholds[2].Style)
	assert.InDelta(t, 0.65, bruiser.Thresholds[2].Variables["HealthPercent"], 0.0001)
}

func TestLookups(t *testing.T) {
	cat := loadSample(t)

	tests := []struct {
		name   string
		lookup func() (string, bool)
		want   string
		found  bool
	}{
		{
			name: "unit by display name",
			lookup: func() (string, bool) {
				u, ok := cat.Unit("Warwick")
				if !ok {
					return "", false
				}
				return u.ID, true
			},
			want:  "TFT16_Warwick",
			found: true,
		},
		{
			name: "unit by api name",
			lookup: func() (string, bool) {
				u, ok := cat.Unit("TFT16_Vi")
				if !ok {
					return "", false
				}
				return u.Name, true
			},
			want:  "Vi",
			found: true,
		},
		{
			name: "tag by api name",
			lookup: func() (string, bool) {
				tag, ok := cat.Tag("TFT16_Sniper")
				if !ok {
					return "", false
				}
				return tag.Name, true
			},
			want:  "Sniper",
			found: true,
		},
		{
			name: "item by display name",
			lookup: func() (string, bool) {
				it, ok := cat.Item("Infinity Edge")
				if !ok {
					return "", false
				}
				return it.ID, true
			},
			want:  "TFT_Item_InfinityEdge",
			found: true,
		},
		{
			name: "unknown unit",
			lookup: func() (string, bool) {
				_, ok := cat.Unit("Teemo")
				return "", ok
			},
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.lookup()
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlayableUnits(t *testing.T) {
	cat := loadSample(t)

	playable := cat.PlayableUnits()
	require.Len(t, playable, 5)

	// Sorted by cost, armory keys and out-of-range costs excluded
	names := make([]string, len(playable))
	for i, u := range playable {
		names[i] = u.Name
	}
	assert.Equal(t, []string{"Warwick", "Vi", "Ezreal", "Jayce", "Caitlyn"}, names)

	fours := cat.UnitsByCost(4)
	require.Len(t, fours, 1)
	assert.Equal(t, "Jayce", fours[0].Name)
	assert.Empty(t, cat.UnitsByCost(6))
}

func TestItemClassification(t *testing.T) {
	cat := loadSample(t)

	basic := cat.BasicItems()
	combined := cat.CombinedItems()

	assert.Len(t, basic, 2)
	assert.Len(t, combined, 2)
	for _, it := range basic {
		assert.False(t, it.IsCombined(), it.Name)
	}
	for _, it := range combined {
		assert.True(t, it.IsCombined(), it.Name)
	}
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	units := []domain.UnitDefinition{{ID: "A", Name: "Alpha", Cost: 1, Tags: []string{"X"}}}
	cat := catalog.New("set16", units, nil, nil)

	units[0].Name = "Changed"

	u, ok := cat.Unit("A")
	require.True(t, ok)
	assert.Equal(t, "Alpha", u.Name)
}
