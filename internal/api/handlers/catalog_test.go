package handlers_test

import (
	"net/http"
	"testing"

	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/synergy"
	"github.com/snoody/tft-tierlist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_Units(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
		count  int
	}{
		{name: "all playable units", query: "", status: http.StatusOK, count: 12},
		{name: "one cost", query: "?cost=1", status: http.StatusOK, count: 4},
		{name: "cost out of range", query: "?cost=7", status: http.StatusBadRequest},
		{name: "cost not a number", query: "?cost=cheap", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodGet, ts.APIURL("/catalog/units"+tt.query), nil, "")
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				return
			}

			units := testutil.DecodeData[[]domain.UnitDefinition](t, resp)
			assert.Len(t, units, tt.count)
		})
	}
}

func TestCatalogHandler_TraitsAndItems(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := do(t, http.MethodGet, ts.APIURL("/catalog/traits"), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	traits := testutil.DecodeData[[]domain.TagDefinition](t, resp)
	assert.Len(t, traits, 6)

	resp = do(t, http.MethodGet, ts.APIURL("/catalog/items?kind=combined"), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := testutil.DecodeData[[]domain.ItemDefinition](t, resp)
	assert.Len(t, items, 3)

	resp = do(t, http.MethodGet, ts.APIURL("/catalog/items?kind=shiny"), nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogHandler_PreviewSynergies(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("computes without saving", func(t *testing.T) {
		body := map[string][]string{"units": {"Garen", "TFT16_Sett", "Darius"}}
		resp := do(t, http.MethodPost, ts.APIURL("/catalog/synergies"), body, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		list := testutil.DecodeData[[]synergy.Summary](t, resp)
		require.NotEmpty(t, list)
		assert.Equal(t, "Juggernaut", list[0].Name)
		assert.Equal(t, 3, list[0].Count)
		assert.Equal(t, 1, list[0].ActiveTier)
		assert.Equal(t, 1, list[0].UnitsToNext)

		var count int64
		require.NoError(t, ts.DB.DB.Table("compositions").Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("unknown unit", func(t *testing.T) {
		body := map[string][]string{"units": {"Garen", "Teemo"}}
		resp := do(t, http.MethodPost, ts.APIURL("/catalog/synergies"), body, "")
		testutil.AssertValidationFields(t, resp, "units[1]")
	})
}
