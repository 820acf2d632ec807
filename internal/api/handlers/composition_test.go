package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/service"
	"github.com/snoody/tft-tierlist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() map[string]interface{} {
	return map[string]interface{}{
		"name": "Juggernaut Reroll",
		"tier": "A",
		"champions": []map[string]interface{}{
			{"name": "Garen"},
			{"name": "Sett", "items": []string{"Infinity Edge"}, "isCarry": true, "stars": 3},
		},
		"augments": []string{"Cybernetic Implants"},
		"videoUrl": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}
}

func do(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()
	req := testutil.CreateAuthenticatedRequest(t, method, url, body, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

type compositionBody struct {
	domain.Composition
	EmbedURL string `json:"embedUrl"`
}

func TestCompositionHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.AdminToken(t)

	t.Run("derives synergies from champions", func(t *testing.T) {
		draft := validDraft()
		draft["synergies"] = []map[string]interface{}{{"name": "Invoker", "tier": 3}}

		resp := do(t, http.MethodPost, ts.APIURL("/comps"), draft, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		comp := testutil.DecodeData[compositionBody](t, resp)
		assert.NotEqual(t, uuid.Nil, comp.ID)
		assert.Equal(t, domain.RankA, comp.Tier)
		require.Len(t, comp.Synergies, 1)
		assert.Equal(t, domain.SynergyEntry{Name: "Juggernaut", Tier: 1, IsActive: true}, comp.Synergies[0])
		assert.Equal(t, 4, comp.Champions[1].Cost)
		assert.True(t, comp.Champions[1].IsCarry)
		assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", comp.EmbedURL)
	})

	t.Run("no active synergies", func(t *testing.T) {
		draft := validDraft()
		draft["champions"] = []map[string]interface{}{{"name": "Garen"}, {"name": "Lux"}, {"name": "Jinx"}}

		resp := do(t, http.MethodPost, ts.APIURL("/comps"), draft, token)
		testutil.AssertValidationFields(t, resp, "synergies")
	})

	t.Run("every rule reported in order", func(t *testing.T) {
		draft := validDraft()
		draft["name"] = ""
		draft["champions"] = []map[string]interface{}{}
		draft["videoUrl"] = "https://vimeo.com/1"
		draft["tier"] = "Z"

		resp := do(t, http.MethodPost, ts.APIURL("/comps"), draft, token)
		testutil.AssertValidationFields(t, resp, "name", "champions", "synergies", "videoUrl", "tier")
	})

	t.Run("rejected mutations", func(t *testing.T) {
		draft := validDraft()
		draft["champions"] = []map[string]interface{}{
			{"name": "Garen"},
			{"name": "Teemo"},
			{"name": "Sett", "stars": 5},
		}

		resp := do(t, http.MethodPost, ts.APIURL("/comps"), draft, token)
		testutil.AssertValidationFields(t, resp, "champions[1]", "champions[2].stars")
	})

	t.Run("requires admin", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.APIURL("/comps"), validDraft(), "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/comps"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCompositionHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewCompositionBuilder().WithName("B comp").WithTier(domain.RankB).Build(t, ts.DB.DB)
	testutil.NewCompositionBuilder().WithName("S comp").WithTier(domain.RankS).
		WithCarry("Lux").WithSynergies("Sorcerer").Build(t, ts.DB.DB)
	testutil.NewCompositionBuilder().WithName("Hidden").WithTier(domain.RankS).Inactive().Build(t, ts.DB.DB)

	tests := []struct {
		name   string
		query  string
		status int
		want   []string
	}{
		{name: "rank order", query: "", status: http.StatusOK, want: []string{"Hidden", "S comp", "B comp"}},
		{name: "active only", query: "?isActive=true", status: http.StatusOK, want: []string{"S comp", "B comp"}},
		{name: "tier", query: "?tier=b", status: http.StatusOK, want: []string{"B comp"}},
		{name: "champion substring", query: "?champion=lu", status: http.StatusOK, want: []string{"S comp"}},
		{name: "synergy substring", query: "?synergy=sorc", status: http.StatusOK, want: []string{"S comp"}},
		{name: "bad tier", query: "?tier=X", status: http.StatusBadRequest},
		{name: "bad isActive", query: "?isActive=maybe", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodGet, ts.APIURL("/comps"+tt.query), nil, "")
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				return
			}

			var env testutil.Envelope[[]compositionBody]
			testutil.AssertJSONResponse(t, resp, &env)
			require.NotNil(t, env.Count)
			assert.Equal(t, len(tt.want), *env.Count)

			got := make([]string, len(env.Data))
			for i, c := range env.Data {
				got[i] = c.Name
			}
			if tt.name == "rank order" {
				// Both S comps share a rank; only the rank boundary is fixed.
				assert.ElementsMatch(t, tt.want[:2], got[:2])
				assert.Equal(t, tt.want[2], got[2])
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompositionHandler_GetReplacePatchDelete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.AdminToken(t)
	stored := testutil.NewCompositionBuilder().WithName("Original").Build(t, ts.DB.DB)
	url := ts.APIURL("/comps/" + stored.ID.String())

	t.Run("get", func(t *testing.T) {
		resp := do(t, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		comp := testutil.DecodeData[compositionBody](t, resp)
		assert.Equal(t, "Original", comp.Name)
	})

	t.Run("get unknown", func(t *testing.T) {
		resp := do(t, http.MethodGet, ts.APIURL("/comps/"+uuid.NewString()), nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("get malformed id", func(t *testing.T) {
		resp := do(t, http.MethodGet, ts.APIURL("/comps/not-a-uuid"), nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("replace", func(t *testing.T) {
		draft := validDraft()
		draft["name"] = "Replaced"
		draft["champions"] = []map[string]interface{}{
			{"name": "Sett"}, {"name": "Braum"}, {"name": "Lulu"}, {"name": "Garen"},
		}

		resp := do(t, http.MethodPut, url, draft, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		comp := testutil.DecodeData[compositionBody](t, resp)
		assert.Equal(t, stored.ID, comp.ID)
		assert.Equal(t, "Replaced", comp.Name)
		assert.Len(t, comp.Champions, 4)
		assert.Equal(t, []string{"Bastion", "Juggernaut"}, comp.ActiveSynergyNames())
	})

	t.Run("patch", func(t *testing.T) {
		resp := do(t, http.MethodPatch, url, map[string]interface{}{"tier": "S", "isActive": false}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		comp := testutil.DecodeData[compositionBody](t, resp)
		assert.Equal(t, domain.RankS, comp.Tier)
		assert.False(t, comp.IsActive)
		assert.Equal(t, "Replaced", comp.Name)
	})

	t.Run("patch rejects bad values", func(t *testing.T) {
		resp := do(t, http.MethodPatch, url, map[string]interface{}{"tier": "Q", "tacterUrl": "https://example.com"}, token)
		testutil.AssertValidationFields(t, resp, "tier", "tacterUrl")
	})

	t.Run("delete", func(t *testing.T) {
		resp := do(t, http.MethodDelete, url, nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, http.MethodDelete, url, nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCompositionHandler_Tierlist(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewCompositionBuilder().WithName("Sorcerers").WithTier(domain.RankS).
		WithCarry("Lux").WithSynergies("Sorcerer").Build(t, ts.DB.DB)
	testutil.NewCompositionBuilder().WithName("Juggernauts").WithTier(domain.RankC).Build(t, ts.DB.DB)
	testutil.NewCompositionBuilder().WithName("Hidden").WithTier(domain.RankS).Inactive().Build(t, ts.DB.DB)

	t.Run("groups active comps", func(t *testing.T) {
		resp := do(t, http.MethodGet, ts.APIURL("/tierlist"), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		tl := testutil.DecodeData[service.Tierlist](t, resp)
		require.Len(t, tl.Groups, 5)
		assert.Equal(t, 2, tl.Total)
		require.Len(t, tl.Groups[0].Compositions, 1)
		assert.Equal(t, "Sorcerers", tl.Groups[0].Compositions[0].Name)
		require.Len(t, tl.Groups[3].Compositions, 1)
		assert.Equal(t, []string{"Juggernaut", "Sorcerer"}, tl.AvailableSynergies)
		assert.Equal(t, []string{"Lux", "Sett"}, tl.AvailableCarries)
	})

	t.Run("filters", func(t *testing.T) {
		resp := do(t, http.MethodGet, ts.APIURL("/tierlist?tiers=s,a&search=lux"), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		tl := testutil.DecodeData[service.Tierlist](t, resp)
		assert.Equal(t, 1, tl.Shown)
	})

	t.Run("bad tiers", func(t *testing.T) {
		resp := do(t, http.MethodGet, ts.APIURL("/tierlist?tiers=S,X"), nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
