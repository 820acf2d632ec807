package domain_test

import (
	"errors"
	"testing"

	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func validRecord() *domain.Composition {
	return &domain.Composition{
		Name: "Juggernauts",
		Champions: datatypes.NewJSONSlice([]domain.ChampionEntry{
			{Name: "Garen", Cost: 1, Stars: 1},
			{Name: "Sett", Cost: 4, Stars: 2, IsCarry: true},
		}),
		Synergies: datatypes.NewJSONSlice([]domain.SynergyEntry{
			{Name: "Juggernaut", Tier: 1, IsActive: true},
		}),
		Tier:     domain.RankA,
		Augments: datatypes.NewJSONSlice([]string{"Jeweled Lotus"}),
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	out := make([]string, len(verrs))
	for i, e := range verrs {
		out[i] = e.Field
	}
	return out
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.Composition)
		fields []string
	}{
		{name: "valid", mutate: func(c *domain.Composition) {}},
		{name: "blank name", mutate: func(c *domain.Composition) { c.Name = " \t " }, fields: []string{"name"}},
		{name: "empty name", mutate: func(c *domain.Composition) { c.Name = "" }, fields: []string{"name"}},
		{name: "blank augment", mutate: func(c *domain.Composition) {
			c.Augments = datatypes.NewJSONSlice([]string{"Jeweled Lotus", ""})
		}, fields: []string{"augments[1]"}},
		{name: "blank artifact", mutate: func(c *domain.Composition) {
			c.Artifacts = datatypes.NewJSONSlice([]string{"  "})
		}, fields: []string{"artifacts[0]"}},
		{name: "bad tier", mutate: func(c *domain.Composition) { c.Tier = "Z" }, fields: []string{"tier"}},
		{name: "bad video url", mutate: func(c *domain.Composition) { c.VideoURL = "https://vimeo.com/1" }, fields: []string{"videoUrl"}},
		{name: "bad tacter url", mutate: func(c *domain.Composition) { c.TacterURL = "https://example.com" }, fields: []string{"tacterUrl"}},
		{name: "bad difficulty", mutate: func(c *domain.Composition) { c.Difficulty = "Insane" }, fields: []string{"difficulty"}},
		{name: "too many stars", mutate: func(c *domain.Composition) { c.Champions[0].Stars = 4 }, fields: []string{"champions[0].stars"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validRecord()
			tt.mutate(c)
			err := domain.ValidateRecord(c)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.fields, fieldsOf(t, err))
		})
	}
}

func TestValidateRecord_BlankNameMessage(t *testing.T) {
	c := validRecord()
	c.Name = "   "

	var verrs domain.ValidationErrors
	require.True(t, errors.As(domain.ValidateRecord(c), &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "must not be blank", verrs[0].Reason)
}

func TestValidatePatch(t *testing.T) {
	blank := "  "
	empty := ""
	name := "Renamed"

	assert.NoError(t, domain.ValidatePatch(&domain.CompositionPatch{}))
	assert.NoError(t, domain.ValidatePatch(&domain.CompositionPatch{Name: &name}))
	assert.Equal(t, []string{"name"}, fieldsOf(t, domain.ValidatePatch(&domain.CompositionPatch{Name: &blank})))
	assert.Equal(t, []string{"name"}, fieldsOf(t, domain.ValidatePatch(&domain.CompositionPatch{Name: &empty})))

	augments := []string{"", "Jeweled Lotus"}
	assert.Equal(t, []string{"augments[0]"}, fieldsOf(t, domain.ValidatePatch(&domain.CompositionPatch{Augments: &augments})))

	none := []string{}
	assert.NoError(t, domain.ValidatePatch(&domain.CompositionPatch{Augments: &none}))
}
