package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/builder"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/metrics"
	"github.com/snoody/tft-tierlist/internal/repository"
	"github.com/snoody/tft-tierlist/internal/repository/postgres"
	"github.com/snoody/tft-tierlist/internal/service"
	"github.com/snoody/tft-tierlist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCompositionService(t *testing.T) (*service.CompositionService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	svc := service.NewCompositionService(
		postgres.NewCompositionRepository(testDB.DB),
		testutil.TestCatalog(),
		metrics.NewCollector("test"),
		zap.NewNop(),
	)
	return svc, testDB
}

func juggernautDraft(name string) *builder.Draft {
	return &builder.Draft{
		Name: name,
		Champions: []builder.DraftUnit{
			{Name: "Garen"},
			{Name: "Sett", Items: []string{"Infinity Edge"}, IsCarry: true},
		},
		Tier:     domain.RankA,
		Augments: []string{"Titanic Force"},
	}
}

func requireFields(t *testing.T, err error, fields ...string) {
	t.Helper()
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	got := make([]string, len(verrs))
	for i, e := range verrs {
		got[i] = e.Field
	}
	assert.Equal(t, fields, got)
}

func TestCompositionService_Create(t *testing.T) {
	svc, _ := newCompositionService(t)
	ctx := context.Background()

	comp, err := svc.Create(ctx, juggernautDraft("Juggernauts"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, comp.ID)

	stored, err := svc.Get(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juggernauts", stored.Name)
	assert.Equal(t, domain.RankA, stored.Tier)
	assert.True(t, stored.IsActive)
	assert.Equal(t, []domain.SynergyEntry{{Name: "Juggernaut", Tier: 1, IsActive: true}}, []domain.SynergyEntry(stored.Synergies))

	carry, ok := stored.Carry()
	require.True(t, ok)
	assert.Equal(t, "Sett", carry.Name)
}

func TestCompositionService_CreateRejects(t *testing.T) {
	svc, _ := newCompositionService(t)
	ctx := context.Background()

	t.Run("no active synergy", func(t *testing.T) {
		_, err := svc.Create(ctx, &builder.Draft{
			Name:      "Loners",
			Champions: []builder.DraftUnit{{Name: "Garen"}, {Name: "Lux"}, {Name: "Jinx"}},
		})
		requireFields(t, err, "synergies")
	})

	t.Run("every save rule is reported", func(t *testing.T) {
		_, err := svc.Create(ctx, &builder.Draft{
			Name:     " ",
			VideoURL: "https://vimeo.com/1",
			Tier:     "Z",
		})
		requireFields(t, err, "name", "champions", "synergies", "videoUrl", "tier")
	})

	t.Run("rejected mutations", func(t *testing.T) {
		_, err := svc.Create(ctx, &builder.Draft{
			Name:      "Broken",
			Champions: []builder.DraftUnit{{Name: "Garen"}, {Name: "Teemo"}},
		})
		requireFields(t, err, "champions[1]")
	})

	comps, err := svc.List(ctx, repository.CompositionFilter{})
	require.NoError(t, err)
	assert.Empty(t, comps)
}

func TestCompositionService_Update(t *testing.T) {
	svc, _ := newCompositionService(t)
	ctx := context.Background()

	comp, err := svc.Create(ctx, juggernautDraft("Before"))
	require.NoError(t, err)

	draft := juggernautDraft("After")
	draft.Champions = append(draft.Champions, builder.DraftUnit{Name: "Braum"})
	draft.Tier = domain.RankS

	updated, err := svc.Update(ctx, comp.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, comp.ID, updated.ID)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, domain.RankS, updated.Tier)
	assert.Len(t, updated.Champions, 3)
	assert.ElementsMatch(t, []string{"Bastion", "Juggernaut"}, updated.ActiveSynergyNames())

	_, err = svc.Update(ctx, uuid.New(), juggernautDraft("Ghost"))
	assert.ErrorIs(t, err, service.ErrCompositionNotFound)
}

func TestCompositionService_Patch(t *testing.T) {
	svc, _ := newCompositionService(t)
	ctx := context.Background()

	comp, err := svc.Create(ctx, juggernautDraft("Patched"))
	require.NoError(t, err)

	t.Run("partial update", func(t *testing.T) {
		tier := domain.RankC
		inactive := false
		got, err := svc.Patch(ctx, comp.ID, &domain.CompositionPatch{Tier: &tier, IsActive: &inactive})
		require.NoError(t, err)
		assert.Equal(t, domain.RankC, got.Tier)
		assert.False(t, got.IsActive)
		assert.Equal(t, "Patched", got.Name)
		assert.Len(t, got.Champions, 2)
	})

	t.Run("empty patch returns the stored record", func(t *testing.T) {
		got, err := svc.Patch(ctx, comp.ID, &domain.CompositionPatch{})
		require.NoError(t, err)
		assert.Equal(t, comp.ID, got.ID)
	})

	t.Run("invalid field", func(t *testing.T) {
		bad := "https://example.com/video"
		_, err := svc.Patch(ctx, comp.ID, &domain.CompositionPatch{VideoURL: &bad})
		requireFields(t, err, "videoUrl")
	})

	t.Run("blank name", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			_, err := svc.Patch(ctx, comp.ID, &domain.CompositionPatch{Name: &name})
			requireFields(t, err, "name")
		}

		stored, err := svc.Get(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, "Patched", stored.Name)
	})

	t.Run("blank augment and artifact", func(t *testing.T) {
		augments := []string{"Jeweled Lotus", " "}
		artifacts := []string{""}
		_, err := svc.Patch(ctx, comp.ID, &domain.CompositionPatch{Augments: &augments, Artifacts: &artifacts})
		requireFields(t, err, "augments[1]", "artifacts[0]")
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "x"
		_, err := svc.Patch(ctx, uuid.New(), &domain.CompositionPatch{Name: &name})
		assert.ErrorIs(t, err, service.ErrCompositionNotFound)
	})
}

func TestCompositionService_Delete(t *testing.T) {
	svc, _ := newCompositionService(t)
	ctx := context.Background()

	comp, err := svc.Create(ctx, juggernautDraft("Doomed"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, comp.ID))
	_, err = svc.Get(ctx, comp.ID)
	assert.ErrorIs(t, err, service.ErrCompositionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, comp.ID), service.ErrCompositionNotFound)
}

func TestCompositionService_Tierlist(t *testing.T) {
	svc, testDB := newCompositionService(t)
	ctx := context.Background()

	testutil.NewCompositionBuilder().WithName("Top").WithTier(domain.RankS).Build(t, testDB.DB)
	testutil.NewCompositionBuilder().WithName("Hidden").WithTier(domain.RankS).Inactive().Build(t, testDB.DB)
	testutil.NewCompositionBuilder().WithName("Bottom").WithTier(domain.RankD).
		WithCarry("Tristana").WithSynergies("Gunslinger").Build(t, testDB.DB)

	tl, err := svc.Tierlist(ctx, service.TierlistQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, tl.Total)
	assert.Equal(t, []string{"Top"}, groupNames(tl, domain.RankS))
	assert.Equal(t, []string{"Bottom"}, groupNames(tl, domain.RankD))
	assert.Equal(t, []string{"Gunslinger", "Juggernaut"}, tl.AvailableSynergies)

	tl, err = svc.Tierlist(ctx, service.TierlistQuery{Carry: "Tristana"})
	require.NoError(t, err)
	assert.Equal(t, 1, tl.Shown)
}

func TestCompositionService_BuilderFor(t *testing.T) {
	svc, _ := newCompositionService(t)
	ctx := context.Background()

	comp, err := svc.Create(ctx, juggernautDraft("Editable"))
	require.NoError(t, err)

	b, err := svc.BuilderFor(ctx, comp.ID)
	require.NoError(t, err)

	units := b.Units()
	require.Len(t, units, 2)
	assert.Equal(t, "Sett", units[1].Unit.Name)
	assert.True(t, units[1].IsLead)
	assert.Equal(t, []string{"Infinity Edge"}, units[1].Items)
	assert.Equal(t, "Editable", b.Metadata().Name)
	assert.Equal(t, []string{"Titanic Force"}, b.Augments())

	// Saving the loaded builder under the same id keeps one row.
	_, err = b.AddUnit("Darius")
	require.NoError(t, err)
	saved, err := svc.Save(ctx, comp.ID, b)
	require.NoError(t, err)
	assert.Len(t, saved.Champions, 3)

	comps, err := svc.List(ctx, repository.CompositionFilter{})
	require.NoError(t, err)
	assert.Len(t, comps, 1)

	_, err = svc.BuilderFor(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrCompositionNotFound)
}
