package websocket_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/builder"
	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/testutil"
	"github.com/snoody/tft-tierlist/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStore keeps saved records in a map, validating like the real service.
type memoryStore struct {
	cat   *catalog.Catalog
	saved map[uuid.UUID]*domain.Composition
	saves int
}

func newMemoryStore(cat *catalog.Catalog) *memoryStore {
	return &memoryStore{cat: cat, saved: make(map[uuid.UUID]*domain.Composition)}
}

func (m *memoryStore) BuilderFor(ctx context.Context, id uuid.UUID) (*builder.Builder, error) {
	comp, ok := m.saved[id]
	if !ok {
		return nil, errors.New("composition not found")
	}
	return builder.FromDraft(m.cat, builder.DraftFromComposition(comp))
}

func (m *memoryStore) Save(ctx context.Context, id uuid.UUID, b *builder.Builder) (*domain.Composition, error) {
	record, err := b.ValidateForSave()
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	record.ID = id
	m.saved[id] = record
	m.saves++
	return record, nil
}

type sessionHarness struct {
	t       *testing.T
	session *websocket.Session
	store   *memoryStore
}

func newHarness(t *testing.T) *sessionHarness {
	cat := testutil.TestCatalog()
	store := newMemoryStore(cat)
	return &sessionHarness{
		t:       t,
		session: websocket.NewSession(builder.New(cat), store, zap.NewNop()),
		store:   store,
	}
}

// send handles one message and returns its single reply.
func (h *sessionHarness) send(msgType websocket.MessageType, payload interface{}) *websocket.Message {
	h.t.Helper()

	msg := &websocket.Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(h.t, err)
		msg.Payload = data
	}

	replies := h.session.Handle(context.Background(), msg)
	require.Len(h.t, replies, 1)
	return replies[0]
}

func (h *sessionHarness) state(msg *websocket.Message) websocket.StateSyncPayload {
	h.t.Helper()
	require.Equal(h.t, websocket.MessageTypeStateSync, msg.Type)
	var state websocket.StateSyncPayload
	require.NoError(h.t, json.Unmarshal(msg.Payload, &state))
	return state
}

func (h *sessionHarness) errorCode(msg *websocket.Message) string {
	h.t.Helper()
	require.Equal(h.t, websocket.MessageTypeError, msg.Type)
	var payload websocket.ErrorPayload
	require.NoError(h.t, json.Unmarshal(msg.Payload, &payload))
	return payload.Code
}

func (h *sessionHarness) addUnit(name string) string {
	h.t.Helper()
	state := h.state(h.send(websocket.MessageTypeAddUnit, websocket.AddUnitPayload{Unit: name}))
	return state.Units[len(state.Units)-1].ID
}

func TestSession_AddUnitRecomputesSynergies(t *testing.T) {
	h := newHarness(t)

	h.addUnit("Garen")
	state := h.state(h.send(websocket.MessageTypeAddUnit, websocket.AddUnitPayload{Unit: "Sett"}))

	require.Len(t, state.Units, 2)
	require.NotEmpty(t, state.Synergies)
	assert.Equal(t, "Juggernaut", state.Synergies[0].Name)
	assert.Equal(t, 2, state.Synergies[0].Count)
	assert.Equal(t, 1, state.Synergies[0].ActiveTier)
	assert.True(t, state.Synergies[0].IsActive)
}

func TestSession_RejectedMutationsLeaveStateUnchanged(t *testing.T) {
	h := newHarness(t)
	id := h.addUnit("Garen")

	tests := []struct {
		name    string
		msgType websocket.MessageType
		payload interface{}
		code    string
	}{
		{"unknown unit", websocket.MessageTypeAddUnit, websocket.AddUnitPayload{Unit: "Teemo"}, "UNKNOWN_UNIT"},
		{"missing selected unit", websocket.MessageTypeRemoveUnit, websocket.UnitPayload{ID: "nope"}, "UNIT_NOT_FOUND"},
		{"too many items", websocket.MessageTypeSetItems, websocket.SetItemsPayload{ID: id, Items: []string{"a", "b", "c", "d"}}, "ITEM_LIMIT"},
		{"bad star level", websocket.MessageTypeSetStars, websocket.SetStarsPayload{ID: id, Stars: 4}, "INVALID_STARS"},
		{"blank augment", websocket.MessageTypeAddAugment, websocket.ValuePayload{Value: "  "}, "EMPTY_VALUE"},
		{"item index", websocket.MessageTypeRemoveItem, websocket.RemoveItemPayload{ID: id, Index: 0}, "INDEX_OUT_OF_RANGE"},
		{"missing payload", websocket.MessageTypeAddUnit, nil, "INVALID_PAYLOAD"},
		{"unknown type", websocket.MessageType("JUMP"), nil, "UNKNOWN_MESSAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, h.errorCode(h.send(tt.msgType, tt.payload)))

			snap := h.session.Snapshot()
			require.Len(t, snap.Units, 1)
			assert.Equal(t, "Garen", snap.Units[0].Unit.Name)
			assert.Empty(t, snap.Units[0].Items)
			assert.Equal(t, domain.DefaultStarLevel, snap.Units[0].Stars)
			assert.Empty(t, snap.Augments)
		})
	}
}

func TestSession_UnitLimit(t *testing.T) {
	h := newHarness(t)
	for _, name := range []string{"Garen", "Lux", "Jinx", "Sett", "Braum", "Darius", "Tristana", "Ahri", "Lulu", "Zed"} {
		h.addUnit(name)
	}

	assert.Equal(t, "UNIT_LIMIT", h.errorCode(h.send(websocket.MessageTypeAddUnit, websocket.AddUnitPayload{Unit: "Yasuo"})))
	assert.Len(t, h.session.Snapshot().Units, domain.MaxUnitsPerComp)
}

func TestSession_UnitEdits(t *testing.T) {
	h := newHarness(t)
	id := h.addUnit("Sett")

	state := h.state(h.send(websocket.MessageTypeAddItem, websocket.AddItemPayload{ID: id, Item: "Infinity Edge"}))
	assert.Equal(t, []string{"Infinity Edge"}, state.Units[0].Items)

	state = h.state(h.send(websocket.MessageTypeToggleLead, websocket.UnitPayload{ID: id}))
	assert.True(t, state.Units[0].IsLead)

	state = h.state(h.send(websocket.MessageTypeSetStars, websocket.SetStarsPayload{ID: id, Stars: 3}))
	assert.Equal(t, 3, state.Units[0].Stars)

	state = h.state(h.send(websocket.MessageTypeRemoveItem, websocket.RemoveItemPayload{ID: id, Index: 0}))
	assert.Empty(t, state.Units[0].Items)

	state = h.state(h.send(websocket.MessageTypeRemoveUnit, websocket.UnitPayload{ID: id}))
	assert.Empty(t, state.Units)
	assert.Empty(t, state.Synergies)
}

func TestSession_SetMetaMergesFields(t *testing.T) {
	h := newHarness(t)

	h.send(websocket.MessageTypeSetMeta, map[string]string{"name": "Juggernauts", "tier": "A"})
	state := h.state(h.send(websocket.MessageTypeSetMeta, map[string]string{"patch": "16.2"}))

	assert.Equal(t, "Juggernauts", state.Metadata.Name)
	assert.Equal(t, domain.RankA, state.Metadata.Tier)
	assert.Equal(t, "16.2", state.Metadata.Patch)
	assert.True(t, state.Metadata.IsActive)
}

func TestSession_ValidateAndSave(t *testing.T) {
	h := newHarness(t)
	h.send(websocket.MessageTypeSetMeta, map[string]string{"name": "Juggernauts"})
	h.addUnit("Garen")

	t.Run("no active synergies", func(t *testing.T) {
		reply := h.send(websocket.MessageTypeSave, nil)
		require.Equal(t, websocket.MessageTypeValidationFailed, reply.Type)

		var payload websocket.ValidationFailedPayload
		require.NoError(t, json.Unmarshal(reply.Payload, &payload))
		assert.True(t, payload.Errors.Has("synergies"))
		assert.Equal(t, 0, h.store.saves)
	})

	h.addUnit("Sett")

	t.Run("valid", func(t *testing.T) {
		assert.Equal(t, websocket.MessageTypeValid, h.send(websocket.MessageTypeValidate, nil).Type)
	})

	var firstID string
	t.Run("first save creates", func(t *testing.T) {
		reply := h.send(websocket.MessageTypeSave, nil)
		require.Equal(t, websocket.MessageTypeSaved, reply.Type)

		var payload websocket.SavedPayload
		require.NoError(t, json.Unmarshal(reply.Payload, &payload))
		firstID = payload.ID
		assert.Equal(t, firstID, h.session.CompositionID().String())
	})

	t.Run("second save updates the same record", func(t *testing.T) {
		reply := h.send(websocket.MessageTypeSave, nil)
		require.Equal(t, websocket.MessageTypeSaved, reply.Type)

		var payload websocket.SavedPayload
		require.NoError(t, json.Unmarshal(reply.Payload, &payload))
		assert.Equal(t, firstID, payload.ID)
		assert.Len(t, h.store.saved, 1)
	})
}

func TestSession_Load(t *testing.T) {
	h := newHarness(t)
	stored := testutil.NewCompositionBuilder().WithName("Stored").Value()
	h.store.saved[stored.ID] = stored

	state := h.state(h.send(websocket.MessageTypeLoad, websocket.LoadPayload{CompositionID: stored.ID.String()}))
	assert.Equal(t, stored.ID.String(), state.CompositionID)
	assert.Equal(t, "Stored", state.Metadata.Name)
	require.Len(t, state.Units, 2)
	assert.Equal(t, "Garen", state.Units[0].Unit.Name)
	assert.True(t, state.Units[1].IsLead)

	assert.Equal(t, "LOAD_FAILED", h.errorCode(h.send(websocket.MessageTypeLoad, websocket.LoadPayload{CompositionID: uuid.NewString()})))
	assert.Equal(t, "INVALID_PAYLOAD", h.errorCode(h.send(websocket.MessageTypeLoad, websocket.LoadPayload{CompositionID: "abc"})))
	assert.Equal(t, stored.ID, h.session.CompositionID())
}

func TestSession_SequenceNumbersIncrease(t *testing.T) {
	h := newHarness(t)

	first := h.send(websocket.MessageTypeValidate, nil)
	second := h.send(websocket.MessageTypeAddUnit, websocket.AddUnitPayload{Unit: "Garen"})

	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, 2, second.Seq)
}
