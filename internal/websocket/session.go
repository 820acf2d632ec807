package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/builder"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/synergy"
	"go.uber.org/zap"
)

// Store loads and persists compositions for a session.
// *service.CompositionService satisfies it.
type Store interface {
	BuilderFor(ctx context.Context, id uuid.UUID) (*builder.Builder, error)
	Save(ctx context.Context, id uuid.UUID, b *builder.Builder) (*domain.Composition, error)
}

// Session is one live editing session. It exclusively owns its builder, so
// Handle must be called from a single goroutine.
type Session struct {
	builder       *builder.Builder
	store         Store
	compositionID uuid.UUID
	seq           int
	logger        *zap.Logger
}

func NewSession(b *builder.Builder, store Store, logger *zap.Logger) *Session {
	return &Session{
		builder: b,
		store:   store,
		logger:  logger,
	}
}

// CompositionID is uuid.Nil until the session loads or saves a record.
func (s *Session) CompositionID() uuid.UUID {
	return s.compositionID
}

// Handle applies one client message and returns the replies in order.
// A rejected mutation leaves the builder unchanged and yields a single ERROR.
func (s *Session) Handle(ctx context.Context, msg *Message) []*Message {
	switch msg.Type {
	case MessageTypeLoad:
		var payload LoadPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		id, err := uuid.Parse(payload.CompositionID)
		if err != nil {
			return s.reply(MessageTypeError, ErrorPayload{Code: "INVALID_PAYLOAD", Message: "compositionId must be a UUID"})
		}
		b, err := s.store.BuilderFor(ctx, id)
		if err != nil {
			s.logger.Warn("failed to load composition", zap.String("compositionID", id.String()), zap.Error(err))
			return s.reply(MessageTypeError, ErrorPayload{Code: "LOAD_FAILED", Message: err.Error()})
		}
		s.builder = b
		s.compositionID = id
		return s.stateSync()

	case MessageTypeAddUnit:
		var payload AddUnitPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		_, err := s.builder.AddUnit(payload.Unit)
		return s.afterMutation(err)

	case MessageTypeRemoveUnit:
		var payload UnitPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		return s.afterMutation(s.builder.RemoveUnit(payload.ID))

	case MessageTypeSetItems:
		var payload SetItemsPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		return s.afterMutation(s.builder.SetItems(payload.ID, payload.Items))

	case MessageTypeAddItem:
		var payload AddItemPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		return s.afterMutation(s.builder.AddItem(payload.ID, payload.Item))

	case MessageTypeRemoveItem:
		var payload RemoveItemPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		return s.afterMutation(s.builder.RemoveItem(payload.ID, payload.Index))

	case MessageTypeToggleLead:
		var payload UnitPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		return s.afterMutation(s.builder.ToggleLead(payload.ID))

	case MessageTypeSetStars:
		var payload SetStarsPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		return s.afterMutation(s.builder.SetStars(payload.ID, payload.Stars))

	case MessageTypeSetMeta:
		// Fields absent from the payload keep their current value.
		meta := s.builder.Metadata()
		if !s.decode(msg, &meta) {
			return s.invalidPayload(msg.Type)
		}
		s.builder.SetMetadata(meta)
		return s.stateSync()

	case MessageTypeSetPositioning:
		var payload SetPositioningPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		s.builder.SetPositioning(payload.Positioning)
		return s.stateSync()

	case MessageTypeAddAugment, MessageTypeAddArtifact:
		var payload ValuePayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		if msg.Type == MessageTypeAddAugment {
			return s.afterMutation(s.builder.AddAugment(payload.Value))
		}
		return s.afterMutation(s.builder.AddArtifact(payload.Value))

	case MessageTypeRemoveAugment, MessageTypeRemoveArtifact:
		var payload IndexPayload
		if !s.decode(msg, &payload) {
			return s.invalidPayload(msg.Type)
		}
		if msg.Type == MessageTypeRemoveAugment {
			return s.afterMutation(s.builder.RemoveAugment(payload.Index))
		}
		return s.afterMutation(s.builder.RemoveArtifact(payload.Index))

	case MessageTypeValidate:
		if errs := s.builder.Validate(); len(errs) > 0 {
			return s.reply(MessageTypeValidationFailed, ValidationFailedPayload{Errors: errs})
		}
		return s.reply(MessageTypeValid, struct{}{})

	case MessageTypeSave:
		return s.save(ctx)
	}

	return s.reply(MessageTypeError, ErrorPayload{
		Code:    "UNKNOWN_MESSAGE",
		Message: "unsupported message type " + string(msg.Type),
	})
}

// Snapshot returns the current state as a STATE_SYNC payload.
func (s *Session) Snapshot() StateSyncPayload {
	state := StateSyncPayload{
		Units:       s.builder.Units(),
		Synergies:   synergy.Summarize(s.builder.Synergies()),
		Metadata:    s.builder.Metadata(),
		Augments:    s.builder.Augments(),
		Artifacts:   s.builder.Artifacts(),
		Positioning: s.builder.Positioning(),
	}
	if s.compositionID != uuid.Nil {
		state.CompositionID = s.compositionID.String()
	}
	return state
}

func (s *Session) save(ctx context.Context) []*Message {
	comp, err := s.store.Save(ctx, s.compositionID, s.builder)
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			return s.reply(MessageTypeValidationFailed, ValidationFailedPayload{Errors: verrs})
		}
		s.logger.Error("failed to save composition", zap.String("compositionID", s.compositionID.String()), zap.Error(err))
		return s.reply(MessageTypeError, ErrorPayload{Code: "SAVE_FAILED", Message: err.Error()})
	}

	s.compositionID = comp.ID
	return s.reply(MessageTypeSaved, SavedPayload{ID: comp.ID.String()})
}

func (s *Session) afterMutation(err error) []*Message {
	if err != nil {
		return s.reply(MessageTypeError, ErrorPayload{Code: errorCode(err), Message: err.Error()})
	}
	return s.stateSync()
}

func (s *Session) stateSync() []*Message {
	return s.reply(MessageTypeStateSync, s.Snapshot())
}

func (s *Session) invalidPayload(t MessageType) []*Message {
	return s.reply(MessageTypeError, ErrorPayload{
		Code:    "INVALID_PAYLOAD",
		Message: "Invalid " + string(t) + " payload",
	})
}

func (s *Session) decode(msg *Message, v interface{}) bool {
	if len(msg.Payload) == 0 {
		return false
	}
	return json.Unmarshal(msg.Payload, v) == nil
}

func (s *Session) reply(t MessageType, payload interface{}) []*Message {
	msg, err := NewMessage(t, payload)
	if err != nil {
		s.logger.Error("failed to encode message", zap.String("type", string(t)), zap.Error(err))
		return nil
	}
	s.seq++
	msg.Seq = s.seq
	return []*Message{msg}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnitLimit):
		return "UNIT_LIMIT"
	case errors.Is(err, domain.ErrItemLimit):
		return "ITEM_LIMIT"
	case errors.Is(err, domain.ErrUnknownUnit):
		return "UNKNOWN_UNIT"
	case errors.Is(err, domain.ErrSelectedUnitNotFound):
		return "UNIT_NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidStarLevel):
		return "INVALID_STARS"
	case errors.Is(err, domain.ErrEmptyValue):
		return "EMPTY_VALUE"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return "INDEX_OUT_OF_RANGE"
	}
	return "REJECTED"
}
