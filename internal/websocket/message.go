package websocket

import (
	"encoding/json"
	"time"

	"github.com/snoody/tft-tierlist/internal/builder"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/synergy"
)

type MessageType string

const (
	// Client to Server
	MessageTypeLoad           MessageType = "LOAD"
	MessageTypeAddUnit        MessageType = "ADD_UNIT"
	MessageTypeRemoveUnit     MessageType = "REMOVE_UNIT"
	MessageTypeSetItems       MessageType = "SET_ITEMS"
	MessageTypeAddItem        MessageType = "ADD_ITEM"
	MessageTypeRemoveItem     MessageType = "REMOVE_ITEM"
	MessageTypeToggleLead     MessageType = "TOGGLE_LEAD"
	MessageTypeSetStars       MessageType = "SET_STARS"
	MessageTypeSetMeta        MessageType = "SET_META"
	MessageTypeSetPositioning MessageType = "SET_POSITIONING"
	MessageTypeAddAugment     MessageType = "ADD_AUGMENT"
	MessageTypeRemoveAugment  MessageType = "REMOVE_AUGMENT"
	MessageTypeAddArtifact    MessageType = "ADD_ARTIFACT"
	MessageTypeRemoveArtifact MessageType = "REMOVE_ARTIFACT"
	MessageTypeValidate       MessageType = "VALIDATE"
	MessageTypeSave           MessageType = "SAVE"

	// Server to Client
	MessageTypeStateSync        MessageType = "STATE_SYNC"
	MessageTypeValidationFailed MessageType = "VALIDATION_FAILED"
	MessageTypeValid            MessageType = "VALID"
	MessageTypeSaved            MessageType = "SAVED"
	MessageTypeError            MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Seq       int             `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type LoadPayload struct {
	CompositionID string `json:"compositionId"`
}

type AddUnitPayload struct {
	Unit string `json:"unit"`
}

type UnitPayload struct {
	ID string `json:"id"`
}

type SetItemsPayload struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`
}

type AddItemPayload struct {
	ID   string `json:"id"`
	Item string `json:"item"`
}

type RemoveItemPayload struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

type SetStarsPayload struct {
	ID    string `json:"id"`
	Stars int    `json:"stars"`
}

type SetPositioningPayload struct {
	Positioning []domain.Position `json:"positioning"`
}

type ValuePayload struct {
	Value string `json:"value"`
}

type IndexPayload struct {
	Index int `json:"index"`
}

// Server to Client payloads

type StateSyncPayload struct {
	CompositionID string                `json:"compositionId,omitempty"`
	Units         []domain.SelectedUnit `json:"units"`
	Synergies     []synergy.Summary     `json:"synergies"`
	Metadata      builder.Metadata      `json:"metadata"`
	Augments      []string              `json:"augments"`
	Artifacts     []string              `json:"artifacts"`
	Positioning   []domain.Position     `json:"positioning"`
}

type ValidationFailedPayload struct {
	Errors domain.ValidationErrors `json:"errors"`
}

type SavedPayload struct {
	ID string `json:"id"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
