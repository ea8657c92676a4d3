package storage

import "time"

// PromptType tags a prompt record. Only PromptTypePersona is written by the admin API.
type PromptType string

const (
	// PromptTypeCore is a shared prompt fragment.
	PromptTypeCore PromptType = "CORE"
	// PromptTypePersona is a per-persona system prompt.
	PromptTypePersona PromptType = "PERSONA"
)

// PersonaRecord is one immutable version of a persona prompt.
// Records are only ever inserted; the current value of a persona is the
// record with the greatest RecordID for its code and type.
type PersonaRecord struct {
	RecordID    int64
	PersonaCode string
	PromptType  PromptType
	PromptText  string
	CreatedAt   time.Time
}

// ConversationRecord is one logged user/assistant exchange.
type ConversationRecord struct {
	ID          int64
	PersonaCode string
	UserQuery   string
	AIResponse  string
	UserID      string
	CreatedAt   time.Time
}

// ConversationFilter narrows conversation queries. Nil and empty fields are ignored.
type ConversationFilter struct {
	PersonaCode string
	UserID      string
	Start       *time.Time
	End         *time.Time
}
