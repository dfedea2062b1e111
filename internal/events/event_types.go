package events

import (
	"time"

	"github.com/spec-kit/tramites-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionStarted       EventType = "session_started"
	EventSessionEnded         EventType = "session_ended"
	EventTramiteCreated       EventType = "tramite_created"
	EventTramiteStatusChanged EventType = "tramite_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UID       string      `json:"uid"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionStartedPayload payload.
type SessionStartedPayload struct {
	SessionID string `json:"session_id"`
	Provider  string `json:"provider"`
}

// SessionEndedPayload payload.
type SessionEndedPayload struct {
	SessionID       string `json:"session_id"`
	DurationSeconds int64  `json:"duration_seconds"`
}

// TramiteCreatedPayload payload.
type TramiteCreatedPayload struct {
	TramiteID    string `json:"tramite_id"`
	Tipo         string `json:"tipo"`
	Departamento string `json:"departamento"`
}

// TramiteStatusChangedPayload payload.
type TramiteStatusChangedPayload struct {
	TramiteID string                 `json:"tramite_id"`
	OldStatus domain.ProcedureStatus `json:"old_status"`
	NewStatus domain.ProcedureStatus `json:"new_status"`
	Etapa     int                    `json:"etapa"`
}
