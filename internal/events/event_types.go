package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/user-auth-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "auth.login_succeeded"
	EventLoginFailed    EventType = "auth.login_failed"
	EventTokenRefreshed EventType = "auth.token_refreshed"
	EventLogout         EventType = "auth.logout"
	EventUserRegistered EventType = "user.registered"
	EventUserDeleted    EventType = "user.deleted"
)

// AllEventTypes lists every event the service emits.
var AllEventTypes = []EventType{
	EventLoginSucceeded,
	EventLoginFailed,
	EventTokenRefreshed,
	EventLogout,
	EventUserRegistered,
	EventUserDeleted,
}

// Event represents an audit event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Username  string      `json:"username,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, subjectID, username string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Username:  username,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload. Reason stays server-side only.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Role domain.Role `json:"role"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	DeletedBy string `json:"deleted_by"`
}

// LogoutPayload payload.
type LogoutPayload struct {
	RevokedTokens int `json:"revoked_tokens"`
}
