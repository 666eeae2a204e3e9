// Package awaitable provides the human-in-the-loop suspension primitives: a
// typed, identified request for external input that suspends a process, and
// the response that resumes it.
package awaitable

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind is the closed set of awaitable variants. Anything outside this set is
// rejected with ErrUnsupportedKind rather than crashing at a suspension
// branch.
type Kind string

const (
	// KindConfirmation asks a human to accept or reject an action.
	KindConfirmation Kind = "confirmation"

	// KindFormSubmission asks a human for structured form data.
	KindFormSubmission Kind = "form_submission"
)

// Valid reports whether the kind is in the supported set.
func (k Kind) Valid() bool {
	return k == KindConfirmation || k == KindFormSubmission
}

// Awaitable is a pending request for external input. A process has at most
// one outstanding awaitable at a time, and an awaitable has at most one
// response.
type Awaitable struct {
	ID        string          `json:"id"`
	ProcessID string          `json:"process_id"`
	Kind      Kind            `json:"kind"`
	Message   string          `json:"message"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewConfirmation creates a confirmation request with a human-readable
// message describing what is being confirmed.
func NewConfirmation(message string, payload any) (*Awaitable, error) {
	return newAwaitable(KindConfirmation, message, payload)
}

// NewFormSubmission creates a structured-input request. The payload
// typically describes the form fields being asked for.
func NewFormSubmission(message string, payload any) (*Awaitable, error) {
	return newAwaitable(KindFormSubmission, message, payload)
}

func newAwaitable(kind Kind, message string, payload any) (*Awaitable, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = data
	}
	return &Awaitable{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Payload:   raw,
		CreatedAt: time.Now(),
	}, nil
}

// Response resumes exactly one suspended process. Accepted answers a
// confirmation; FormData answers a form submission.
type Response struct {
	AwaitableID string         `json:"awaitable_id"`
	Accepted    *bool          `json:"accepted,omitempty"`
	FormData    map[string]any `json:"form_data,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// NewConfirmationResponse answers a confirmation awaitable.
func NewConfirmationResponse(awaitableID string, accepted bool) Response {
	return Response{
		AwaitableID: awaitableID,
		Accepted:    &accepted,
		Timestamp:   time.Now(),
	}
}

// NewFormResponse answers a form-submission awaitable.
func NewFormResponse(awaitableID string, formData map[string]any) Response {
	return Response{
		AwaitableID: awaitableID,
		FormData:    formData,
		Timestamp:   time.Now(),
	}
}

// ValidateAgainst checks that the response matches the awaitable it claims
// to answer: a confirmation needs an Accepted value, a form submission needs
// form data.
func (r Response) ValidateAgainst(aw *Awaitable) error {
	if aw == nil || r.AwaitableID != aw.ID {
		return ErrUnknownAwaitable
	}
	switch aw.Kind {
	case KindConfirmation:
		if r.Accepted == nil {
			return ErrInvalidResponse
		}
	case KindFormSubmission:
		if r.FormData == nil {
			return ErrInvalidResponse
		}
	default:
		return ErrUnsupportedKind
	}
	return nil
}
