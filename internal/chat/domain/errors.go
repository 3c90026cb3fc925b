package domain

import "errors"

// Error taxonomy for the ingest pipeline and signal relay.
// Every category maps onto one sender-scoped error event.
var (
	// ErrValidation a required field is absent
	ErrValidation = errors.New("validation error")
	// ErrContentRejected content matched a dangerous pattern or sanitized to nothing
	ErrContentRejected = errors.New("content rejected")
	// ErrNotParticipant the caller is not part of the conversation
	ErrNotParticipant = errors.New("not a conversation participant")
	// ErrNotSender only the sender may delete a message
	ErrNotSender = errors.New("not the message sender")
	// ErrNotFound the referenced entity does not exist
	ErrNotFound = errors.New("not found")
)

// ErrorCategory failure category name carried by the message-error event
func ErrorCategory(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrContentRejected):
		return "content_rejected"
	case errors.Is(err, ErrNotParticipant), errors.Is(err, ErrNotSender):
		return "authorization_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "persistence_error"
	}
}
