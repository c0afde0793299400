// Package apperr defines the typed failures surfaced by the service layer.
// Controllers map these to HTTP statuses; nothing here is fatal to the process.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity is absent or soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers malformed or missing required input.
	ErrValidation = errors.New("validation error")

	// ErrInvalidState is returned when a state-machine transition is attempted
	// from a terminal or mismatched state.
	ErrInvalidState = errors.New("invalid state")

	// ErrWrongRecipient is returned when an invite token resolves to an invite
	// whose receiver differs from the authenticated caller.
	ErrWrongRecipient = errors.New("wrong recipient")

	// ErrInvalidToken is the codec's single failure outcome. Expired, tampered
	// and malformed tokens are deliberately indistinguishable.
	ErrInvalidToken = errors.New("invalid token")

	// Submission engine validation failures.
	ErrIncompleteSubmission       = errors.New("incomplete submission")
	ErrQuestionNotInQuestionnaire = errors.New("question does not belong to questionnaire")
	ErrInvalidChoice              = errors.New("invalid choice")
)

// NotFoundf wraps ErrNotFound with entity context.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf wraps ErrValidation with field-level detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// InvalidStatef wraps ErrInvalidState with transition context.
func InvalidStatef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidState)...)
}
