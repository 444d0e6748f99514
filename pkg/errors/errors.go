package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes for the catalog engine.
const (
	// Domain errors
	ErrCodeGameNotFound        = "GAME_NOT_FOUND"
	ErrCodeAchievementNotFound = "ACHIEVEMENT_NOT_FOUND"
	ErrCodeInvalidRating       = "INVALID_RATING"
	ErrCodeGameNotPlayable     = "GAME_NOT_PLAYABLE"

	// Storage errors
	ErrCodeStorageError   = "STORAGE_ERROR"
	ErrCodeMalformedState = "MALFORMED_STATE"

	// Config errors
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"

	// Validation errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"

	// Notification errors
	ErrCodeNotifyFailed = "NOTIFY_FAILED"
)

// CatalogError represents an error raised by the catalog engine or one of its adapters.
type CatalogError struct {
	Code    string
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(code, message string, err error) *CatalogError {
	return &CatalogError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether err (or anything it wraps) is a CatalogError with the given code.
func HasCode(err error, code string) bool {
	var ce *CatalogError
	if stderrors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// Domain-specific error constructors

// ErrGameNotFound returns an error when a game id has no catalog record.
func ErrGameNotFound(gameID string) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeGameNotFound,
		Message: fmt.Sprintf("game not found: %s", gameID),
	}
}

// ErrGameNotPlayable is returned when a coming-soon teaser is launched.
func ErrGameNotPlayable(gameID string) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeGameNotPlayable,
		Message: fmt.Sprintf("game is not playable yet: %s", gameID),
	}
}

// ErrAchievementNotFound returns an error when an achievement id is unknown.
func ErrAchievementNotFound(achievementID string) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeAchievementNotFound,
		Message: fmt.Sprintf("achievement not found: %s", achievementID),
	}
}

// ErrInvalidRating returns an error for a star value outside 1..5.
func ErrInvalidRating(gameID string, star int) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeInvalidRating,
		Message: fmt.Sprintf("rating for %s must be between 1 and 5, got %d", gameID, star),
	}
}

// ErrStorageError wraps persistence backend errors.
func ErrStorageError(operation string, err error) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeStorageError,
		Message: fmt.Sprintf("storage error during %s", operation),
		Err:     err,
	}
}

// ErrMalformedState reports a persisted key that could not be decoded.
func ErrMalformedState(key string, err error) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeMalformedState,
		Message: fmt.Sprintf("malformed persisted value for key %s", key),
		Err:     err,
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(reason string) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeConfigInvalid,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
	}
}

// ErrConfigNotFound wraps a missing catalog file.
func ErrConfigNotFound(path string, err error) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeConfigNotFound,
		Message: fmt.Sprintf("failed to read config file %s", path),
		Err:     err,
	}
}

// ErrValidationFailed returns a validation error.
func ErrValidationFailed(field, reason string) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}

// ErrNotifyFailed wraps a failure to deliver an achievement notification.
func ErrNotifyFailed(achievementID string, err error) *CatalogError {
	return &CatalogError{
		Code:    ErrCodeNotifyFailed,
		Message: fmt.Sprintf("failed to publish unlock of %s", achievementID),
		Err:     err,
	}
}
