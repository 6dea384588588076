package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is not active")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrInvalidActivation  = errors.New("activation link is invalid or has expired")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrDuplicateRating    = errors.New("duplicate rating")
	ErrRatingNotFound     = errors.New("rating does not exist")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrStorageUnavailable = errors.New("image storage is not configured")
)

// NonFieldErrors is the key for validation messages that concern the whole object.
const NonFieldErrors = "non_field_errors"

// ValidationError collects field level messages. Err, when set, is the
// sentinel the failure corresponds to so callers can still use errors.Is.
type ValidationError struct {
	Fields map[string][]string
	Err    error
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// FieldError is shorthand for a validation error with a single message.
func FieldError(field, message string, sentinel error) *ValidationError {
	v := NewValidationError()
	v.Add(field, message)
	v.Err = sentinel
	return v
}

func (v *ValidationError) Add(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// OrNil returns v as an error only when it holds messages.
func (v *ValidationError) OrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(v.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationError) Unwrap() error {
	return v.Err
}

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func checkOwner(actorID, ownerID uint) error {
	if actorID != ownerID {
		return ErrForbidden
	}
	return nil
}
