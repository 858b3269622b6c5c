package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Quiz specific errors
	ErrInvalidSlug     ErrorCode = "INVALID_SLUG"
	ErrPackNotFound    ErrorCode = "PACK_NOT_FOUND"
	ErrAttemptNotFound ErrorCode = "ATTEMPT_NOT_FOUND"
	ErrUpgradeRequired ErrorCode = "UPGRADE_REQUIRED"
	ErrMailerError     ErrorCode = "MAILER_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewInvalidSlugError(slug string) *DomainError {
	return NewError(ErrInvalidSlug, fmt.Sprintf("Invalid pack slug: %s", slug), nil)
}

func NewPackNotFoundError(slug string) *DomainError {
	return NewError(ErrPackNotFound, fmt.Sprintf("Pack not found: %s", slug), nil)
}

func NewAttemptNotFoundError(attemptID string) *DomainError {
	return NewError(ErrAttemptNotFound, fmt.Sprintf("Attempt not found: %s", attemptID), nil)
}

func NewUpgradeRequiredError(message string) *DomainError {
	return NewError(ErrUpgradeRequired, message, nil)
}

func NewMailerError(err error) *DomainError {
	return NewError(ErrMailerError, "Failed to send report email", err)
}
