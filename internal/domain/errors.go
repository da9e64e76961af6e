package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Pipeline specific errors
	CodeExtractionFailure ErrorCode = "EXTRACTION_FAILURE"
	CodeInsufficientInput ErrorCode = "INSUFFICIENT_INPUT"
	CodeEmptyQuizResult   ErrorCode = "EMPTY_QUIZ_RESULT"
	CodeQuizNotFound      ErrorCode = "QUIZ_NOT_FOUND"
	CodeInvalidAnswer     ErrorCode = "INVALID_ANSWER"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
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
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

// NewExtractionFailureError reports that readable text could not be salvaged
// from an uploaded document. Recoverable: the caller should paste text directly.
func NewExtractionFailureError(cause error) *DomainError {
	return NewError(CodeExtractionFailure, "Could not extract readable text from the document; paste text directly", cause)
}

// NewInsufficientInputError rejects input below the minimum length before the
// pipeline runs.
func NewInsufficientInputError(minLength int) *DomainError {
	return NewError(CodeInsufficientInput, fmt.Sprintf("Input text must be at least %d characters long", minLength), nil)
}

// NewEmptyQuizResultError reports that valid input yielded zero questions.
func NewEmptyQuizResultError() *DomainError {
	return NewError(CodeEmptyQuizResult, "Could not generate questions from this text; it may lack enough structured content", nil)
}
