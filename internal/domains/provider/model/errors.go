package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeProviderNotFound = "PRV001"
	ErrCodeValidation       = "PRV002"
)

var ErrProviderNotFound = errors.New("provider not found")

type ProviderError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderNotFoundError(id string) *ProviderError {
	return &ProviderError{
		Code:    ErrCodeProviderNotFound,
		Message: fmt.Sprintf("Provider %s not found", id),
		Err:     ErrProviderNotFound,
	}
}

func NewValidationError(message string) *ProviderError {
	return &ProviderError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}
