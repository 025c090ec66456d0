package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeEmailTaken         = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeValidation         = "USR004"
	ErrCodeUnauthorized       = "USR005"
)

// Sentinel errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("authentication required")
)

type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func NewUserNotFoundError() *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}

func NewEmailTakenError(email string) *UserError {
	return &UserError{
		Code:    ErrCodeEmailTaken,
		Message: fmt.Sprintf("An account with email %s already exists", email),
		Err:     ErrEmailTaken,
	}
}

// NewInvalidCredentialsError is returned for both unknown emails and
// wrong passwords, so login failures never reveal which one it was.
func NewInvalidCredentialsError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid email or password",
		Err:     ErrInvalidCredentials,
	}
}

func NewValidationError(message string) *UserError {
	return &UserError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError() *UserError {
	return &UserError{
		Code:    ErrCodeUnauthorized,
		Message: "Authentication required",
		Err:     ErrUnauthorized,
	}
}
