package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeProfileNotFound      = "PRF001"
	ErrCodeUnauthorized         = "PRF002"
	ErrCodeForbidden            = "PRF003"
	ErrCodeSlugTaken            = "PRF004"
	ErrCodeDuplicateContributor = "PRF005"
	ErrCodeSelfInvite           = "PRF006"
	ErrCodeInvitationNotFound   = "PRF007"
	ErrCodeCommentNotFound      = "PRF008"
	ErrCodeStoryNotFound        = "PRF009"
	ErrCodeInsufficientStories  = "PRF010"
	ErrCodeValidation           = "PRF011"
	ErrCodeVersionConflict      = "PRF012"
)

// Sentinel errors
var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrUnauthorized         = errors.New("authentication required")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrSlugTaken            = errors.New("slug already in use")
	ErrDuplicateContributor = errors.New("already a contributor")
	ErrSelfInvite           = errors.New("cannot invite the profile owner")
	ErrInvitationNotFound   = errors.New("no pending invitation found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrStoryNotFound        = errors.New("story not found")
	ErrInsufficientStories  = errors.New("not enough approved stories")
	ErrVersionConflict      = errors.New("profile was modified concurrently")
)

// ProfileError carries a stable code the HTTP layer maps 1:1 to a status,
// so callers can tell "log in" from "not allowed" from "already exists".
type ProfileError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProfileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

// Error constructors

func NewProfileNotFoundError() *ProfileError {
	return &ProfileError{
		Code:    ErrCodeProfileNotFound,
		Message: "Profile not found",
		Err:     ErrProfileNotFound,
	}
}

func NewUnauthorizedError() *ProfileError {
	return &ProfileError{
		Code:    ErrCodeUnauthorized,
		Message: "Authentication required",
		Err:     ErrUnauthorized,
	}
}

func NewForbiddenError(action string) *ProfileError {
	return &ProfileError{
		Code:    ErrCodeForbidden,
		Message: fmt.Sprintf("Not authorized to %s", action),
		Err:     ErrForbidden,
	}
}

func NewSlugTakenError(slug string) *ProfileError {
	return &ProfileError{
		Code:    ErrCodeSlugTaken,
		Message: fmt.Sprintf("A profile with slug %q already exists", slug),
		Err:     ErrSlugTaken,
	}
}

func NewDuplicateContributorError(email string) *ProfileError {
	return &ProfileError{
		Code:    ErrCodeDuplicateContributor,
		Message: fmt.Sprintf("%s is already a contributor", email),
		Err:     ErrDuplicateContributor,
	}
}

func NewSelfInviteError() *ProfileError {
	return &ProfileError{
		Code:    ErrCodeSelfInvite,
		Message: "Cannot add the profile owner as a contributor",
		Err:     ErrSelfInvite,
	}
}

func NewInvitationNotFoundError() *ProfileError {
	return &ProfileError{
		Code:    ErrCodeInvitationNotFound,
		Message: "No pending invitation found",
		Err:     ErrInvitationNotFound,
	}
}

func NewCommentNotFoundError() *ProfileError {
	return &ProfileError{
		Code:    ErrCodeCommentNotFound,
		Message: "Comment not found",
		Err:     ErrCommentNotFound,
	}
}

func NewStoryNotFoundError() *ProfileError {
	return &ProfileError{
		Code:    ErrCodeStoryNotFound,
		Message: "Story not found",
		Err:     ErrStoryNotFound,
	}
}

func NewInsufficientStoriesError() *ProfileError {
	return &ProfileError{
		Code:    ErrCodeInsufficientStories,
		Message: "At least 2 approved stories are required to generate a storybook",
		Err:     ErrInsufficientStories,
	}
}

func NewValidationError(message string) *ProfileError {
	return &ProfileError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewVersionConflictError() *ProfileError {
	return &ProfileError{
		Code:    ErrCodeVersionConflict,
		Message: "Profile was modified concurrently, please retry",
		Err:     ErrVersionConflict,
	}
}
