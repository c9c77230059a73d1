package service

import (
	"errors"
	"fmt"

	"tickr/internal/repository"
)

// Kind classifies a service failure; handlers map it to an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindValidation
	KindQuota
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindQuota:
		return "quota"
	}
	return "internal"
}

// Error carries a short caller-safe message. Err, when set, is the
// underlying cause and is never shown to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err; anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func errUnauthenticated() error {
	return &Error{Kind: KindUnauthenticated, Message: "Not authenticated"}
}

func errForbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func errNotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func errValidation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func errQuota(msg string) error {
	return &Error{Kind: KindQuota, Message: msg}
}

func errInternal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// translate maps repository sentinels to not-found errors and wraps the rest.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrWorkspaceNotFound):
		return errNotFound("Workspace not found")
	case errors.Is(err, repository.ErrColumnNotFound):
		return errNotFound("Column not found")
	case errors.Is(err, repository.ErrTaskNotFound):
		return errNotFound("Task not found")
	case errors.Is(err, repository.ErrSubtaskNotFound):
		return errNotFound("Subtask not found")
	case errors.Is(err, repository.ErrMemberNotFound):
		return errNotFound("Member not found")
	case errors.Is(err, repository.ErrInviteNotFound):
		return errNotFound("Invitation not found")
	case errors.Is(err, repository.ErrUserNotFound):
		return errNotFound("User not found")
	}
	return errInternal(msg, err)
}
