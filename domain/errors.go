package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotLoggedIn indicates an action that needs an account was attempted without one.
	ErrNotLoggedIn = errors.New("you need to log in first")

	// ErrNoInstance indicates the current session has no instance selected.
	ErrNoInstance = errors.New("no instance selected")

	// ErrWrongCredentials indicates the server accepted the login call but granted no token.
	ErrWrongCredentials = errors.New("wrong credentials")

	// ErrEmptyTitle indicates a post was submitted without a title.
	ErrEmptyTitle = errors.New("post title cannot be empty")

	// ErrEmptyBody indicates a comment, report or message was submitted empty.
	ErrEmptyBody = errors.New("content cannot be empty")

	// ErrNoSuchAccount indicates an account index outside the stored accounts.
	ErrNoSuchAccount = errors.New("no such account")

	// ErrRemoveCurrent indicates an attempt to remove the active account.
	ErrRemoveCurrent = errors.New("cannot remove the active account")
)

// ErrorKind classifies failures crossing the worker boundary.
type ErrorKind int

const (
	// ErrorKindTransport covers network, connection and timeout failures.
	ErrorKindTransport ErrorKind = iota + 1
	// ErrorKindServer covers responses where the server rejected the request.
	ErrorKindServer
	// ErrorKindMalformed covers responses that could not be decoded.
	ErrorKindMalformed
	// ErrorKindInternal covers panics recovered inside a worker.
	ErrorKindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindServer:
		return "server"
	case ErrorKindMalformed:
		return "malformed"
	case ErrorKindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// APIError is the classified failure returned by the transport.
type APIError struct {
	Kind    ErrorKind
	Status  int    // HTTP status, server errors only
	Message string // Server-provided error code or description
	Err     error  // Underlying cause, if any
}

func (e *APIError) Error() string {
	switch e.Kind {
	case ErrorKindServer:
		if e.Message != "" {
			return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
		}
		return fmt.Sprintf("server returned %d", e.Status)
	default:
		msg := e.Message
		if msg == "" && e.Err != nil {
			msg = e.Err.Error()
		}
		return e.Kind.String() + " error: " + msg
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// Is reports authentication rejections as ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	if target != ErrUnauthorized || e.Kind != ErrorKindServer {
		return false
	}
	switch e.Message {
	case "not_logged_in", "incorrect_login", "not_a_moderator", "not_an_admin":
		return true
	}
	return e.Status == 401
}

// Describe turns an error into the text shown on the message screen.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case ErrorKindTransport:
			return "Could not reach the instance: " + causeText(apiErr)
		case ErrorKindServer:
			if apiErr.Message != "" {
				return fmt.Sprintf("The instance rejected the request (%d): %s", apiErr.Status, humanize(apiErr.Message))
			}
			return fmt.Sprintf("The instance rejected the request (%d).", apiErr.Status)
		case ErrorKindMalformed:
			return "Unexpected response from the instance: " + causeText(apiErr)
		case ErrorKindInternal:
			return "Something went wrong: " + causeText(apiErr)
		}
	}
	if errors.Is(err, ErrWrongCredentials) {
		return "Wrong credentials!"
	}
	msg := err.Error()
	if msg == "" {
		return "Unknown error."
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}

func causeText(e *APIError) string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return "unknown cause"
}

// humanize turns Lemmy's snake_case error codes into words.
func humanize(code string) string {
	if strings.ContainsAny(code, " .") {
		return code
	}
	return strings.ReplaceAll(code, "_", " ")
}
