package biz

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrMovieNotFound       = errors.New("movie not found")
	ErrActorNotFound       = errors.New("actor not found")
	ErrDirectorNotFound    = errors.New("director not found")
	ErrGenreNotFound       = errors.New("genre not found")
	ErrDuplicateMovie      = errors.New("movie already exists")
	ErrMetadataNotFound    = errors.New("movie not found in metadata service")
	ErrMetadataUnavailable = errors.New("metadata service unavailable")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenRevoked        = errors.New("token revoked")
)

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
