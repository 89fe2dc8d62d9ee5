package service

import (
	"fmt"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"

	"moviedex/internal/biz"
)

func TestToAPIError(t *testing.T) {
	tests := []struct {
		err    error
		code   int
		reason string
		msg    string
	}{
		{&biz.ValidationError{Fields: map[string]string{"title": "Your movie name must be at least 3 characters"}}, 422, "VALIDATION_FAILED", "Your movie name must be at least 3 characters"},
		{biz.ErrMetadataNotFound, 404, "MOVIE_NOT_IN_METADATA", "Please check your spelling or enter another movie. That movie was not found in the API"},
		{fmt.Errorf("%w: timeout", biz.ErrMetadataUnavailable), 503, "METADATA_UNAVAILABLE", ""},
		{biz.ErrDuplicateMovie, 409, "DUPLICATE_MOVIE", "Someone already entered this movie in the database"},
		{fmt.Errorf("failed to delete actor: %w", biz.ErrActorNotFound), 404, "ACTOR_NOT_FOUND", ""},
		{fmt.Errorf("failed to update rating: %w", biz.ErrMovieNotFound), 404, "MOVIE_NOT_FOUND", ""},
		{biz.ErrEmailTaken, 409, "ACCOUNT_EXISTS", "Email already registered."},
		{biz.ErrUsernameTaken, 409, "ACCOUNT_EXISTS", "Username already taken"},
		{biz.ErrInvalidCredentials, 401, "UNAUTHORIZED", "Invalid username or password."},
		{biz.ErrTokenRevoked, 401, "UNAUTHORIZED", ""},
		{fmt.Errorf("failed to store movie: %w", fmt.Errorf("disk full")), 500, "INTERNAL", ""},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			e := errors.FromError(toAPIError(tt.err))
			if int(e.Code) != tt.code || e.Reason != tt.reason {
				t.Fatalf("got %d %s, want %d %s", e.Code, e.Reason, tt.code, tt.reason)
			}
			if tt.msg != "" && e.Message != tt.msg {
				t.Fatalf("message = %q, want %q", e.Message, tt.msg)
			}
		})
	}
}

func TestValidationErrorCarriesFields(t *testing.T) {
	err := toAPIError(&biz.ValidationError{Fields: map[string]string{
		"genre":  "That is not an option for a genre",
		"rating": "Rating must be from 1-5",
	}})
	e := errors.FromError(err)
	if e.Metadata["genre"] != "That is not an option for a genre" || e.Metadata["rating"] != "Rating must be from 1-5" {
		t.Fatalf("metadata = %v", e.Metadata)
	}
}
