package service

import (
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"

	"moviedex/internal/biz"
)

// toAPIError maps a use case error to the kratos error sent to clients.
// Messages are the texts shown to users.
func toAPIError(err error) error {
	var ve *biz.ValidationError
	switch {
	case stderrors.As(err, &ve):
		return errors.New(422, "VALIDATION_FAILED", ve.Error()).WithMetadata(ve.Fields)
	case stderrors.Is(err, biz.ErrMetadataNotFound):
		return errors.NotFound("MOVIE_NOT_IN_METADATA", "Please check your spelling or enter another movie. That movie was not found in the API")
	case stderrors.Is(err, biz.ErrMetadataUnavailable):
		return errors.ServiceUnavailable("METADATA_UNAVAILABLE", "The movie lookup service is not responding. Please try again later")
	case stderrors.Is(err, biz.ErrDuplicateMovie):
		return errors.Conflict("DUPLICATE_MOVIE", "Someone already entered this movie in the database")
	case stderrors.Is(err, biz.ErrActorNotFound):
		return errors.NotFound("ACTOR_NOT_FOUND", "No actor with that name is in the database")
	case stderrors.Is(err, biz.ErrMovieNotFound):
		return errors.NotFound("MOVIE_NOT_FOUND", "No movie with that name is in the database")
	case stderrors.Is(err, biz.ErrEmailTaken):
		return errors.Conflict("ACCOUNT_EXISTS", "Email already registered.")
	case stderrors.Is(err, biz.ErrUsernameTaken):
		return errors.Conflict("ACCOUNT_EXISTS", "Username already taken")
	case stderrors.Is(err, biz.ErrInvalidCredentials):
		return errors.Unauthorized("UNAUTHORIZED", "Invalid username or password.")
	case stderrors.Is(err, biz.ErrTokenRevoked), stderrors.Is(err, biz.ErrUserNotFound):
		return errors.Unauthorized("UNAUTHORIZED", "Please log in again")
	default:
		return errors.InternalServer("INTERNAL", "Something went wrong, nothing was saved").WithCause(err)
	}
}
