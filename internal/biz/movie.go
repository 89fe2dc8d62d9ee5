package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"

	"moviedex/internal/metrics"
)

// SubmitMovieRequest is one movie submission.
type SubmitMovieRequest struct {
	Title  string `label:"title" validate:"required,min=3"`
	Genre  string `label:"genre" validate:"required,genre"`
	Rating int    `label:"rating" validate:"min=1,max=5"`
}

type ratingSearch struct {
	Rating int `label:"rating" validate:"min=1,max=5"`
}

type ratingUpdate struct {
	Name      string `label:"name" validate:"required"`
	NewRating int    `label:"new_rating" validate:"min=1,max=5"`
}

type listQuery struct {
	Limit int `label:"limit" validate:"min=0,max=100"`
}

// MovieUseCase records movies and serves the catalog listings.
type MovieUseCase struct {
	catalog  CatalogRepo
	metadata MetadataClient
	locker   Locker
	log      *log.Helper
}

// NewMovieUseCase creates a new MovieUseCase instance
func NewMovieUseCase(catalog CatalogRepo, metadata MetadataClient, locker Locker, logger log.Logger) *MovieUseCase {
	return &MovieUseCase{
		catalog:  catalog,
		metadata: metadata,
		locker:   locker,
		log:      log.NewHelper(log.With(logger, "module", "biz/movie")),
	}
}

// SubmitMovie validates the request, looks the title up in the metadata
// service and stores director, genre, movie and actors in one transaction.
// Nothing is written when any step fails.
func (uc *MovieUseCase) SubmitMovie(ctx context.Context, req *SubmitMovieRequest) (*Submission, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Genre = strings.TrimSpace(req.Genre)
	if err := validateStruct(req); err != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, "submit:"+req.Title)
	if err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to lock submission: %w", err)
	}
	defer unlock()

	_, err = uc.catalog.FindMovie(ctx, req.Title)
	switch {
	case err == nil:
		metrics.Submissions.WithLabelValues("duplicate").Inc()
		return nil, ErrDuplicateMovie
	case !errors.Is(err, ErrMovieNotFound):
		metrics.Submissions.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to check for duplicate movie: %w", err)
	}

	md, err := uc.metadata.Lookup(ctx, req.Title)
	if err != nil {
		if errors.Is(err, ErrMetadataNotFound) {
			metrics.Submissions.WithLabelValues("not_found").Inc()
		} else {
			metrics.Submissions.WithLabelValues("unavailable").Inc()
		}
		uc.log.Infof("metadata lookup for '%s' failed: %v", req.Title, err)
		return nil, err
	}

	var (
		sub  *Submission
		step string
	)
	err = uc.catalog.InTx(ctx, func(ctx context.Context, tx CatalogTx) error {
		s := &Submission{}
		var err error

		step = "director"
		if s.Director, err = tx.GetOrCreateDirector(ctx, md.Director); err != nil {
			return err
		}

		step = "genre"
		if s.Genre, err = tx.GetOrCreateGenre(ctx, req.Genre, md.Director); err != nil {
			return err
		}

		step = "movie"
		var created bool
		s.Movie, created, err = tx.GetOrCreateMovie(ctx, &Movie{
			Name:       req.Title,
			Rating:     req.Rating,
			GenreID:    s.Genre.ID,
			DirectorID: s.Director.ID,
		})
		if err != nil {
			return err
		}
		if !created {
			return ErrDuplicateMovie
		}

		step = "actors"
		seen := make(map[uint]bool, len(md.Actors))
		for _, name := range md.Actors {
			a, err := tx.GetOrCreateActor(ctx, name, s.Movie.ID)
			if err != nil {
				return err
			}
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			s.Actors = append(s.Actors, a)
		}

		sub = s
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateMovie) {
			metrics.Submissions.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		metrics.Submissions.WithLabelValues("failed").Inc()
		uc.log.Errorf("submission of '%s' rolled back at step %s: %v", req.Title, step, err)
		return nil, fmt.Errorf("failed to store movie: %w", err)
	}

	metrics.Submissions.WithLabelValues("created").Inc()
	uc.log.Infof("movie '%s' added with %d actors", sub.Movie.Name, len(sub.Actors))
	return sub, nil
}

// GetMovie retrieves a movie by its name
func (uc *MovieUseCase) GetMovie(ctx context.Context, name string) (*MovieRow, error) {
	row, err := uc.catalog.FindMovie(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return row, nil
}

// ListMovies retrieves one page of movies with director and genre names.
func (uc *MovieUseCase) ListMovies(ctx context.Context, query *MovieListQuery) (*MoviePage, error) {
	if err := validateStruct(&listQuery{Limit: query.Limit}); err != nil {
		return nil, err
	}
	page, err := uc.catalog.ListMovies(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return page, nil
}

// SearchByRating returns the movies rated exactly rating. No match is an
// empty result, not an error.
func (uc *MovieUseCase) SearchByRating(ctx context.Context, rating int) ([]*MovieRow, error) {
	if err := validateStruct(&ratingSearch{Rating: rating}); err != nil {
		return nil, err
	}
	rows, err := uc.catalog.MoviesByRating(ctx, rating)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return rows, nil
}

// UpdateRating changes the rating of an existing movie.
func (uc *MovieUseCase) UpdateRating(ctx context.Context, name string, rating int) (*MovieRow, error) {
	name = strings.TrimSpace(name)
	if err := validateStruct(&ratingUpdate{Name: name, NewRating: rating}); err != nil {
		return nil, err
	}
	row, err := uc.catalog.UpdateRating(ctx, name, rating)
	if err != nil {
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}
	uc.log.Infof("rating of '%s' updated to %d", name, rating)
	return row, nil
}

func (uc *MovieUseCase) ListActors(ctx context.Context) ([]*ActorRow, error) {
	rows, err := uc.catalog.ListActors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list actors: %w", err)
	}
	return rows, nil
}

// DeleteActor removes every credit of the named actor and returns how many
// were removed. An unknown name yields ErrActorNotFound.
func (uc *MovieUseCase) DeleteActor(ctx context.Context, name string) (int64, error) {
	n, err := uc.catalog.DeleteActor(ctx, strings.TrimSpace(name))
	if err != nil {
		return 0, fmt.Errorf("failed to delete actor: %w", err)
	}
	uc.log.Infof("deleted actor '%s' (%d credits)", name, n)
	return n, nil
}

func (uc *MovieUseCase) ListDirectors(ctx context.Context) ([]*Director, error) {
	ds, err := uc.catalog.ListDirectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}
	return ds, nil
}

func (uc *MovieUseCase) ListGenres(ctx context.Context) ([]*GenreRow, error) {
	gs, err := uc.catalog.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return gs, nil
}
