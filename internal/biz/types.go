package biz

import (
	"context"
	"time"
)

// Director is identified by FullName.
type Director struct {
	ID       uint
	FullName string
}

// Genre is identified by GenreName and collects the directors of every movie
// filed under it.
type Genre struct {
	ID        uint
	GenreName string
}

// Movie is identified by Name. It has exactly one genre and one director.
type Movie struct {
	ID         uint
	Name       string
	Rating     int
	GenreID    uint
	DirectorID uint
}

// Actor is identified by the pair (ActorName, MovieID).
type Actor struct {
	ID        uint
	ActorName string
	MovieID   uint
}

// User is an account holder. Users have no relation to catalog data.
type User struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// MovieRow is a movie joined with its director and genre names.
type MovieRow struct {
	Name     string
	Rating   int
	Director string
	Genre    string
}

// ActorRow is an actor joined with the movie it is credited on.
type ActorRow struct {
	Actor string
	Movie string
}

// GenreRow is a genre with the number of directors associated with it.
type GenreRow struct {
	Genre         string
	DirectorCount int64
}

// MovieListQuery pages through the movie listing. A zero Limit returns
// every row.
type MovieListQuery struct {
	Limit  int
	Cursor string
}

// MoviePage is one page of the movie listing.
type MoviePage struct {
	Items      []*MovieRow
	NextCursor string
}

// MovieMetadata is what the metadata service knows about a title.
type MovieMetadata struct {
	Title    string
	Director string
	Actors   []string
}

// Submission is everything stored for one submitted movie.
type Submission struct {
	Movie    *Movie
	Director *Director
	Genre    *Genre
	Actors   []*Actor
}

// CatalogRepo reads the catalog and opens write transactions on it.
type CatalogRepo interface {
	// InTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(ctx context.Context, tx CatalogTx) error) error

	FindMovie(ctx context.Context, name string) (*MovieRow, error)
	ListMovies(ctx context.Context, query *MovieListQuery) (*MoviePage, error)
	MoviesByRating(ctx context.Context, rating int) ([]*MovieRow, error)
	ListActors(ctx context.Context) ([]*ActorRow, error)
	ListDirectors(ctx context.Context) ([]*Director, error)
	ListGenres(ctx context.Context) ([]*GenreRow, error)
	UpdateRating(ctx context.Context, name string, rating int) (*MovieRow, error)
	DeleteActor(ctx context.Context, name string) (int64, error)
}

// CatalogTx is the get-or-create layer, bound to one open transaction.
type CatalogTx interface {
	GetOrCreateDirector(ctx context.Context, fullName string) (*Director, error)
	// GetOrCreateGenre gets or creates the director by name and adds it to
	// the genre's director set, whether or not the genre already existed.
	GetOrCreateGenre(ctx context.Context, genreName, directorName string) (*Genre, error)
	// GetOrCreateMovie reports whether the movie was inserted by this call.
	GetOrCreateMovie(ctx context.Context, movie *Movie) (*Movie, bool, error)
	GetOrCreateActor(ctx context.Context, actorName string, movieID uint) (*Actor, error)
}

// MetadataClient looks movie titles up in the external metadata service.
type MetadataClient interface {
	Lookup(ctx context.Context, title string) (*MovieMetadata, error)
}

// Locker serializes work on one key across concurrent requests.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// UserRepo stores accounts.
type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	FindUserByID(ctx context.Context, id uint) (*User, error)
}

// TokenDenylist remembers revoked token ids until they would have expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}
