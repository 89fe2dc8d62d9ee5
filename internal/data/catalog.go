package data

import (
	"context"
	"fmt"

	"moviedex/internal/biz"
	"moviedex/internal/metrics"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type catalogRepo struct {
	data *Data
	log  *log.Helper
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(data *Data, logger log.Logger) biz.CatalogRepo {
	return &catalogRepo{
		data: data,
		log:  log.NewHelper(log.With(logger, "module", "data/catalog")),
	}
}

func (r *catalogRepo) InTx(ctx context.Context, fn func(ctx context.Context, tx biz.CatalogTx) error) error {
	return r.data.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &catalogTx{db: tx})
	})
}

// catalogTx is the get-or-create layer bound to one gorm transaction.
type catalogTx struct {
	db *gorm.DB
}

func (t *catalogTx) GetOrCreateDirector(ctx context.Context, fullName string) (*biz.Director, error) {
	d, created, err := getOrCreate(t.db.WithContext(ctx), &Director{FullName: fullName}, "full_name = ?", fullName)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create director: %w", err)
	}
	if created {
		metrics.CatalogRowsCreated.WithLabelValues("director").Inc()
	}
	return &biz.Director{ID: d.ID, FullName: d.FullName}, nil
}

func (t *catalogTx) GetOrCreateGenre(ctx context.Context, genreName, directorName string) (*biz.Genre, error) {
	db := t.db.WithContext(ctx)

	d, created, err := getOrCreate(db, &Director{FullName: directorName}, "full_name = ?", directorName)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create director: %w", err)
	}
	if created {
		metrics.CatalogRowsCreated.WithLabelValues("director").Inc()
	}

	g, created, err := getOrCreate(db, &Genre{GenreName: genreName}, "genre_name = ?", genreName)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create genre: %w", err)
	}
	if created {
		metrics.CatalogRowsCreated.WithLabelValues("genre").Inc()
	}

	// the association is a set, a repeated pair is a no-op
	err = db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&GenreDirector{GenreID: g.ID, DirectorID: d.ID}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to associate director with genre: %w", err)
	}

	return &biz.Genre{ID: g.ID, GenreName: g.GenreName}, nil
}

func (t *catalogTx) GetOrCreateMovie(ctx context.Context, movie *biz.Movie) (*biz.Movie, bool, error) {
	db := t.db.WithContext(ctx)

	if err := requireRow(db, &Director{}, movie.DirectorID, biz.ErrDirectorNotFound); err != nil {
		return nil, false, err
	}
	if err := requireRow(db, &Genre{}, movie.GenreID, biz.ErrGenreNotFound); err != nil {
		return nil, false, err
	}

	m, created, err := getOrCreate(db, &Movie{
		Name:       movie.Name,
		Rating:     movie.Rating,
		GenreID:    movie.GenreID,
		DirectorID: movie.DirectorID,
	}, "name = ?", movie.Name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get or create movie: %w", err)
	}
	if created {
		metrics.CatalogRowsCreated.WithLabelValues("movie").Inc()
	}

	return &biz.Movie{
		ID:         m.ID,
		Name:       m.Name,
		Rating:     m.Rating,
		GenreID:    m.GenreID,
		DirectorID: m.DirectorID,
	}, created, nil
}

func (t *catalogTx) GetOrCreateActor(ctx context.Context, actorName string, movieID uint) (*biz.Actor, error) {
	db := t.db.WithContext(ctx)

	if err := requireRow(db, &Movie{}, movieID, biz.ErrMovieNotFound); err != nil {
		return nil, err
	}

	a, created, err := getOrCreate(db, &Actor{ActorName: actorName, MovieID: movieID},
		"actor_name = ? AND movie_id = ?", actorName, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create actor: %w", err)
	}
	if created {
		metrics.CatalogRowsCreated.WithLabelValues("actor").Inc()
	}
	return &biz.Actor{ID: a.ID, ActorName: a.ActorName, MovieID: a.MovieID}, nil
}

// getOrCreate returns the row matching query, inserting row when there is
// none. It reports whether this call inserted. An insert that conflicts with
// a concurrent writer is resolved by reading the winning row.
func getOrCreate[T any](db *gorm.DB, row *T, query string, args ...interface{}) (*T, bool, error) {
	var found T
	res := db.Where(query, args...).Limit(1).Find(&found)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return &found, false, nil
	}

	res = db.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return row, true, nil
	}

	var winner T
	if err := db.Where(query, args...).First(&winner).Error; err != nil {
		return nil, false, err
	}
	return &winner, false, nil
}

// requireRow fails with notFound unless model has a row with the given id.
func requireRow(db *gorm.DB, model interface{}, id uint, notFound error) error {
	var n int64
	if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
