package data

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"moviedex/internal/biz"

	"gorm.io/gorm"
)

type actorRow struct {
	Actor string
	Movie string
}

type genreRow struct {
	Genre         string
	DirectorCount int64
}

// movieQuery joins every movie with its director and genre names. Movies
// with a dangling reference drop out of the inner joins.
func (r *catalogRepo) movieQuery(ctx context.Context) *gorm.DB {
	return r.data.db.WithContext(ctx).
		Table("movies").
		Select("movies.name, movies.rating, directors.full_name AS director, genres.genre_name AS genre").
		Joins("JOIN directors ON directors.id = movies.director_id").
		Joins("JOIN genres ON genres.id = movies.genre_id")
}

func (r *catalogRepo) FindMovie(ctx context.Context, name string) (*biz.MovieRow, error) {
	var rows []movieRow
	if err := r.movieQuery(ctx).Where("movies.name = ?", name).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	if len(rows) == 0 {
		return nil, biz.ErrMovieNotFound
	}
	return toMovieRow(&rows[0]), nil
}

func (r *catalogRepo) ListMovies(ctx context.Context, query *biz.MovieListQuery) (*biz.MoviePage, error) {
	// Decode cursor to get offset
	offset := 0
	if query.Cursor != "" {
		var err error
		offset, err = decodeCursor(query.Cursor)
		if err != nil {
			return nil, &biz.ValidationError{Fields: map[string]string{"cursor": "invalid cursor"}}
		}
	}

	db := r.movieQuery(ctx).Order("movies.id")

	// fetch limit+1 to detect if there are more pages
	limit := query.Limit
	if limit > 0 {
		db = db.Offset(offset).Limit(limit + 1)
	} else if offset > 0 {
		db = db.Offset(offset)
	}

	var rows []movieRow
	if err := db.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	hasMore := limit > 0 && len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	page := &biz.MoviePage{Items: make([]*biz.MovieRow, 0, len(rows))}
	for i := range rows {
		page.Items = append(page.Items, toMovieRow(&rows[i]))
	}
	if hasMore {
		page.NextCursor = encodeCursor(offset + limit)
	}
	return page, nil
}

func (r *catalogRepo) MoviesByRating(ctx context.Context, rating int) ([]*biz.MovieRow, error) {
	var rows []movieRow
	if err := r.movieQuery(ctx).Where("movies.rating = ?", rating).Order("movies.name").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search movies by rating: %w", err)
	}
	out := make([]*biz.MovieRow, 0, len(rows))
	for i := range rows {
		out = append(out, toMovieRow(&rows[i]))
	}
	return out, nil
}

func (r *catalogRepo) ListActors(ctx context.Context) ([]*biz.ActorRow, error) {
	var rows []actorRow
	err := r.data.db.WithContext(ctx).
		Table("actors").
		Select("actors.actor_name AS actor, movies.name AS movie").
		Joins("JOIN movies ON movies.id = actors.movie_id").
		Order("actors.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list actors: %w", err)
	}
	out := make([]*biz.ActorRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, &biz.ActorRow{Actor: row.Actor, Movie: row.Movie})
	}
	return out, nil
}

func (r *catalogRepo) ListDirectors(ctx context.Context) ([]*biz.Director, error) {
	var rows []Director
	if err := r.data.db.WithContext(ctx).Order("full_name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}
	out := make([]*biz.Director, 0, len(rows))
	for _, d := range rows {
		out = append(out, &biz.Director{ID: d.ID, FullName: d.FullName})
	}
	return out, nil
}

func (r *catalogRepo) ListGenres(ctx context.Context) ([]*biz.GenreRow, error) {
	var rows []genreRow
	err := r.data.db.WithContext(ctx).
		Table("genres").
		Select("genres.genre_name AS genre, COUNT(genre_directors.director_id) AS director_count").
		Joins("LEFT JOIN genre_directors ON genre_directors.genre_id = genres.id").
		Group("genres.id, genres.genre_name").
		Order("genres.genre_name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	out := make([]*biz.GenreRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, &biz.GenreRow{Genre: row.Genre, DirectorCount: row.DirectorCount})
	}
	return out, nil
}

func (r *catalogRepo) UpdateRating(ctx context.Context, name string, rating int) (*biz.MovieRow, error) {
	res := r.data.db.WithContext(ctx).Model(&Movie{}).Where("name = ?", name).Update("rating", rating)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, biz.ErrMovieNotFound
	}
	return r.FindMovie(ctx, name)
}

func (r *catalogRepo) DeleteActor(ctx context.Context, name string) (int64, error) {
	res := r.data.db.WithContext(ctx).Where("actor_name = ?", name).Delete(&Actor{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete actor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, biz.ErrActorNotFound
	}
	r.log.Infof("deleted %d credits of actor '%s'", res.RowsAffected, name)
	return res.RowsAffected, nil
}

func toMovieRow(m *movieRow) *biz.MovieRow {
	return &biz.MovieRow{
		Name:     m.Name,
		Rating:   m.Rating,
		Director: m.Director,
		Genre:    m.Genre,
	}
}

// encodeCursor encodes an offset into a base64 cursor string
func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// decodeCursor decodes a base64 cursor string back to an offset
func decodeCursor(cursor string) (int, error) {
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	offset, err := strconv.Atoi(string(decoded))
	if err != nil {
		return 0, fmt.Errorf("invalid cursor format: %w", err)
	}
	if offset < 0 {
		return 0, fmt.Errorf("invalid cursor offset %d", offset)
	}

	return offset, nil
}
