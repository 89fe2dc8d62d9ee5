package service

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	v1 "moviedex/api/movie/v1"
	"moviedex/internal/biz"
)

// MovieService implements the MovieService API
type MovieService struct {
	movieUC *biz.MovieUseCase
	log     *log.Helper
}

// NewMovieService creates a new MovieService
func NewMovieService(movieUC *biz.MovieUseCase, logger log.Logger) *MovieService {
	return &MovieService{
		movieUC: movieUC,
		log:     log.NewHelper(log.With(logger, "module", "service/movie")),
	}
}

// SubmitMovie implements movie submission
func (s *MovieService) SubmitMovie(ctx context.Context, req *v1.SubmitMovieRequest) (*v1.SubmitMovieReply, error) {
	sub, err := s.movieUC.SubmitMovie(ctx, &biz.SubmitMovieRequest{
		Title:  req.Title,
		Genre:  req.Genre,
		Rating: req.Rating,
	})
	if err != nil {
		return nil, toAPIError(err)
	}

	reply := &v1.SubmitMovieReply{
		Message: "movie successfully added to the db",
		Movie: &v1.Movie{
			Id:         uint64(sub.Movie.ID),
			Name:       sub.Movie.Name,
			Rating:     sub.Movie.Rating,
			GenreId:    uint64(sub.Movie.GenreID),
			DirectorId: uint64(sub.Movie.DirectorID),
		},
		Director: directorToAPI(sub.Director),
		Genre: &v1.Genre{
			Id:        uint64(sub.Genre.ID),
			GenreName: sub.Genre.GenreName,
		},
		Actors: make([]*v1.Actor, 0, len(sub.Actors)),
	}
	for _, a := range sub.Actors {
		reply.Actors = append(reply.Actors, &v1.Actor{
			Id:        uint64(a.ID),
			ActorName: a.ActorName,
			MovieId:   uint64(a.MovieID),
		})
	}
	return reply, nil
}

// ListMovies implements movie listing
func (s *MovieService) ListMovies(ctx context.Context, req *v1.ListMoviesRequest) (*v1.ListMoviesReply, error) {
	page, err := s.movieUC.ListMovies(ctx, &biz.MovieListQuery{
		Limit:  req.Limit,
		Cursor: req.Cursor,
	})
	if err != nil {
		return nil, toAPIError(err)
	}
	return &v1.ListMoviesReply{
		Items:      movieItems(page.Items),
		NextCursor: page.NextCursor,
	}, nil
}

// SearchByRating returns the movies with exactly the requested rating
func (s *MovieService) SearchByRating(ctx context.Context, req *v1.SearchByRatingRequest) (*v1.SearchByRatingReply, error) {
	rows, err := s.movieUC.SearchByRating(ctx, req.Rating)
	if err != nil {
		return nil, toAPIError(err)
	}
	reply := &v1.SearchByRatingReply{Items: movieItems(rows)}
	if len(rows) == 0 {
		reply.Message = "No results found for this rating"
	}
	return reply, nil
}

func (s *MovieService) GetMovie(ctx context.Context, req *v1.GetMovieRequest) (*v1.MovieItem, error) {
	row, err := s.movieUC.GetMovie(ctx, req.Name)
	if err != nil {
		return nil, toAPIError(err)
	}
	return movieItem(row), nil
}

func (s *MovieService) UpdateRating(ctx context.Context, req *v1.UpdateRatingRequest) (*v1.UpdateRatingReply, error) {
	row, err := s.movieUC.UpdateRating(ctx, req.Name, req.NewRating)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &v1.UpdateRatingReply{
		Message: fmt.Sprintf("***Updated Rating of %s***", row.Name),
		Movie:   movieItem(row),
	}, nil
}

func (s *MovieService) ListActors(ctx context.Context, _ *v1.ListActorsRequest) (*v1.ListActorsReply, error) {
	rows, err := s.movieUC.ListActors(ctx)
	if err != nil {
		return nil, toAPIError(err)
	}
	reply := &v1.ListActorsReply{Items: make([]*v1.ActorItem, 0, len(rows))}
	for _, r := range rows {
		reply.Items = append(reply.Items, &v1.ActorItem{Actor: r.Actor, Movie: r.Movie})
	}
	return reply, nil
}

func (s *MovieService) DeleteActor(ctx context.Context, req *v1.DeleteActorRequest) (*v1.DeleteActorReply, error) {
	n, err := s.movieUC.DeleteActor(ctx, req.Name)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &v1.DeleteActorReply{
		Message: fmt.Sprintf("***Successfully Deleted: %s***", req.Name),
		Deleted: n,
	}, nil
}

func (s *MovieService) ListDirectors(ctx context.Context, _ *v1.ListDirectorsRequest) (*v1.ListDirectorsReply, error) {
	ds, err := s.movieUC.ListDirectors(ctx)
	if err != nil {
		return nil, toAPIError(err)
	}
	reply := &v1.ListDirectorsReply{Items: make([]*v1.Director, 0, len(ds))}
	for _, d := range ds {
		reply.Items = append(reply.Items, directorToAPI(d))
	}
	return reply, nil
}

func (s *MovieService) ListGenres(ctx context.Context, _ *v1.ListGenresRequest) (*v1.ListGenresReply, error) {
	gs, err := s.movieUC.ListGenres(ctx)
	if err != nil {
		return nil, toAPIError(err)
	}
	reply := &v1.ListGenresReply{Items: make([]*v1.GenreItem, 0, len(gs))}
	for _, g := range gs {
		reply.Items = append(reply.Items, &v1.GenreItem{Genre: g.Genre, DirectorCount: g.DirectorCount})
	}
	return reply, nil
}

// HealthCheck implements health check
func (s *MovieService) HealthCheck(ctx context.Context, req *v1.HealthCheckRequest) (*v1.HealthCheckReply, error) {
	return &v1.HealthCheckReply{
		Status: "ok",
	}, nil
}

// Helper functions

func movieItem(m *biz.MovieRow) *v1.MovieItem {
	return &v1.MovieItem{
		Name:     m.Name,
		Rating:   m.Rating,
		Director: m.Director,
		Genre:    m.Genre,
	}
}

func movieItems(rows []*biz.MovieRow) []*v1.MovieItem {
	items := make([]*v1.MovieItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, movieItem(r))
	}
	return items
}

func directorToAPI(d *biz.Director) *v1.Director {
	return &v1.Director{
		Id:       uint64(d.ID),
		FullName: d.FullName,
	}
}
