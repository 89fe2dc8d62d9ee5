// Package v1 is the JSON contract of the movie catalog API.
package v1

import "net/http"

type SubmitMovieRequest struct {
	Title  string `json:"title"`
	Genre  string `json:"genre"`
	Rating int    `json:"rating"`
}

type Director struct {
	Id       uint64 `json:"id"`
	FullName string `json:"full_name"`
}

type Genre struct {
	Id        uint64 `json:"id"`
	GenreName string `json:"genre_name"`
}

type Movie struct {
	Id         uint64 `json:"id"`
	Name       string `json:"name"`
	Rating     int    `json:"rating"`
	GenreId    uint64 `json:"genre_id"`
	DirectorId uint64 `json:"director_id"`
}

type Actor struct {
	Id        uint64 `json:"id"`
	ActorName string `json:"actor_name"`
	MovieId   uint64 `json:"movie_id"`
}

// SubmitMovieReply is everything stored for the submitted movie.
type SubmitMovieReply struct {
	Message  string    `json:"message"`
	Movie    *Movie    `json:"movie"`
	Director *Director `json:"director"`
	Genre    *Genre    `json:"genre"`
	Actors   []*Actor  `json:"actors"`
}

// HTTPStatus marks the reply as a resource creation.
func (*SubmitMovieReply) HTTPStatus() int {
	return http.StatusCreated
}

// MovieItem is a movie with its director and genre names.
type MovieItem struct {
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Director string `json:"director"`
	Genre    string `json:"genre"`
}

type GetMovieRequest struct {
	Name string `json:"name"`
}

type ListMoviesRequest struct {
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor"`
}

type ListMoviesReply struct {
	Items      []*MovieItem `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

type SearchByRatingRequest struct {
	Rating int `json:"rating"`
}

type SearchByRatingReply struct {
	Items   []*MovieItem `json:"items"`
	Message string       `json:"message,omitempty"`
}

type UpdateRatingRequest struct {
	Name      string `json:"name"`
	NewRating int    `json:"new_rating"`
}

type UpdateRatingReply struct {
	Message string     `json:"message"`
	Movie   *MovieItem `json:"movie"`
}

type ListActorsRequest struct{}

type ActorItem struct {
	Actor string `json:"actor"`
	Movie string `json:"movie"`
}

type ListActorsReply struct {
	Items []*ActorItem `json:"items"`
}

type DeleteActorRequest struct {
	Name string `json:"name"`
}

type DeleteActorReply struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

type ListDirectorsRequest struct{}

type ListDirectorsReply struct {
	Items []*Director `json:"items"`
}

type ListGenresRequest struct{}

type GenreItem struct {
	Genre         string `json:"genre"`
	DirectorCount int64  `json:"director_count"`
}

type ListGenresReply struct {
	Items []*GenreItem `json:"items"`
}

type HealthCheckRequest struct{}

type HealthCheckReply struct {
	Status string `json:"status"`
}
