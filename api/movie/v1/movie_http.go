package v1

import (
	context "context"

	_ "github.com/go-kratos/kratos/v2/encoding/json"
	http "github.com/go-kratos/kratos/v2/transport/http"
	binding "github.com/go-kratos/kratos/v2/transport/http/binding"
)

const OperationMovieServiceSubmitMovie = "/api.movie.v1.MovieService/SubmitMovie"
const OperationMovieServiceListMovies = "/api.movie.v1.MovieService/ListMovies"
const OperationMovieServiceSearchByRating = "/api.movie.v1.MovieService/SearchByRating"
const OperationMovieServiceGetMovie = "/api.movie.v1.MovieService/GetMovie"
const OperationMovieServiceUpdateRating = "/api.movie.v1.MovieService/UpdateRating"
const OperationMovieServiceListActors = "/api.movie.v1.MovieService/ListActors"
const OperationMovieServiceDeleteActor = "/api.movie.v1.MovieService/DeleteActor"
const OperationMovieServiceListDirectors = "/api.movie.v1.MovieService/ListDirectors"
const OperationMovieServiceListGenres = "/api.movie.v1.MovieService/ListGenres"
const OperationMovieServiceHealthCheck = "/api.movie.v1.MovieService/HealthCheck"

type MovieServiceHTTPServer interface {
	SubmitMovie(context.Context, *SubmitMovieRequest) (*SubmitMovieReply, error)
	ListMovies(context.Context, *ListMoviesRequest) (*ListMoviesReply, error)
	SearchByRating(context.Context, *SearchByRatingRequest) (*SearchByRatingReply, error)
	GetMovie(context.Context, *GetMovieRequest) (*MovieItem, error)
	UpdateRating(context.Context, *UpdateRatingRequest) (*UpdateRatingReply, error)
	ListActors(context.Context, *ListActorsRequest) (*ListActorsReply, error)
	DeleteActor(context.Context, *DeleteActorRequest) (*DeleteActorReply, error)
	ListDirectors(context.Context, *ListDirectorsRequest) (*ListDirectorsReply, error)
	ListGenres(context.Context, *ListGenresRequest) (*ListGenresReply, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckReply, error)
}

// RegisterMovieServiceHTTPServer mounts the movie routes on s. The search
// route is registered before the {name} route so it is not shadowed. Titles
// such as "Face/Off" contain slashes, so {name} spans path segments.
func RegisterMovieServiceHTTPServer(s *http.Server, srv MovieServiceHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/movies", _MovieService_SubmitMovie0_HTTP_Handler(srv))
	r.GET("/v1/movies", _MovieService_ListMovies0_HTTP_Handler(srv))
	r.GET("/v1/movies/search", _MovieService_SearchByRating0_HTTP_Handler(srv))
	r.GET("/v1/movies/{name:.+}", _MovieService_GetMovie0_HTTP_Handler(srv))
	r.PUT("/v1/movies/{name:.+}/rating", _MovieService_UpdateRating0_HTTP_Handler(srv))
	r.GET("/v1/actors", _MovieService_ListActors0_HTTP_Handler(srv))
	r.DELETE("/v1/actors/{name:.+}", _MovieService_DeleteActor0_HTTP_Handler(srv))
	r.GET("/v1/directors", _MovieService_ListDirectors0_HTTP_Handler(srv))
	r.GET("/v1/genres", _MovieService_ListGenres0_HTTP_Handler(srv))
	r.GET("/healthz", _MovieService_HealthCheck0_HTTP_Handler(srv))
}

func _MovieService_SubmitMovie0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in SubmitMovieRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServiceSubmitMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.SubmitMovie(ctx, req.(*SubmitMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SubmitMovieReply)
		return ctx.Result(200, reply)
	}
}

func _MovieService_ListMovies0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListMoviesRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServiceListMovies)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListMovies(ctx, req.(*ListMoviesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListMoviesReply)
		return ctx.Result(200, reply)
	}
}

func _MovieService_SearchByRating0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in SearchByRatingRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServiceSearchByRating)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.SearchByRating(ctx, req.(*SearchByRatingRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SearchByRatingReply)
		return ctx.Result(200, reply)
	}
}

func _MovieService_GetMovie0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetMovieRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServiceGetMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetMovie(ctx, req.(*GetMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*MovieItem)
		return ctx.Result(200, reply)
	}
}

func _MovieService_UpdateRating0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in UpdateRatingRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServiceUpdateRating)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.UpdateRating(ctx, req.(*UpdateRatingRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*UpdateRatingReply)
		return ctx.Result(200, reply)
	}
}

func _MovieService_ListActors0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListActorsRequest
		http.SetOperation(ctx, OperationMovieServiceListActors)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListActors(ctx, req.(*ListActorsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListActorsReply)
		return ctx.Result(200, reply)
	}
}

func _MovieService_DeleteActor0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in DeleteActorRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServiceDeleteActor)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.DeleteActor(ctx, req.(*DeleteActorRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*DeleteActorReply)
		return ctx.Result(200, reply)
	}
}

func _MovieService_ListDirectors0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListDirectorsRequest
		http.SetOperation(ctx, OperationMovieServiceListDirectors)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListDirectors(ctx, req.(*ListDirectorsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListDirectorsReply)
		return ctx.Result(200, reply)
	}
}

func _MovieService_ListGenres0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListGenresRequest
		http.SetOperation(ctx, OperationMovieServiceListGenres)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListGenres(ctx, req.(*ListGenresRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListGenresReply)
		return ctx.Result(200, reply)
	}
}

func _MovieService_HealthCheck0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in HealthCheckRequest
		http.SetOperation(ctx, OperationMovieServiceHealthCheck)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.HealthCheck(ctx, req.(*HealthCheckRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*HealthCheckReply)
		return ctx.Result(200, reply)
	}
}

// MovieServiceHTTPClient calls the movie routes of a remote server.
type MovieServiceHTTPClient interface {
	SubmitMovie(ctx context.Context, req *SubmitMovieRequest, opts ...http.CallOption) (rsp *SubmitMovieReply, err error)
	ListMovies(ctx context.Context, req *ListMoviesRequest, opts ...http.CallOption) (rsp *ListMoviesReply, err error)
	GetMovie(ctx context.Context, req *GetMovieRequest, opts ...http.CallOption) (rsp *MovieItem, err error)
}

type MovieServiceHTTPClientImpl struct {
	cc *http.Client
}

func NewMovieServiceHTTPClient(client *http.Client) MovieServiceHTTPClient {
	return &MovieServiceHTTPClientImpl{client}
}

func (c *MovieServiceHTTPClientImpl) SubmitMovie(ctx context.Context, in *SubmitMovieRequest, opts ...http.CallOption) (*SubmitMovieReply, error) {
	var out SubmitMovieReply
	pattern := "/v1/movies"
	path := binding.EncodeURL(pattern, in, false)
	opts = append(opts, http.Operation(OperationMovieServiceSubmitMovie))
	opts = append(opts, http.PathTemplate(pattern))
	err := c.cc.Invoke(ctx, "POST", path, in, &out, opts...)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MovieServiceHTTPClientImpl) ListMovies(ctx context.Context, in *ListMoviesRequest, opts ...http.CallOption) (*ListMoviesReply, error) {
	var out ListMoviesReply
	pattern := "/v1/movies"
	path := binding.EncodeURL(pattern, in, true)
	opts = append(opts, http.Operation(OperationMovieServiceListMovies))
	opts = append(opts, http.PathTemplate(pattern))
	err := c.cc.Invoke(ctx, "GET", path, nil, &out, opts...)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MovieServiceHTTPClientImpl) GetMovie(ctx context.Context, in *GetMovieRequest, opts ...http.CallOption) (*MovieItem, error) {
	var out MovieItem
	pattern := "/v1/movies/{name}"
	path := binding.EncodeURL(pattern, in, true)
	opts = append(opts, http.Operation(OperationMovieServiceGetMovie))
	opts = append(opts, http.PathTemplate(pattern))
	err := c.cc.Invoke(ctx, "GET", path, nil, &out, opts...)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
