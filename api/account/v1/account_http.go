package v1

import (
	context "context"

	_ "github.com/go-kratos/kratos/v2/encoding/json"
	http "github.com/go-kratos/kratos/v2/transport/http"
)

const OperationAccountServiceRegister = "/api.account.v1.AccountService/Register"
const OperationAccountServiceLogin = "/api.account.v1.AccountService/Login"
const OperationAccountServiceLogout = "/api.account.v1.AccountService/Logout"
const OperationAccountServiceMe = "/api.account.v1.AccountService/Me"

type AccountServiceHTTPServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterReply, error)
	Login(context.Context, *LoginRequest) (*LoginReply, error)
	Logout(context.Context, *LogoutRequest) (*LogoutReply, error)
	Me(context.Context, *MeRequest) (*MeReply, error)
}

func RegisterAccountServiceHTTPServer(s *http.Server, srv AccountServiceHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/accounts/register", _AccountService_Register0_HTTP_Handler(srv))
	r.POST("/v1/accounts/login", _AccountService_Login0_HTTP_Handler(srv))
	r.POST("/v1/accounts/logout", _AccountService_Logout0_HTTP_Handler(srv))
	r.GET("/v1/accounts/me", _AccountService_Me0_HTTP_Handler(srv))
}

func _AccountService_Register0_HTTP_Handler(srv AccountServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in RegisterRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationAccountServiceRegister)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Register(ctx, req.(*RegisterRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*RegisterReply)
		return ctx.Result(200, reply)
	}
}

func _AccountService_Login0_HTTP_Handler(srv AccountServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in LoginRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationAccountServiceLogin)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Login(ctx, req.(*LoginRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*LoginReply)
		return ctx.Result(200, reply)
	}
}

func _AccountService_Logout0_HTTP_Handler(srv AccountServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in LogoutRequest
		http.SetOperation(ctx, OperationAccountServiceLogout)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Logout(ctx, req.(*LogoutRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*LogoutReply)
		return ctx.Result(200, reply)
	}
}

func _AccountService_Me0_HTTP_Handler(srv AccountServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in MeRequest
		http.SetOperation(ctx, OperationAccountServiceMe)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Me(ctx, req.(*MeRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*MeReply)
		return ctx.Result(200, reply)
	}
}
