package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	AuthServiceName      = "authentication.Auth"
	AuthAdminServiceName = "authentication.AuthAdmin"

	Auth_SignUp_FullMethodName          = "/authentication.Auth/SignUp"
	Auth_SignIn_FullMethodName          = "/authentication.Auth/SignIn"
	Auth_SignOut_FullMethodName         = "/authentication.Auth/SignOut"
	Auth_ValidateSession_FullMethodName = "/authentication.Auth/ValidateSession"

	AuthAdmin_DeleteAccount_FullMethodName = "/authentication.AuthAdmin/DeleteAccount"
)

// AuthClient is the client API for the Auth service.
type AuthClient interface {
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	ValidateSession(ctx context.Context, in *ValidateSessionRequest, opts ...grpc.CallOption) (*ValidateSessionResponse, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc}
}

func (c *authClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error) {
	out := new(SignUpResponse)
	if err := c.cc.Invoke(ctx, Auth_SignUp_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	out := new(SignInResponse)
	if err := c.cc.Invoke(ctx, Auth_SignIn_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	out := new(SignOutResponse)
	if err := c.cc.Invoke(ctx, Auth_SignOut_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) ValidateSession(ctx context.Context, in *ValidateSessionRequest, opts ...grpc.CallOption) (*ValidateSessionResponse, error) {
	out := new(ValidateSessionResponse)
	if err := c.cc.Invoke(ctx, Auth_ValidateSession_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AuthServer is the server API for the Auth service.
type AuthServer interface {
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	ValidateSession(context.Context, *ValidateSessionRequest) (*ValidateSessionResponse, error)
	mustEmbedUnimplementedAuthServer()
}

// UnimplementedAuthServer must be embedded by AuthServer implementations.
type UnimplementedAuthServer struct{}

func (UnimplementedAuthServer) SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SignUp not implemented")
}
func (UnimplementedAuthServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SignIn not implemented")
}
func (UnimplementedAuthServer) SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SignOut not implemented")
}
func (UnimplementedAuthServer) ValidateSession(context.Context, *ValidateSessionRequest) (*ValidateSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ValidateSession not implemented")
}
func (UnimplementedAuthServer) mustEmbedUnimplementedAuthServer() {}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func _Auth_SignUp_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SignUpRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).SignUp(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Auth_SignUp_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).SignUp(ctx, req.(*SignUpRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Auth_SignIn_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SignInRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).SignIn(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Auth_SignIn_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).SignIn(ctx, req.(*SignInRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Auth_SignOut_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SignOutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).SignOut(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Auth_SignOut_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).SignOut(ctx, req.(*SignOutRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Auth_ValidateSession_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ValidateSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).ValidateSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Auth_ValidateSession_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).ValidateSession(ctx, req.(*ValidateSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: _Auth_SignUp_Handler},
		{MethodName: "SignIn", Handler: _Auth_SignIn_Handler},
		{MethodName: "SignOut", Handler: _Auth_SignOut_Handler},
		{MethodName: "ValidateSession", Handler: _Auth_ValidateSession_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authentication.proto",
}

// AuthAdminClient is the client API for the AuthAdmin service.
type AuthAdminClient interface {
	DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error)
}

type authAdminClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthAdminClient(cc grpc.ClientConnInterface) AuthAdminClient {
	return &authAdminClient{cc}
}

func (c *authAdminClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error) {
	out := new(DeleteAccountResponse)
	if err := c.cc.Invoke(ctx, AuthAdmin_DeleteAccount_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AuthAdminServer is the server API for the AuthAdmin service.
type AuthAdminServer interface {
	DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error)
	mustEmbedUnimplementedAuthAdminServer()
}

// UnimplementedAuthAdminServer must be embedded by AuthAdminServer implementations.
type UnimplementedAuthAdminServer struct{}

func (UnimplementedAuthAdminServer) DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteAccount not implemented")
}
func (UnimplementedAuthAdminServer) mustEmbedUnimplementedAuthAdminServer() {}

func RegisterAuthAdminServer(s grpc.ServiceRegistrar, srv AuthAdminServer) {
	s.RegisterService(&AuthAdminServiceDesc, srv)
}

func _AuthAdmin_DeleteAccount_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthAdminServer).DeleteAccount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AuthAdmin_DeleteAccount_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthAdminServer).DeleteAccount(ctx, req.(*DeleteAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var AuthAdminServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthAdminServiceName,
	HandlerType: (*AuthAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "DeleteAccount", Handler: _AuthAdmin_DeleteAccount_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authentication.proto",
}
