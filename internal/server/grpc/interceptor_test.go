package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string) *GRPCServer {
	return &GRPCServer{
		logger:      nopLogger{},
		adminSecret: []byte(secret),
	}
}

func incoming(header string) context.Context {
	md := metadata.New(map[string]string{common.AuthorizationHeaderName: header})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethod_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: pb.Auth_SignIn_FullMethodName}
	handlerCalled := false

	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.adminTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_Admin_MissingToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: pb.AuthAdmin_DeleteAccount_FullMethodName}

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	for _, ctx := range []context.Context{
		context.Background(),
		incoming(""),
		incoming("Basic abc"),
		incoming("Bearer "),
	} {
		_, err := s.adminTokenInterceptor(ctx, nil, info, h)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
		}
		if status.Convert(err).Message() != "missing token" {
			t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
		}
	}
}

func TestInterceptor_Admin_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: pb.AuthAdmin_DeleteAccount_FullMethodName}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called with invalid token")
		return nil, nil
	}

	wrongKey, err := auth.GenerateAdminToken("ops", []byte("other"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	for _, header := range []string{"Bearer not-a-valid-jwt", "Bearer " + wrongKey} {
		_, err := s.adminTokenInterceptor(incoming(header), nil, info, h)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
		}
		if status.Convert(err).Message() != "invalid token" {
			t.Fatalf("expected 'invalid token', got %q", status.Convert(err).Message())
		}
	}
}

func TestInterceptor_Admin_ValidToken_PutsSubjectInContext(t *testing.T) {
	s := newTestServer("secret")

	tok, err := auth.GenerateAdminToken("ops", []byte("secret"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	info := &grpc.UnaryServerInfo{FullMethod: pb.AuthAdmin_DeleteAccount_FullMethodName}
	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got = adminSubject(ctx)
		return "ok", nil
	}

	if _, err := s.adminTokenInterceptor(incoming("bearer "+tok), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ops" {
		t.Fatalf("subject in ctx = %q, want %q", got, "ops")
	}
}
