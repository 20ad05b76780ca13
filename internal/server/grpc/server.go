// Package grpc exposes the authentication service over gRPC: the public Auth
// service, the token-guarded AuthAdmin service and the standard health
// service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type authService interface {
	SignUp(ctx context.Context, username, password string) (string, error)
	SignIn(ctx context.Context, username, password string) (*services.SignInResult, error)
	SignOut(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (string, error)
	DeleteAccount(ctx context.Context, accountID string) (*services.DeleteAccountResult, error)
}

type recorder interface {
	RecordSignUp(result string)
	RecordSignIn(result string)
	RecordSignOut()
	RecordValidation(result string)
	RecordAccountDeletion()
}

type GRPCServer struct {
	pb.UnimplementedAuthServer
	pb.UnimplementedAuthAdminServer
	address     string
	auth        authService
	metrics     recorder
	logger      logging.Logger
	adminSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc authService, m recorder, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		auth:        svc,
		metrics:     m,
		adminSecret: []byte(secretKey),
	}, nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully and returns nil.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.adminTokenInterceptor))

	pb.RegisterAuthServer(srv, s)
	pb.RegisterAuthAdminServer(srv, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(pb.AuthServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
