// Package grpcclient is a thin client for the gophauth gRPC API. It turns
// FAILURE statuses and gRPC codes into the package's sentinel errors so that
// callers can branch with errors.Is.
package grpcclient

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/sethvargo/go-retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type healthChecker interface {
	Check(ctx context.Context, in *healthpb.HealthCheckRequest, opts ...grpc.CallOption) (*healthpb.HealthCheckResponse, error)
}

// Session is what a successful sign-in hands back.
type Session struct {
	AccountID string
	Token     string
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	auth        pb.AuthClient
	admin       pb.AuthAdminClient
	health      healthChecker
}

// New creates a client for endpointURL. The connection is established
// lazily; extra options are appended after insecure transport credentials.
func New(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.auth = pb.NewAuthClient(conn)
	s.admin = pb.NewAuthAdminClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

// WaitReady polls the health service until it reports SERVING, backing off
// according to b. It returns the last error once b gives up.
func (s *GRPCClient) WaitReady(ctx context.Context, b retry.Backoff) error {
	return retry.Do(ctx, b, func(ctx context.Context) error {
		resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: pb.AuthServiceName})
		if err != nil {
			return retry.RetryableError(s.mapError(err))
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			return retry.RetryableError(fmt.Errorf("%w: health status %s", ErrUnavailable, resp.GetStatus()))
		}
		return nil
	})
}

func (s *GRPCClient) SignUp(ctx context.Context, username, password string) error {

	resp, err := s.auth.SignUp(ctx, &pb.SignUpRequest{Username: username, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatusCode() != pb.StatusCodeSuccess {
		return ErrDuplicateUsername
	}

	return nil

}

func (s *GRPCClient) SignIn(ctx context.Context, username, password string) (*Session, error) {

	resp, err := s.auth.SignIn(ctx, &pb.SignInRequest{Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	if resp.GetStatusCode() != pb.StatusCodeSuccess {
		return nil, ErrUnauthorized
	}

	return &Session{AccountID: resp.GetUserUuid(), Token: resp.GetSessionToken()}, nil

}

func (s *GRPCClient) SignOut(ctx context.Context, token string) error {

	_, err := s.auth.SignOut(ctx, &pb.SignOutRequest{SessionToken: token})
	if err != nil {
		return s.mapError(err)
	}

	return nil

}

// ValidateSession returns the account id bound to token.
func (s *GRPCClient) ValidateSession(ctx context.Context, token string) (string, error) {

	resp, err := s.auth.ValidateSession(ctx, &pb.ValidateSessionRequest{SessionToken: token})
	if err != nil {
		return "", s.mapError(err)
	}

	if resp.GetStatusCode() != pb.StatusCodeSuccess {
		return "", ErrUnauthorized
	}

	return resp.GetUserUuid(), nil

}

// DeleteAccount removes accountID using adminToken and returns how many
// sessions were revoked with it.
func (s *GRPCClient) DeleteAccount(ctx context.Context, adminToken, accountID string) (int, error) {

	ctx = metadata.AppendToOutgoingContext(ctx, common.AuthorizationHeaderName, common.BearerPrefix+adminToken)

	resp, err := s.admin.DeleteAccount(ctx, &pb.DeleteAccountRequest{UserUuid: accountID})
	if err != nil {
		return 0, s.mapError(err)
	}

	if resp.GetStatusCode() != pb.StatusCodeSuccess {
		return int(resp.GetRevokedSessions()), ErrAccountNotFound
	}

	return int(resp.GetRevokedSessions()), nil

}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
