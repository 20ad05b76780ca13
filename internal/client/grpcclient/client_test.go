package grpcclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

/*************
 * Fake pb clients
 *************/

type fakeAuth struct {
	lastSignUpReq   *pb.SignUpRequest
	lastSignInReq   *pb.SignInRequest
	lastSignOutReq  *pb.SignOutRequest
	lastValidateReq *pb.ValidateSessionRequest

	signUpResp *pb.SignUpResponse
	signUpErr  error

	signInResp *pb.SignInResponse
	signInErr  error

	signOutErr error

	validateResp *pb.ValidateSessionResponse
	validateErr  error
}

func (f *fakeAuth) SignUp(ctx context.Context, in *pb.SignUpRequest, opts ...grpc.CallOption) (*pb.SignUpResponse, error) {
	f.lastSignUpReq = in
	return f.signUpResp, f.signUpErr
}
func (f *fakeAuth) SignIn(ctx context.Context, in *pb.SignInRequest, opts ...grpc.CallOption) (*pb.SignInResponse, error) {
	f.lastSignInReq = in
	return f.signInResp, f.signInErr
}
func (f *fakeAuth) SignOut(ctx context.Context, in *pb.SignOutRequest, opts ...grpc.CallOption) (*pb.SignOutResponse, error) {
	f.lastSignOutReq = in
	return &pb.SignOutResponse{}, f.signOutErr
}
func (f *fakeAuth) ValidateSession(ctx context.Context, in *pb.ValidateSessionRequest, opts ...grpc.CallOption) (*pb.ValidateSessionResponse, error) {
	f.lastValidateReq = in
	return f.validateResp, f.validateErr
}

type fakeAdmin struct {
	lastMD  metadata.MD
	lastReq *pb.DeleteAccountRequest

	resp *pb.DeleteAccountResponse
	err  error
}

func (f *fakeAdmin) DeleteAccount(ctx context.Context, in *pb.DeleteAccountRequest, opts ...grpc.CallOption) (*pb.DeleteAccountResponse, error) {
	f.lastMD, _ = metadata.FromOutgoingContext(ctx)
	f.lastReq = in
	return f.resp, f.err
}

type fakeHealth struct {
	calls    int
	statuses []healthpb.HealthCheckResponse_ServingStatus
	errs     []error
}

func (f *fakeHealth) Check(ctx context.Context, in *healthpb.HealthCheckRequest, opts ...grpc.CallOption) (*healthpb.HealthCheckResponse, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	st := healthpb.HealthCheckResponse_SERVING
	if i < len(f.statuses) {
		st = f.statuses[i]
	}
	return &healthpb.HealthCheckResponse{Status: st}, nil
}

func newTestClient(a *fakeAuth, ad *fakeAdmin, h *fakeHealth) *GRPCClient {
	return &GRPCClient{auth: a, admin: ad, health: h}
}

/*************
 * Tests
 *************/

func TestSignUp(t *testing.T) {
	a := &fakeAuth{signUpResp: &pb.SignUpResponse{StatusCode: pb.StatusCodeSuccess}}
	c := newTestClient(a, nil, nil)

	require.NoError(t, c.SignUp(context.Background(), "alice", "pw"))
	assert.Equal(t, "alice", a.lastSignUpReq.GetUsername())
	assert.Equal(t, "pw", a.lastSignUpReq.GetPassword())

	a.signUpResp = &pb.SignUpResponse{StatusCode: pb.StatusCodeFailure}
	assert.ErrorIs(t, c.SignUp(context.Background(), "alice", "pw"), ErrDuplicateUsername)

	a.signUpErr = status.Error(codes.InvalidArgument, "username and password are required")
	assert.ErrorIs(t, c.SignUp(context.Background(), "", ""), ErrInvalidInput)
}

func TestSignIn(t *testing.T) {
	a := &fakeAuth{signInResp: &pb.SignInResponse{StatusCode: pb.StatusCodeSuccess, UserUuid: "acc", SessionToken: "tok"}}
	c := newTestClient(a, nil, nil)

	sess, err := c.SignIn(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, &Session{AccountID: "acc", Token: "tok"}, sess)

	a.signInResp = &pb.SignInResponse{StatusCode: pb.StatusCodeFailure}
	_, err = c.SignIn(context.Background(), "alice", "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSignOutAndValidate(t *testing.T) {
	a := &fakeAuth{validateResp: &pb.ValidateSessionResponse{StatusCode: pb.StatusCodeSuccess, UserUuid: "acc"}}
	c := newTestClient(a, nil, nil)

	require.NoError(t, c.SignOut(context.Background(), "tok"))
	assert.Equal(t, "tok", a.lastSignOutReq.GetSessionToken())

	id, err := c.ValidateSession(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "acc", id)

	a.validateResp = &pb.ValidateSessionResponse{StatusCode: pb.StatusCodeFailure}
	_, err = c.ValidateSession(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteAccount_SendsBearerToken(t *testing.T) {
	ad := &fakeAdmin{resp: &pb.DeleteAccountResponse{StatusCode: pb.StatusCodeSuccess, RevokedSessions: 2}}
	c := newTestClient(nil, ad, nil)

	n, err := c.DeleteAccount(context.Background(), "jwt", "acc")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "acc", ad.lastReq.GetUserUuid())
	assert.Equal(t, []string{common.BearerPrefix + "jwt"}, ad.lastMD.Get(common.AuthorizationHeaderName))

	ad.resp = &pb.DeleteAccountResponse{StatusCode: pb.StatusCodeFailure}
	_, err = c.DeleteAccount(context.Background(), "jwt", "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	ad.err = status.Error(codes.Unauthenticated, "invalid token")
	_, err = c.DeleteAccount(context.Background(), "bad", "acc")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	assert.NoError(t, c.mapError(nil))
	assert.ErrorIs(t, c.mapError(status.Error(codes.PermissionDenied, "")), ErrUnauthorized)
	assert.ErrorIs(t, c.mapError(status.Error(codes.Unavailable, "")), ErrUnavailable)
	assert.ErrorIs(t, c.mapError(status.Error(codes.DeadlineExceeded, "")), ErrUnavailable)
	assert.ErrorIs(t, c.mapError(status.Error(codes.InvalidArgument, "x")), ErrInvalidInput)

	raw := errors.New("boom")
	assert.ErrorIs(t, c.mapError(raw), raw)
}

func TestWaitReady_RetriesUntilServing(t *testing.T) {
	h := &fakeHealth{
		errs:     []error{status.Error(codes.Unavailable, "connecting")},
		statuses: []healthpb.HealthCheckResponse_ServingStatus{0, healthpb.HealthCheckResponse_NOT_SERVING},
	}
	c := newTestClient(nil, nil, h)

	b := retry.WithMaxRetries(5, retry.NewConstant(time.Millisecond))
	require.NoError(t, c.WaitReady(context.Background(), b))
	assert.Equal(t, 3, h.calls)
}

func TestWaitReady_GivesUp(t *testing.T) {
	h := &fakeHealth{statuses: []healthpb.HealthCheckResponse_ServingStatus{
		healthpb.HealthCheckResponse_NOT_SERVING,
		healthpb.HealthCheckResponse_NOT_SERVING,
		healthpb.HealthCheckResponse_NOT_SERVING,
	}}
	c := newTestClient(nil, nil, h)

	b := retry.WithMaxRetries(2, retry.NewConstant(time.Millisecond))
	err := c.WaitReady(context.Background(), b)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, h.calls)
}

func TestWaitReady_StopsOnContextCancel(t *testing.T) {
	h := &fakeHealth{errs: []error{
		status.Error(codes.Unavailable, ""),
		status.Error(codes.Unavailable, ""),
	}}
	c := newTestClient(nil, nil, h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.WaitReady(ctx, retry.NewConstant(time.Hour))
	assert.Error(t, err)
}
