package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) SignUp(ctx context.Context, req *pb.SignUpRequest) (*pb.SignUpResponse, error) {

	_, err := s.auth.SignUp(ctx, req.GetUsername(), req.GetPassword())

	if err != nil {
		switch {
		case errors.Is(err, common.ErrorDuplicateUsername):
			s.metrics.RecordSignUp(metrics.ResultFailure)
			return &pb.SignUpResponse{StatusCode: pb.StatusCodeFailure}, nil
		case errors.Is(err, common.ErrorInvalidInput):
			s.metrics.RecordSignUp(metrics.ResultFailure)
			return nil, status.Error(codes.InvalidArgument, "username and password are required")
		default:
			s.metrics.RecordSignUp(metrics.ResultError)
			return nil, status.Error(codes.Internal, "internal error")
		}
	}

	s.metrics.RecordSignUp(metrics.ResultSuccess)
	return &pb.SignUpResponse{StatusCode: pb.StatusCodeSuccess}, nil

}

func (s *GRPCServer) SignIn(ctx context.Context, req *pb.SignInRequest) (*pb.SignInResponse, error) {

	result, err := s.auth.SignIn(ctx, req.GetUsername(), req.GetPassword())

	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.metrics.RecordSignIn(metrics.ResultFailure)
			return &pb.SignInResponse{StatusCode: pb.StatusCodeFailure}, nil
		}
		s.metrics.RecordSignIn(metrics.ResultError)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.metrics.RecordSignIn(metrics.ResultSuccess)
	return &pb.SignInResponse{
		StatusCode:   pb.StatusCodeSuccess,
		UserUuid:     result.AccountID,
		SessionToken: result.SessionToken,
	}, nil

}

func (s *GRPCServer) SignOut(ctx context.Context, req *pb.SignOutRequest) (*pb.SignOutResponse, error) {

	if err := s.auth.SignOut(ctx, req.GetSessionToken()); err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.metrics.RecordSignOut()
	return &pb.SignOutResponse{StatusCode: pb.StatusCodeSuccess}, nil

}

func (s *GRPCServer) ValidateSession(ctx context.Context, req *pb.ValidateSessionRequest) (*pb.ValidateSessionResponse, error) {

	id, err := s.auth.ValidateSession(ctx, req.GetSessionToken())

	if err != nil {
		s.metrics.RecordValidation(metrics.ResultFailure)
		return &pb.ValidateSessionResponse{StatusCode: pb.StatusCodeFailure}, nil
	}

	s.metrics.RecordValidation(metrics.ResultSuccess)
	return &pb.ValidateSessionResponse{StatusCode: pb.StatusCodeSuccess, UserUuid: id}, nil

}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *pb.DeleteAccountRequest) (*pb.DeleteAccountResponse, error) {

	if req.GetUserUuid() == "" {
		return nil, status.Error(codes.InvalidArgument, "user_uuid is required")
	}

	s.logger.Info(ctx, "Account deletion request", "account_id", req.GetUserUuid(), "admin", adminSubject(ctx))

	result, err := s.auth.DeleteAccount(ctx, req.GetUserUuid())
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	resp := &pb.DeleteAccountResponse{
		StatusCode:      pb.StatusCodeFailure,
		RevokedSessions: uint32(result.RevokedSessions),
	}
	if result.Deleted {
		s.metrics.RecordAccountDeletion()
		resp.StatusCode = pb.StatusCodeSuccess
	}

	return resp, nil

}
