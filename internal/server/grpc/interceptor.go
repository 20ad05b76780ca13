package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const adminSubjectKey ctxKey = "adminSubject"

const adminMethodPrefix = "/" + pb.AuthAdminServiceName + "/"

// adminTokenInterceptor requires a valid admin bearer token on every
// AuthAdmin method and lets everything else through.
func (s *GRPCServer) adminTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if strings.HasPrefix(info.FullMethod, adminMethodPrefix) {

		token := bearerToken(ctx)
		if len(token) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		subject, err := auth.ValidateAdminToken(token, s.adminSecret)
		if err != nil {
			s.logger.Warn(ctx, "admin token rejected", "method", info.FullMethod, "error", err.Error())
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		ctx = context.WithValue(ctx, adminSubjectKey, subject)
	}

	return handler(ctx, req)
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}

	v := strings.TrimSpace(values[0])
	if len(v) < len(common.BearerPrefix) || !strings.EqualFold(v[:len(common.BearerPrefix)], common.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(common.BearerPrefix):])
}

func adminSubject(ctx context.Context) string {
	v, _ := ctx.Value(adminSubjectKey).(string)
	return v
}
