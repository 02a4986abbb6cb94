package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mercury/internal/api"
	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityFromContext returns the volunteer authenticated by the access
// token interceptor.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

func accessToken(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// accessTokenInterceptor enforces api.MethodAccess. Methods outside the map,
// such as the health service, are public.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	access, known := api.MethodAccess[info.FullMethod]
	if !known || access == api.AccessPublic {
		return handler(ctx, req)
	}

	token := accessToken(ctx)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	id, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	if access == api.AccessAdmin {
		ok, err := s.volunteers.IsAdmin(ctx, id.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, status.Error(codes.PermissionDenied, "admin portal access required")
		}
	}

	return handler(context.WithValue(ctx, identityKey, id), req)
}

func identity(ctx context.Context) (auth.Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return auth.Identity{}, common.ErrorUnauthorized
	}
	return id, nil
}
