package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/server/mail"
	"github.com/dmitrijs2005/mercury/internal/server/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrInvalidArgument, codes.InvalidArgument},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrorCodeNotFound, codes.NotFound},
	{common.ErrorUnauthorized, codes.Unauthenticated},
	{common.ErrorInvalidCode, codes.Unauthenticated},
	{common.ErrorNotVerified, codes.PermissionDenied},
	{common.ErrorForbidden, codes.PermissionDenied},
	{common.ErrorAlreadyExists, codes.AlreadyExists},
	{common.ErrorAlreadyVerified, codes.AlreadyExists},
	{common.ErrorEmailMismatch, codes.FailedPrecondition},
	{common.ErrSlackHookMissing, codes.FailedPrecondition},
	{mail.ErrOffline, codes.Unavailable},
}

// toStatus maps a service error to a gRPC status. Errors that are already
// statuses pass through; unknown errors become Internal without detail.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return status.Error(codes.InvalidArgument, verr.Error())
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return status.Error(ec.code, ec.err.Error())
		}
	}
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) errorInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err == nil {
		return resp, nil
	}
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, "request failed", "method", info.FullMethod, "error", err)
	}
	return nil, st
}
