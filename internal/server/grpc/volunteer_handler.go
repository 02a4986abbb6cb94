package grpc

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/api"
	"github.com/dmitrijs2005/mercury/internal/server/validation"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	v, err := s.volunteers.Register(ctx, validation.Registration{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
	})
	if err != nil {
		return nil, err
	}
	return &api.RegisterResponse{ID: v.ID, Username: v.Username}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	token, err := s.volunteers.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &api.LoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) Verify(ctx context.Context, req *api.VerifyRequest) (*api.Empty, error) {
	if err := s.volunteers.Verify(ctx, req.Username, req.Code); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ResendVerification(ctx context.Context, req *api.UsernameRequest) (*api.Empty, error) {
	if err := s.volunteers.ResendVerification(ctx, req.Username); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) RequestPasswordReset(ctx context.Context, req *api.PasswordResetRequest) (*api.Empty, error) {
	if err := s.volunteers.RequestPasswordReset(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) CheckResetCode(ctx context.Context, req *api.UsernameRequest) (*api.Empty, error) {
	if err := s.volunteers.CheckResetCode(ctx, req.Username); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *api.ResetPasswordRequest) (*api.Empty, error) {
	if err := s.volunteers.ResetPassword(ctx, req.Username, req.Code, req.NewPassword); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

// UpdatePassword acts on the volunteer named by the access token.
func (s *GRPCServer) UpdatePassword(ctx context.Context, req *api.UpdatePasswordRequest) (*api.Empty, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.volunteers.UpdatePassword(ctx, id.Username, req.OldPassword, req.NewPassword); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ListNotifications(ctx context.Context, _ *api.Empty) (*api.NotificationsResponse, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.volunteers.Notifications(ctx, id.ID)
	if err != nil {
		return nil, err
	}
	return &api.NotificationsResponse{Notifications: mapSlice(n, notificationToAPI)}, nil
}

func (s *GRPCServer) DismissNotification(ctx context.Context, req *api.DismissNotificationRequest) (*api.Empty, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.volunteers.DismissNotification(ctx, id.ID, req.ID); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}
