package grpc

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/api"
)

func (s *GRPCServer) ContactUs(ctx context.Context, req *api.ContactUsRequest) (*api.Empty, error) {
	if err := s.emails.ContactUs(ctx, req.Name, req.Email, req.Subject, req.Body); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) EmailStatus(_ context.Context, _ *api.Empty) (*api.EmailStatusResponse, error) {
	return &api.EmailStatusResponse{Online: s.emails.Online()}, nil
}

func (s *GRPCServer) ListStoredEmails(ctx context.Context, _ *api.Empty) (*api.StoredEmailsResponse, error) {
	e, err := s.emails.StoredEmails(ctx)
	if err != nil {
		return nil, err
	}
	return &api.StoredEmailsResponse{Emails: mapSlice(e, storedEmailToAPI)}, nil
}

func (s *GRPCServer) UpdateStoredEmail(ctx context.Context, req *api.UpdateStoredEmailRequest) (*api.Empty, error) {
	if err := s.emails.UpdateStoredEmail(ctx, storedEmailFromAPI(req.Email)); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) RemoveStoredEmail(ctx context.Context, req *api.StoredEmailRequest) (*api.Empty, error) {
	if err := s.emails.RemoveStoredEmail(ctx, req.ID); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) FlushStoredEmails(ctx context.Context, _ *api.Empty) (*api.FlushResponse, error) {
	res, err := s.emails.Flush(ctx)
	if err != nil {
		return nil, err
	}
	return &api.FlushResponse{Sent: res.Sent, Failed: res.Failed}, nil
}

func (s *GRPCServer) ReverifyEmail(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	if err := s.emails.Reverify(ctx); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

// SendHealthCheck posts the email and database status to the team Slack
// channel and returns it.
func (s *GRPCServer) SendHealthCheck(ctx context.Context, _ *api.Empty) (*api.HealthCheckResponse, error) {
	st, err := s.health.SendHealthCheck(ctx)
	if err != nil {
		return nil, err
	}
	return &api.HealthCheckResponse{Email: st.Email, Database: st.Database}, nil
}
