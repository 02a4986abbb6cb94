package client

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/mercury/internal/api"
	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/netx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// putPresigned is a seam for the object storage upload.
var putPresigned = netx.PutPresigned

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *api.VolunteerServiceClient
	health      healthpb.HealthClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	s.accessToken = t
	s.mu.Unlock()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if t := s.token(); t != "" {
		ctx = withAccessToken(ctx, t)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewMercuryClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(extra ...grpc.DialOption) error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewVolunteerServiceClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

// mapError turns gRPC statuses into the package errors where the CLI reacts
// to them, and into plain errors carrying the server message otherwise.
func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable:
		if st.Message() == common.ErrMailOffline.Error() {
			return ErrMailQueued
		}
		return ErrUnavailable
	case codes.Unauthenticated:
		if st.Message() == common.ErrorUnauthorized.Error() || st.Message() == "missing token" ||
			st.Message() == common.ErrTokenExpired.Error() || st.Message() == common.ErrInvalidToken.Error() {
			return ErrUnauthorized
		}
		return errors.New(st.Message())
	case codes.PermissionDenied:
		if st.Message() == common.ErrorNotVerified.Error() {
			return errors.New(st.Message())
		}
		return ErrForbidden
	default:
		return errors.New(st.Message())
	}
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// Ping asks the health service whether the volunteer service is serving.
func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return ErrUnavailable
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) Register(ctx context.Context, in *api.RegisterRequest) error {
	if _, err := s.client.Register(ctx, in); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, username, password string) error {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return s.mapError(err)
	}
	s.setToken(resp.AccessToken)
	return nil
}

func (s *GRPCClient) Verify(ctx context.Context, username, code string) error {
	if _, err := s.client.Verify(ctx, &api.VerifyRequest{Username: username, Code: code}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ResendVerification(ctx context.Context, username string) error {
	if _, err := s.client.ResendVerification(ctx, &api.UsernameRequest{Username: username}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) RequestPasswordReset(ctx context.Context, username, email string) error {
	if _, err := s.client.RequestPasswordReset(ctx, &api.PasswordResetRequest{Username: username, Email: email}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// ResetPassword checks that a reset is pending before submitting the code.
func (s *GRPCClient) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	if _, err := s.client.CheckResetCode(ctx, &api.UsernameRequest{Username: username}); err != nil {
		return s.mapError(err)
	}
	_, err := s.client.ResetPassword(ctx, &api.ResetPasswordRequest{
		Username:    username,
		Code:        code,
		NewPassword: newPassword,
	})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := s.client.UpdatePassword(ctx, &api.UpdatePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ListProjects(ctx context.Context, listing string, value int) ([]api.Project, error) {
	resp, err := s.client.ListProjects(ctx, &api.ListProjectsRequest{Listing: listing, Value: value})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Projects, nil
}

func (s *GRPCClient) Notifications(ctx context.Context) ([]api.Notification, error) {
	resp, err := s.client.ListNotifications(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Notifications, nil
}

func (s *GRPCClient) DismissNotification(ctx context.Context, id int64) error {
	if _, err := s.client.DismissNotification(ctx, &api.DismissNotificationRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ContactUs(ctx context.Context, in *api.ContactUsRequest) error {
	if _, err := s.client.ContactUs(ctx, in); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) EmailOnline(ctx context.Context) (bool, error) {
	resp, err := s.client.EmailStatus(ctx, &api.Empty{})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Online, nil
}

func (s *GRPCClient) SendHealthCheck(ctx context.Context) (*api.HealthCheckResponse, error) {
	resp, err := s.client.SendHealthCheck(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// UploadProjectImage asks the server for a presigned upload URL and PUTs data
// to object storage. It returns the storage key of the new image.
func (s *GRPCClient) UploadProjectImage(ctx context.Context, projectID int64, fileName string, data []byte) (string, error) {
	resp, err := s.client.GetProjectImageUploadURL(ctx, &api.ProjectRequest{ID: projectID})
	if err != nil {
		return "", s.mapError(err)
	}
	if err := putPresigned(ctx, resp.URL, netx.ImageContentType(fileName), data); err != nil {
		return "", err
	}
	return resp.Key, nil
}

func (s *GRPCClient) ImageURL(ctx context.Context, key string) (string, error) {
	resp, err := s.client.GetProjectImageURL(ctx, &api.ImageURLRequest{Key: key})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}
