package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/mercury/internal/api"
	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/dmitrijs2005/mercury/internal/server/mail"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/dmitrijs2005/mercury/internal/server/services"
	"github.com/dmitrijs2005/mercury/internal/server/slack"
	"github.com/dmitrijs2005/mercury/internal/server/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type VolunteerService interface {
	Register(ctx context.Context, in validation.Registration) (*models.Volunteer, error)
	Login(ctx context.Context, username, password string) (string, error)
	Verify(ctx context.Context, username, code string) error
	ResendVerification(ctx context.Context, username string) error
	RequestPasswordReset(ctx context.Context, username, email string) error
	CheckResetCode(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, username, code, newPassword string) error
	UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error
	IsAdmin(ctx context.Context, volunteerID int64) (bool, error)
	Notifications(ctx context.Context, volunteerID int64) ([]*models.Notification, error)
	DismissNotification(ctx context.Context, volunteerID, notificationID int64) error
}

type ProjectService interface {
	List(ctx context.Context, q services.ProjectQuery) ([]*models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	Update(ctx context.Context, editorID int64, p *models.Project) error
	GetImageUploadURL(ctx context.Context, id int64) (string, string, error)
	GetImageURL(ctx context.Context, key string) (string, error)
}

type EmailService interface {
	ContactUs(ctx context.Context, name, email, subject, body string) error
	Online() bool
	Reverify(ctx context.Context) error
	StoredEmails(ctx context.Context) ([]*models.StoredEmail, error)
	UpdateStoredEmail(ctx context.Context, e *models.StoredEmail) error
	RemoveStoredEmail(ctx context.Context, id int64) error
	Flush(ctx context.Context) (mail.FlushResult, error)
}

type HealthService interface {
	SendHealthCheck(ctx context.Context) (slack.Status, error)
}

// GRPCServer implements api.VolunteerServiceServer on top of the services
// and serves it next to the standard health service.
type GRPCServer struct {
	address    string
	volunteers VolunteerService
	projects   ProjectService
	emails     EmailService
	health     HealthService
	logger     logging.Logger
	jwtSecret  []byte
}

var _ api.VolunteerServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, vs VolunteerService, ps ProjectService, es EmailService, hs HealthService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		volunteers: vs,
		projects:   ps,
		emails:     es,
		health:     hs,
		jwtSecret:  []byte(secretKey),
	}
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.errorInterceptor, s.accessTokenInterceptor))
	api.RegisterVolunteerServiceServer(srv, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}
