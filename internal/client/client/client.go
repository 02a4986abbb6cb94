package client

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/api"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	LoggedIn() bool
	Logout()

	Register(ctx context.Context, in *api.RegisterRequest) error
	Login(ctx context.Context, username, password string) error
	Verify(ctx context.Context, username, code string) error
	ResendVerification(ctx context.Context, username string) error
	RequestPasswordReset(ctx context.Context, username, email string) error
	ResetPassword(ctx context.Context, username, code, newPassword string) error
	UpdatePassword(ctx context.Context, oldPassword, newPassword string) error

	ListProjects(ctx context.Context, listing string, value int) ([]api.Project, error)
	Notifications(ctx context.Context) ([]api.Notification, error)
	DismissNotification(ctx context.Context, id int64) error
	ContactUs(ctx context.Context, in *api.ContactUsRequest) error
	EmailOnline(ctx context.Context) (bool, error)
	// SendHealthCheck asks the server to post its status to Slack. Admin only.
	SendHealthCheck(ctx context.Context) (*api.HealthCheckResponse, error)

	UploadProjectImage(ctx context.Context, projectID int64, fileName string, data []byte) (string, error)
	ImageURL(ctx context.Context, key string) (string, error)
}
