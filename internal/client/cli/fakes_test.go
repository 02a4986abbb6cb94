package cli

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/api"
)

type fakeClient struct {
	err      error
	loggedIn bool
	pingErr  error

	calls    []string
	args     []string
	register *api.RegisterRequest
	contact  *api.ContactUsRequest
	projects []api.Project
	notes    []api.Notification
}

func (f *fakeClient) record(name string, args ...string) error {
	f.calls = append(f.calls, name)
	f.args = args
	return f.err
}

func (f *fakeClient) Close() error               { return nil }
func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
func (f *fakeClient) LoggedIn() bool             { return f.loggedIn }
func (f *fakeClient) Logout()                    { f.loggedIn = false }

func (f *fakeClient) Register(_ context.Context, in *api.RegisterRequest) error {
	f.register = in
	return f.record("register")
}

func (f *fakeClient) Login(_ context.Context, username, password string) error {
	if err := f.record("login", username, password); err != nil {
		return err
	}
	f.loggedIn = true
	return nil
}

func (f *fakeClient) Verify(_ context.Context, username, code string) error {
	return f.record("verify", username, code)
}

func (f *fakeClient) ResendVerification(_ context.Context, username string) error {
	return f.record("resend", username)
}

func (f *fakeClient) RequestPasswordReset(_ context.Context, username, email string) error {
	return f.record("reset-request", username, email)
}

func (f *fakeClient) ResetPassword(_ context.Context, username, code, pw string) error {
	return f.record("reset", username, code, pw)
}

func (f *fakeClient) UpdatePassword(_ context.Context, oldPassword, newPassword string) error {
	return f.record("passwd", oldPassword, newPassword)
}

func (f *fakeClient) ListProjects(_ context.Context, listing string, value int) ([]api.Project, error) {
	if err := f.record("projects", listing); err != nil {
		return nil, err
	}
	return f.projects, nil
}

func (f *fakeClient) Notifications(context.Context) ([]api.Notification, error) {
	return f.notes, f.record("notifications")
}

func (f *fakeClient) DismissNotification(context.Context, int64) error {
	return f.record("dismiss")
}

func (f *fakeClient) ContactUs(_ context.Context, in *api.ContactUsRequest) error {
	f.contact = in
	return f.record("contact")
}

func (f *fakeClient) UploadProjectImage(_ context.Context, _ int64, fileName string, data []byte) (string, error) {
	if err := f.record("upload-image", fileName, string(data)); err != nil {
		return "", err
	}
	return "projects/1/key", nil
}

func (f *fakeClient) ImageURL(_ context.Context, key string) (string, error) {
	return "https://s3.local/" + key, f.record("image", key)
}

func (f *fakeClient) SendHealthCheck(context.Context) (*api.HealthCheckResponse, error) {
	return &api.HealthCheckResponse{Email: true, Database: false}, f.record("health-check")
}

func (f *fakeClient) EmailOnline(context.Context) (bool, error) {
	return true, f.record("email-status")
}
