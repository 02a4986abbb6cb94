package grpc

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/dmitrijs2005/mercury/internal/server/mail"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/dmitrijs2005/mercury/internal/server/services"
	"github.com/dmitrijs2005/mercury/internal/server/slack"
	"github.com/dmitrijs2005/mercury/internal/server/validation"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// fakeVolunteers records the last call and returns err from every method.
type fakeVolunteers struct {
	err    error
	admins map[int64]bool

	registered   validation.Registration
	username     string
	code         string
	password     string
	oldPassword  string
	volunteerID  int64
	dismissed    int64
	notification []*models.Notification
}

func (f *fakeVolunteers) Register(_ context.Context, in validation.Registration) (*models.Volunteer, error) {
	f.registered = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Volunteer{ID: 7, Username: in.Username}, nil
}

func (f *fakeVolunteers) Login(_ context.Context, username, password string) (string, error) {
	f.username, f.password = username, password
	if f.err != nil {
		return "", f.err
	}
	return "token-" + username, nil
}

func (f *fakeVolunteers) Verify(_ context.Context, username, code string) error {
	f.username, f.code = username, code
	return f.err
}

func (f *fakeVolunteers) ResendVerification(_ context.Context, username string) error {
	f.username = username
	return f.err
}

func (f *fakeVolunteers) RequestPasswordReset(_ context.Context, username, _ string) error {
	f.username = username
	return f.err
}

func (f *fakeVolunteers) CheckResetCode(_ context.Context, username string) error {
	f.username = username
	return f.err
}

func (f *fakeVolunteers) ResetPassword(_ context.Context, username, code, newPassword string) error {
	f.username, f.code, f.password = username, code, newPassword
	return f.err
}

func (f *fakeVolunteers) UpdatePassword(_ context.Context, username, oldPassword, newPassword string) error {
	f.username, f.oldPassword, f.password = username, oldPassword, newPassword
	return f.err
}

func (f *fakeVolunteers) IsAdmin(_ context.Context, id int64) (bool, error) {
	return f.admins[id], nil
}

func (f *fakeVolunteers) Notifications(_ context.Context, id int64) ([]*models.Notification, error) {
	f.volunteerID = id
	return f.notification, f.err
}

func (f *fakeVolunteers) DismissNotification(_ context.Context, volunteerID, notificationID int64) error {
	f.volunteerID, f.dismissed = volunteerID, notificationID
	return f.err
}

type fakeProjects struct {
	err      error
	query    services.ProjectQuery
	projects []*models.Project
	updated  *models.Project
	editor   int64
}

func (f *fakeProjects) List(_ context.Context, q services.ProjectQuery) ([]*models.Project, error) {
	f.query = q
	return f.projects, f.err
}

func (f *fakeProjects) Get(_ context.Context, id int64) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Project{ID: id, Title: "Clean the river"}, nil
}

func (f *fakeProjects) Update(_ context.Context, editorID int64, p *models.Project) error {
	f.editor, f.updated = editorID, p
	return f.err
}

func (f *fakeProjects) GetImageUploadURL(_ context.Context, id int64) (string, string, error) {
	return "projects/1/a.png", "https://upload", f.err
}

func (f *fakeProjects) GetImageURL(_ context.Context, key string) (string, error) {
	return "https://get/" + key, f.err
}

type fakeEmails struct {
	err     error
	online  bool
	stored  []*models.StoredEmail
	updated *models.StoredEmail
	removed int64
	flushed mail.FlushResult
}

func (f *fakeEmails) ContactUs(context.Context, string, string, string, string) error { return f.err }
func (f *fakeEmails) Online() bool                                                    { return f.online }
func (f *fakeEmails) Reverify(context.Context) error                                  { return f.err }

func (f *fakeEmails) StoredEmails(context.Context) ([]*models.StoredEmail, error) {
	return f.stored, f.err
}

func (f *fakeEmails) UpdateStoredEmail(_ context.Context, e *models.StoredEmail) error {
	f.updated = e
	return f.err
}

func (f *fakeEmails) RemoveStoredEmail(_ context.Context, id int64) error {
	f.removed = id
	return f.err
}

func (f *fakeEmails) Flush(context.Context) (mail.FlushResult, error) {
	return f.flushed, f.err
}

// helper to build server
type fakeHealth struct {
	status slack.Status
	err    error
	calls  int
}

func (f *fakeHealth) SendHealthCheck(context.Context) (slack.Status, error) {
	f.calls++
	return f.status, f.err
}

func newTestServer(secret string) (*GRPCServer, *fakeVolunteers, *fakeProjects, *fakeEmails) {
	vs := &fakeVolunteers{admins: map[int64]bool{}}
	ps := &fakeProjects{}
	es := &fakeEmails{}
	return NewGRPCServer("127.0.0.1:0", nopLogger{}, vs, ps, es, &fakeHealth{}, secret), vs, ps, es
}
