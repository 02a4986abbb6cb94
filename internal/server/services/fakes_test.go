package services

import (
	"context"
	"crypto/sha512"
	"database/sql"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/credential"
	"github.com/dmitrijs2005/mercury/internal/dbx"
	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/dmitrijs2005/mercury/internal/server/config"
	"github.com/dmitrijs2005/mercury/internal/server/mail"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/projects"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/storedemails"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/volunteers"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger          { return n }

func fastHasher() *credential.Hasher {
	return credential.NewHasher(credential.Params{Iterations: 1, KeyLength: 32, SaltLength: 16, Hash: sha512.New}, 2)
}

// txDB returns a sqlmock DB that accepts any number of transactions. The
// repositories are fakes, so only Begin/Commit/Rollback reach the driver.
func txDB(t *testing.T) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 16; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// --- volunteers ---

type fakeVolunteers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Volunteer
	admins map[int64]bool
}

func (f *fakeVolunteers) Create(_ context.Context, v *models.Volunteer) (*models.Volunteer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.Username == v.Username || e.Email == v.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	cp := *v
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeVolunteers) GetByUsername(_ context.Context, username string) (*models.Volunteer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.byID {
		if v.Username == username {
			cp := *v
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeVolunteers) GetByID(_ context.Context, id int64) (*models.Volunteer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVolunteers) MarkVerified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	v.Verified = true
	return nil
}

func (f *fakeVolunteers) UpdatePassword(_ context.Context, id int64, password, salt string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	v.Password, v.Salt = password, salt
	return nil
}

func (f *fakeVolunteers) CanAccessAdminPortal(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return false, common.ErrorNotFound
	}
	return f.admins[id], nil
}

// --- codes ---

type fakeCodes struct {
	mu   sync.Mutex
	rows map[models.CodePurpose]map[int64]*models.Code
}

type fakeCodeTable struct {
	f       *fakeCodes
	purpose models.CodePurpose
}

func (t fakeCodeTable) Find(_ context.Context, id int64) (*models.Code, error) {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	c, ok := t.f.rows[t.purpose][id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (t fakeCodeTable) Insert(_ context.Context, c *models.Code) error {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if t.f.rows[t.purpose] == nil {
		t.f.rows[t.purpose] = map[int64]*models.Code{}
	}
	if _, ok := t.f.rows[t.purpose][c.AccountID]; ok {
		return common.ErrorAlreadyExists
	}
	cp := *c
	t.f.rows[t.purpose][c.AccountID] = &cp
	return nil
}

func (t fakeCodeTable) Delete(_ context.Context, id int64) (int64, error) {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if _, ok := t.f.rows[t.purpose][id]; !ok {
		return 0, nil
	}
	delete(t.f.rows[t.purpose], id)
	return 1, nil
}

func (f *fakeCodes) count(p models.CodePurpose) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows[p])
}

// --- projects, notifications, stored emails ---

type fakeProjects struct {
	lastFilter projects.Filter
	list       []*models.Project
	byID       map[int64]*models.Project
	updated    *models.Project
}

func (f *fakeProjects) List(_ context.Context, flt projects.Filter) ([]*models.Project, error) {
	f.lastFilter = flt
	return f.list, nil
}

func (f *fakeProjects) Get(_ context.Context, id int64) (*models.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProjects) Update(_ context.Context, p *models.Project) error {
	f.updated = p
	return nil
}

type fakeNotifications struct {
	active    []*models.Notification
	dismissed [][2]int64
}

func (f *fakeNotifications) ListActive(context.Context, int64) ([]*models.Notification, error) {
	return f.active, nil
}

func (f *fakeNotifications) Dismiss(_ context.Context, volunteerID, id int64) error {
	f.dismissed = append(f.dismissed, [2]int64{volunteerID, id})
	return nil
}

type fakeStoredEmails struct {
	rows    map[int64]*models.StoredEmail
	updated *models.StoredEmail
	deleted []int64
}

func (f *fakeStoredEmails) Create(context.Context, *models.StoredEmail) (int64, error) { return 0, nil }
func (f *fakeStoredEmails) IncrementRetry(context.Context, int64) error               { return nil }

func (f *fakeStoredEmails) List(context.Context) ([]*models.StoredEmail, error) {
	var out []*models.StoredEmail
	for _, e := range f.rows {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStoredEmails) Get(_ context.Context, id int64) (*models.StoredEmail, error) {
	e, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStoredEmails) Update(_ context.Context, e *models.StoredEmail) error {
	f.updated = e
	return nil
}

func (f *fakeStoredEmails) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// --- repository manager ---

type fakeRepoManager struct {
	volunteers    *fakeVolunteers
	codes         *fakeCodes
	projects      *fakeProjects
	notifications *fakeNotifications
	storedEmails  *fakeStoredEmails
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		volunteers:    &fakeVolunteers{byID: map[int64]*models.Volunteer{}, admins: map[int64]bool{}},
		codes:         &fakeCodes{rows: map[models.CodePurpose]map[int64]*models.Code{}},
		projects:      &fakeProjects{byID: map[int64]*models.Project{}},
		notifications: &fakeNotifications{},
		storedEmails:  &fakeStoredEmails{rows: map[int64]*models.StoredEmail{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Volunteers(dbx.DBTX) volunteers.Repository         { return m.volunteers }
func (m *fakeRepoManager) Projects(dbx.DBTX) projects.Repository             { return m.projects }
func (m *fakeRepoManager) Notifications(dbx.DBTX) notifications.Repository   { return m.notifications }
func (m *fakeRepoManager) StoredEmails(dbx.DBTX) storedemails.Repository     { return m.storedEmails }
func (m *fakeRepoManager) Codes(_ dbx.DBTX, p models.CodePurpose) repomanager.CodeRepository {
	return fakeCodeTable{f: m.codes, purpose: p}
}

// --- mail ---

type fakeMailer struct {
	mu      sync.Mutex
	sent    []*mail.Message
	sendErr error
	online  bool
	verErr  error
	flushed bool
}

func (f *fakeMailer) Send(_ context.Context, msg *mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.sendErr
}

func (f *fakeMailer) From() string                  { return "team@mercury.example" }
func (f *fakeMailer) Online() bool                  { return f.online }
func (f *fakeMailer) Verify(context.Context) error  { return f.verErr }
func (f *fakeMailer) Flush(context.Context) (mail.FlushResult, error) {
	f.flushed = true
	return mail.FlushResult{Sent: 1}, nil
}

var linkRe = regexp.MustCompile(`/(verify|reset)/([A-Za-z0-9]+)/(\d+)`)

// lastCode extracts the code from the most recent link email.
func (f *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatalf("no email sent")
	}
	m := linkRe.FindStringSubmatch(f.sent[len(f.sent)-1].Text)
	if m == nil {
		t.Fatalf("no link in email: %q", f.sent[len(f.sent)-1].Text)
	}
	return m[3]
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		OnlineAddress:         "https://mercury.example/",
		S3Region:              "us-east-1",
		S3RootUser:            "minioadmin",
		S3RootPassword:        "minioadmin",
		S3BaseEndpoint:        "http://127.0.0.1:9000",
		S3Bucket:              "mercury",
	}
}
