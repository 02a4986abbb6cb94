package services

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/mercury/internal/common"
	sc "github.com/dmitrijs2005/mercury/internal/server/config"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/projects"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const presignExpiry = 15 * time.Minute

// ProjectListing selects which projects List returns.
type ProjectListing int

const (
	ListAll ProjectListing = iota
	ListActive
	ListByStatus
	ListByCategory
	ListHidden
)

// ProjectQuery is a listing request. Value carries the status or category
// for ListByStatus and ListByCategory.
type ProjectQuery struct {
	Listing ProjectListing
	Value   int
}

func (q ProjectQuery) filter() (projects.Filter, error) {
	var f projects.Filter
	switch q.Listing {
	case ListAll:
	case ListActive:
		status, hidden := models.ProjectStatusActive, false
		f.Status, f.Hidden = &status, &hidden
	case ListByStatus:
		v := q.Value
		f.Status = &v
	case ListByCategory:
		v := q.Value
		f.Category = &v
	case ListHidden:
		hidden := true
		f.Hidden = &hidden
	default:
		return f, fmt.Errorf("%w: unknown project listing %d", common.ErrInvalidArgument, q.Listing)
	}
	return f, nil
}

// ProjectService serves project listings and edits, and hands out presigned
// S3 URLs for project images.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewProjectService(db *sql.DB, rm repomanager.RepositoryManager, config *sc.Config) *ProjectService {
	return &ProjectService{db: db, repomanager: rm, config: config}
}

func (s *ProjectService) List(ctx context.Context, q ProjectQuery) ([]*models.Project, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	list, err := s.repomanager.Projects(s.db).List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	return list, nil
}

func checkProjectID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: project id must be positive", common.ErrInvalidArgument)
	}
	return nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	if err := checkProjectID(id); err != nil {
		return nil, err
	}
	return s.repomanager.Projects(s.db).Get(ctx, id)
}

// Update saves an edited project and records who made the change.
func (s *ProjectService) Update(ctx context.Context, editorID int64, p *models.Project) error {
	if err := checkProjectID(p.ID); err != nil {
		return err
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: project title is required", common.ErrInvalidArgument)
	}
	p.DataEntryUserID = &editorID
	return s.repomanager.Projects(s.db).Update(ctx, p)
}

// imageDir is the storage prefix of a project's images: its image directory,
// or projects/{id} when none is set.
func imageDir(p *models.Project) string {
	dir := strings.Trim(p.ImageDirectory, "/")
	if dir == "" {
		dir = path.Join("projects", strconv.FormatInt(p.ID, 10))
	}
	return dir
}

// ImageStorageKey places a new image under the project's image directory.
func ImageStorageKey(p *models.Project) string {
	return path.Join(imageDir(p), uuid.New().String())
}

// imageOwner finds the project whose image directory holds key. Keys that
// are not clean relative paths, or that sit outside every project's
// directory, yield common.ErrorNotFound.
func (s *ProjectService) imageOwner(ctx context.Context, key string) (*models.Project, error) {
	dir := path.Dir(key)
	if key != path.Clean(key) || path.IsAbs(key) || strings.HasPrefix(key, "..") || dir == "." {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Projects(s.db)

	if rest, ok := strings.CutPrefix(dir, "projects/"); ok {
		if id, err := strconv.ParseInt(rest, 10, 64); err == nil && id > 0 {
			p, err := repo.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			if imageDir(p) == dir {
				return p, nil
			}
			return nil, common.ErrorNotFound
		}
	}

	list, err := repo.List(ctx, projects.Filter{})
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	for _, p := range list {
		if p.ImageDirectory != "" && imageDir(p) == dir {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *ProjectService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// GetImageUploadURL returns a fresh storage key for an image of project id
// and a presigned PUT URL for it.
func (s *ProjectService) GetImageUploadURL(ctx context.Context, id int64) (string, string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", "", err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := ImageStorageKey(p)

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetImageURL returns a presigned GET URL for a stored image key. Only keys
// inside a project's image directory are signed.
func (s *ProjectService) GetImageURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: image key is required", common.ErrInvalidArgument)
	}
	if _, err := s.imageOwner(ctx, key); err != nil {
		return "", err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
