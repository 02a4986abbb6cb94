package grpc

import (
	"fmt"

	"github.com/dmitrijs2005/mercury/internal/api"
	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/dmitrijs2005/mercury/internal/server/services"
)

var listings = map[string]services.ProjectListing{
	"":                  services.ListAll,
	api.ListingAll:      services.ListAll,
	api.ListingActive:   services.ListActive,
	api.ListingStatus:   services.ListByStatus,
	api.ListingCategory: services.ListByCategory,
	api.ListingHidden:   services.ListHidden,
}

func projectQuery(in *api.ListProjectsRequest) (services.ProjectQuery, error) {
	l, ok := listings[in.Listing]
	if !ok {
		return services.ProjectQuery{}, fmt.Errorf("%w: unknown listing %q", common.ErrInvalidArgument, in.Listing)
	}
	return services.ProjectQuery{Listing: l, Value: in.Value}, nil
}

func projectToAPI(p *models.Project) api.Project {
	return api.Project{
		ID:              p.ID,
		Title:           p.Title,
		Status:          p.Status,
		Category:        p.ProjectCategory,
		Hidden:          p.Hidden,
		ImageDirectory:  p.ImageDirectory,
		Summary:         p.Summary,
		Description:     p.Description,
		DataEntryUserID: p.DataEntryUserID,
		CreatedAt:       p.CreatedAt,
	}
}

func projectFromAPI(p api.Project) *models.Project {
	return &models.Project{
		ID:              p.ID,
		Title:           p.Title,
		Status:          p.Status,
		ProjectCategory: p.Category,
		Hidden:          p.Hidden,
		ImageDirectory:  p.ImageDirectory,
		Summary:         p.Summary,
		Description:     p.Description,
	}
}

func notificationToAPI(n *models.Notification) api.Notification {
	return api.Notification{
		ID:             n.ID,
		AnnouncementID: n.AnnouncementID,
		Title:          n.Title,
		Body:           n.Body,
		CreatedAt:      n.CreatedAt,
	}
}

func storedEmailToAPI(e *models.StoredEmail) api.StoredEmail {
	return api.StoredEmail{
		ID:         e.ID,
		To:         e.To,
		From:       e.From,
		Subject:    e.Subject,
		Text:       e.Text,
		HTML:       e.HTML,
		RetryCount: e.RetryCount,
		CreatedAt:  e.CreatedAt,
		ModifiedAt: e.ModifiedAt,
	}
}

func storedEmailFromAPI(e api.StoredEmail) *models.StoredEmail {
	return &models.StoredEmail{
		ID:      e.ID,
		To:      e.To,
		From:    e.From,
		Subject: e.Subject,
		Text:    e.Text,
		HTML:    e.HTML,
	}
}

func mapSlice[T, R any](in []*T, f func(*T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
