package grpc

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/api"
)

func (s *GRPCServer) ListProjects(ctx context.Context, req *api.ListProjectsRequest) (*api.ListProjectsResponse, error) {
	q, err := projectQuery(req)
	if err != nil {
		return nil, err
	}
	p, err := s.projects.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &api.ListProjectsResponse{Projects: mapSlice(p, projectToAPI)}, nil
}

func (s *GRPCServer) GetProject(ctx context.Context, req *api.ProjectRequest) (*api.ProjectResponse, error) {
	p, err := s.projects.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &api.ProjectResponse{Project: projectToAPI(p)}, nil
}

// UpdateProject records the calling admin as the data entry user.
func (s *GRPCServer) UpdateProject(ctx context.Context, req *api.UpdateProjectRequest) (*api.Empty, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, id.ID, projectFromAPI(req.Project)); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) GetProjectImageUploadURL(ctx context.Context, req *api.ProjectRequest) (*api.ImageUploadURLResponse, error) {
	key, url, err := s.projects.GetImageUploadURL(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &api.ImageUploadURLResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) GetProjectImageURL(ctx context.Context, req *api.ImageURLRequest) (*api.ImageURLResponse, error) {
	url, err := s.projects.GetImageURL(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	return &api.ImageURLResponse{URL: url}, nil
}
