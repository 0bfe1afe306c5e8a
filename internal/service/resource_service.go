package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/locpham-gh/the-gathering/internal/model"
	"github.com/locpham-gh/the-gathering/internal/repository"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidStatus    = errors.New("invalid status, must be 'pending', 'approved' or 'rejected'")
)

// ResourceService defines operations for the community library
type ResourceService interface {
	ListResources(ctx context.Context, role model.Role, filters model.ResourceFilters) ([]model.Resource, error)
	GetResource(ctx context.Context, id int, role model.Role) (*model.Resource, error)
	UploadResource(ctx context.Context, uploaderID int, req model.CreateResourceRequest) (*model.Resource, error)
	ModerateResource(ctx context.Context, id int, status model.ResourceStatus) (*model.Resource, error)
}

type resourceService struct {
	repo repository.ResourceRepository
}

// NewResourceService creates a new ResourceService
func NewResourceService(repo repository.ResourceRepository) ResourceService {
	return &resourceService{repo: repo}
}

// ListResources returns the resources visible to the caller. An empty
// result is success.
func (s *resourceService) ListResources(ctx context.Context, role model.Role, filters model.ResourceFilters) ([]model.Resource, error) {
	resources, err := s.repo.FindVisible(ctx, role, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

// GetResource returns a single resource. Non-admins cannot see
// non-approved resources; those come back as not found rather than
// leaking their existence.
func (s *resourceService) GetResource(ctx context.Context, id int, role model.Role) (*model.Resource, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}
	if role != model.RoleAdmin && resource.Status != model.StatusApproved {
		return nil, ErrResourceNotFound
	}
	return resource, nil
}

// UploadResource creates a resource on behalf of the authenticated
// caller. Status always starts at pending and the uploader comes from
// the token, whatever the request body says.
func (s *resourceService) UploadResource(ctx context.Context, uploaderID int, req model.CreateResourceRequest) (*model.Resource, error) {
	resource := &model.Resource{
		Title:        req.Title,
		Description:  req.Description,
		ContentType:  req.ContentType,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		Category:     req.Category,
		Author:       req.Author,
		Format:       req.Format,
		UploaderID:   uploaderID,
		Status:       model.StatusPending,
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to create resource in repo: %w", err)
	}
	return resource, nil
}

// ModerateResource sets a resource's status. Any state may move to any
// of the three states. The target status is validated before any write.
func (s *resourceService) ModerateResource(ctx context.Context, id int, status model.ResourceStatus) (*model.Resource, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	resource, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to moderate resource: %w", err)
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}
	return resource, nil
}
