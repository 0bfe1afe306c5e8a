package service

import (
	"context"
	"testing"

	"github.com/locpham-gh/the-gathering/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResourceRepo records calls and serves canned rows
type stubResourceRepo struct {
	created     *model.Resource
	byID        *model.Resource
	updated     *model.Resource
	updateCalls int
}

func (s *stubResourceRepo) Create(_ context.Context, r *model.Resource) error {
	r.ID = 1
	s.created = r
	return nil
}

func (s *stubResourceRepo) FindByID(_ context.Context, _ int) (*model.Resource, error) {
	return s.byID, nil
}

func (s *stubResourceRepo) FindVisible(_ context.Context, _ model.Role, _ model.ResourceFilters) ([]model.Resource, error) {
	return nil, nil
}

func (s *stubResourceRepo) UpdateStatus(_ context.Context, _ int, status model.ResourceStatus) (*model.Resource, error) {
	s.updateCalls++
	if s.updated != nil {
		s.updated.Status = status
	}
	return s.updated, nil
}

func TestUploadResource_ForcesPendingAndUploader(t *testing.T) {
	repo := &stubResourceRepo{}
	svc := NewResourceService(repo)

	res, err := svc.UploadResource(context.Background(), 7, model.CreateResourceRequest{
		Title:       "Sourdough Basics",
		ContentType: "guide",
		URL:         "https://cdn.example.com/sourdough.pdf",
		Format:      "pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, 7, res.UploaderID)
	require.NotNil(t, repo.created)
	assert.Equal(t, model.StatusPending, repo.created.Status)
}

func TestModerateResource_InvalidStatusRejectedBeforeWrite(t *testing.T) {
	repo := &stubResourceRepo{}
	svc := NewResourceService(repo)

	_, err := svc.ModerateResource(context.Background(), 1, model.ResourceStatus("archived"))

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Zero(t, repo.updateCalls, "store must not be touched for an invalid status")
}

func TestModerateResource_NotFound(t *testing.T) {
	repo := &stubResourceRepo{updated: nil}
	svc := NewResourceService(repo)

	_, err := svc.ModerateResource(context.Background(), 404, model.StatusApproved)

	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestModerateResource_AnyStateToAnyState(t *testing.T) {
	// An approved resource may go back to pending; no transition is
	// terminal.
	repo := &stubResourceRepo{updated: &model.Resource{ID: 3, Status: model.StatusApproved}}
	svc := NewResourceService(repo)

	res, err := svc.ModerateResource(context.Background(), 3, model.StatusPending)

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestGetResource_NonAdminCannotSeePending(t *testing.T) {
	repo := &stubResourceRepo{byID: &model.Resource{ID: 2, Status: model.StatusPending}}
	svc := NewResourceService(repo)

	_, err := svc.GetResource(context.Background(), 2, model.RoleUser)
	assert.ErrorIs(t, err, ErrResourceNotFound)

	res, err := svc.GetResource(context.Background(), 2, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestGetResource_NotFound(t *testing.T) {
	repo := &stubResourceRepo{byID: nil}
	svc := NewResourceService(repo)

	_, err := svc.GetResource(context.Background(), 99, model.RoleAdmin)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}
