package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
)

// ResourceStore is the resource library persistence surface.
type ResourceStore interface {
	CreateResource(ctx context.Context, res *models.Resource) (int64, error)
	GetResourceByID(ctx context.Context, id int64) (*models.Resource, error)
	ListResources(ctx context.Context, resourceType, category string) ([]*models.Resource, error)
	DeleteResource(ctx context.Context, id int64) error
}

// ResourceService manages the self-help resource library.
type ResourceService struct {
	store  ResourceStore
	logger zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(store ResourceStore, logger zerolog.Logger) *ResourceService {
	return &ResourceService{
		store:  store,
		logger: logger,
	}
}

// List returns resources, optionally filtered by type and category.
func (s *ResourceService) List(ctx context.Context, resourceType, category string) ([]*models.Resource, error) {
	return s.store.ListResources(ctx, resourceType, category)
}

// Get returns a single resource.
func (s *ResourceService) Get(ctx context.Context, id int64) (*models.Resource, error) {
	return s.store.GetResourceByID(ctx, id)
}

// Create adds a resource to the library. Admin only, enforced at the route.
func (s *ResourceService) Create(ctx context.Context, req *dto.CreateResourceRequest) (*models.Resource, error) {
	language := req.Language
	if language == "" {
		language = "English"
	}

	res := &models.Resource{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Type:        req.Type,
		Category:    req.Category,
		Language:    language,
	}
	if _, err := s.store.CreateResource(ctx, res); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("resourceID", res.ID).Str("title", res.Title).Msg("Resource created")
	return res, nil
}

// Delete removes a resource from the library. Admin only.
func (s *ResourceService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteResource(ctx, id)
}
