package core

import (
	"context"

	"github.com/example/portfolio-admin/internal/models"
	"github.com/example/portfolio-admin/internal/validation"
)

type educationService struct {
	store *entityStore[models.Education]
	deps  ServiceDeps
}

// NewEducationService creates the Education service.
func NewEducationService(deps ServiceDeps) EducationService {
	deps = deps.withDefaults()
	return &educationService{
		store: newEntityStore(deps, CollectionEducation, ErrEducationNotFound,
			func(e *models.Education, id string) { e.ID = id }, nil),
		deps: deps,
	}
}

func (s *educationService) List(ctx context.Context, page PageRequest) (*Page[models.Education], error) {
	records, err := s.store.list(ctx)
	if err != nil {
		return nil, err
	}
	return Paginate(records, page), nil
}

func (s *educationService) Get(ctx context.Context, id string) (*models.Education, error) {
	return s.store.get(ctx, id)
}

func (s *educationService) Create(ctx context.Context, edu models.Education) (*models.Education, error) {
	if edu.Position == "" {
		edu.Position = models.PositionLeft
	}
	if edu.Status == "" {
		edu.Status = models.StatusActive
	}
	if err := validation.Struct(edu); err != nil {
		return nil, err
	}
	now := s.deps.timestamp()
	edu.CreatedAt, edu.UpdatedAt = now, now
	return s.store.create(ctx, edu)
}

func (s *educationService) Patch(ctx context.Context, id string, patch models.EducationPatch) (*models.Education, error) {
	current, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *current
	fields := map[string]interface{}{}
	setString(fields, "title", &merged.Title, patch.Title)
	setString(fields, "institution", &merged.Institution, patch.Institution)
	setString(fields, "duration", &merged.Duration, patch.Duration)
	setString(fields, "description", &merged.Description, patch.Description)
	setString(fields, "position", &merged.Position, patch.Position)
	setString(fields, "status", &merged.Status, patch.Status)

	if err := validation.Struct(merged); err != nil {
		return nil, err
	}
	merged.UpdatedAt = s.deps.timestamp()
	fields["updatedAt"] = merged.UpdatedAt
	return s.store.patch(ctx, id, merged, fields)
}

func (s *educationService) Replace(ctx context.Context, id string, edu models.Education) (*models.Education, error) {
	current, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(edu); err != nil {
		return nil, err
	}
	edu.CreatedAt = current.CreatedAt
	edu.UpdatedAt = s.deps.timestamp()
	return s.store.replace(ctx, id, edu)
}

func (s *educationService) Delete(ctx context.Context, id string) error {
	return s.store.remove(ctx, id)
}
