package core

import (
	"context"

	"github.com/example/portfolio-admin/internal/models"
	"github.com/example/portfolio-admin/internal/validation"
)

type skillService struct {
	store *entityStore[models.Skill]
	deps  ServiceDeps
}

// NewSkillService creates the Skill service.
func NewSkillService(deps ServiceDeps) SkillService {
	deps = deps.withDefaults()
	return &skillService{
		store: newEntityStore(deps, CollectionSkills, ErrSkillNotFound,
			func(sk *models.Skill, id string) { sk.ID = id }, nil),
		deps: deps,
	}
}

func clampLevel(level int) int {
	return validation.Clamp(level, models.MinSkillLevel, models.MaxSkillLevel)
}

func (s *skillService) List(ctx context.Context, page PageRequest) (*Page[models.Skill], error) {
	records, err := s.store.list(ctx)
	if err != nil {
		return nil, err
	}
	return Paginate(records, page), nil
}

func (s *skillService) Get(ctx context.Context, id string) (*models.Skill, error) {
	return s.store.get(ctx, id)
}

func (s *skillService) Create(ctx context.Context, skill models.Skill) (*models.Skill, error) {
	if skill.Status == "" {
		skill.Status = models.StatusActive
	}
	skill.Level = clampLevel(skill.Level)
	if err := validation.Struct(skill); err != nil {
		return nil, err
	}
	now := s.deps.timestamp()
	skill.CreatedAt, skill.UpdatedAt = now, now
	return s.store.create(ctx, skill)
}

func (s *skillService) Patch(ctx context.Context, id string, patch models.SkillPatch) (*models.Skill, error) {
	current, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *current
	fields := map[string]interface{}{}
	setString(fields, "name", &merged.Name, patch.Name)
	setString(fields, "status", &merged.Status, patch.Status)
	if patch.Level != nil {
		merged.Level = clampLevel(*patch.Level)
		fields["level"] = merged.Level
	}

	if err := validation.Struct(merged); err != nil {
		return nil, err
	}
	merged.UpdatedAt = s.deps.timestamp()
	fields["updatedAt"] = merged.UpdatedAt
	return s.store.patch(ctx, id, merged, fields)
}

func (s *skillService) Replace(ctx context.Context, id string, skill models.Skill) (*models.Skill, error) {
	current, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	skill.Level = clampLevel(skill.Level)
	if err := validation.Struct(skill); err != nil {
		return nil, err
	}
	skill.CreatedAt = current.CreatedAt
	skill.UpdatedAt = s.deps.timestamp()
	return s.store.replace(ctx, id, skill)
}

func (s *skillService) Delete(ctx context.Context, id string) error {
	return s.store.remove(ctx, id)
}
