package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/portfolio-admin/internal/db"
	"github.com/example/portfolio-admin/internal/events"
	"github.com/example/portfolio-admin/internal/models"
	"github.com/example/portfolio-admin/internal/validation"
)

type projectService struct {
	store *entityStore[models.Project]
	deps  ServiceDeps
}

// NewProjectService creates the Project service.
func NewProjectService(deps ServiceDeps) ProjectService {
	deps = deps.withDefaults()
	return &projectService{
		store: newEntityStore(deps, CollectionProjects, ErrProjectNotFound,
			func(p *models.Project, id string) { p.ID = id },
			func(p *models.Project) {
				if p.Status == "" {
					p.Status = models.ProjectStatusActive
				}
				p.Images = nonNil(p.Images)
				p.TechStack = nonNil(p.TechStack)
			}),
		deps: deps,
	}
}

func (s *projectService) prepare(ctx context.Context, p *models.Project) error {
	p.Images = nonNil(p.Images)
	p.TechStack = nonNil(p.TechStack)
	if err := validation.Struct(p); err != nil {
		return err
	}
	images, err := s.deps.offloadAll(ctx, p.Images)
	if err != nil {
		return err
	}
	p.Images = images
	return nil
}

func (s *projectService) List(ctx context.Context, page PageRequest) (*Page[models.Project], error) {
	records, err := s.store.list(ctx)
	if err != nil {
		return nil, err
	}
	return Paginate(records, page), nil
}

func (s *projectService) ListActive(ctx context.Context) ([]models.Project, error) {
	records, err := s.store.list(ctx)
	if err != nil {
		return nil, err
	}
	active := records[:0]
	for _, p := range records {
		if p.Status == models.ProjectStatusActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.store.get(ctx, id)
}

func (s *projectService) Create(ctx context.Context, project models.Project) (*models.Project, error) {
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}
	project.Views = 0
	if err := s.prepare(ctx, &project); err != nil {
		return nil, err
	}
	now := s.deps.timestamp()
	project.CreatedAt, project.UpdatedAt = now, now
	return s.store.create(ctx, project)
}

func (s *projectService) Patch(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	current, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *current
	fields := map[string]interface{}{}
	setString(fields, "title", &merged.Title, patch.Title)
	setString(fields, "description", &merged.Description, patch.Description)
	setString(fields, "github", &merged.Github, patch.Github)
	setString(fields, "live", &merged.Live, patch.Live)
	setStrings(fields, "images", &merged.Images, patch.Images)
	setStrings(fields, "techStack", &merged.TechStack, patch.TechStack)
	setString(fields, "status", &merged.Status, patch.Status)

	if err := s.prepare(ctx, &merged); err != nil {
		return nil, err
	}
	if _, ok := fields["images"]; ok {
		fields["images"] = merged.Images
	}
	merged.UpdatedAt = s.deps.timestamp()
	fields["updatedAt"] = merged.UpdatedAt
	return s.store.patch(ctx, id, merged, fields)
}

// Replace overwrites a project. The view counter and creation time are
// managed by the server and carried over from the stored record.
func (s *projectService) Replace(ctx context.Context, id string, project models.Project) (*models.Project, error) {
	current, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Views = current.Views
	if err := s.prepare(ctx, &project); err != nil {
		return nil, err
	}
	project.CreatedAt = current.CreatedAt
	project.UpdatedAt = s.deps.timestamp()
	return s.store.replace(ctx, id, project)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.store.remove(ctx, id)
}

func (s *projectService) ToggleStatus(ctx context.Context, id string) (*models.Project, error) {
	current, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := models.ProjectStatusActive
	if current.Status == models.ProjectStatusActive {
		next = models.ProjectStatusInactive
	}
	return s.Patch(ctx, id, models.ProjectPatch{Status: &next})
}

func (s *projectService) RecordView(ctx context.Context, id string) (int, error) {
	if !validKey(id) {
		return 0, ErrProjectNotFound
	}
	var views int
	path := s.store.coll.Path(id)
	err := s.deps.DB.Transaction(ctx, path, func(current json.RawMessage) (interface{}, error) {
		if db.IsNull(current) {
			return nil, ErrProjectNotFound
		}
		var node map[string]interface{}
		if err := json.Unmarshal(current, &node); err != nil {
			return nil, err
		}
		n, _ := node["views"].(float64)
		views = int(n) + 1
		node["views"] = views
		return node, nil
	})
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return 0, ErrProjectNotFound
		}
		return 0, fmt.Errorf("recording view for project %s: %w", id, err)
	}
	// Views come from anonymous visitors and are not audited.
	s.deps.Notifier.Touch(CollectionProjects)
	s.deps.publish(ctx, CollectionProjects, events.ActionUpdated, id, map[string]interface{}{"views": views})
	return views, nil
}
