package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/events"
	"github.com/example/portfolio-admin/internal/models"
	"github.com/example/portfolio-admin/internal/validation"
)

type aboutService struct {
	store *entityStore[models.About]
	deps  ServiceDeps
}

// NewAboutService creates the About service. Every load and save leaves at
// most one record with status "active".
func NewAboutService(deps ServiceDeps) AboutService {
	deps = deps.withDefaults()
	return &aboutService{
		store: newEntityStore(deps, CollectionAbout, ErrAboutNotFound,
			func(a *models.About, id string) { a.ID = id },
			func(a *models.About) {
				if a.Status == "" {
					a.Status = models.AboutStatusInactive
				}
				a.SocialMediaLinks = nonNil(a.SocialMediaLinks)
			}),
		deps: deps,
	}
}

func statusEntries(records []models.About) []StatusEntry {
	out := make([]StatusEntry, len(records))
	for i, r := range records {
		out[i] = StatusEntry{Key: r.ID, Status: r.Status}
	}
	return out
}

// load lists the collection and repairs it when more than one record is
// active. A failed repair is logged and the corrected view is still returned.
func (s *aboutService) load(ctx context.Context) ([]models.About, error) {
	records, err := s.store.list(ctx)
	if err != nil {
		return nil, err
	}
	flips := NormalizeActive(statusEntries(records), "")
	if len(flips) == 0 {
		return records, nil
	}

	if _, err := s.commitExclusive(ctx, "", nil, false); err != nil {
		s.deps.Logger.Error("Failed to write back About normalization", zap.Strings("keys", flips), zap.Error(err))
	}
	flipped := make(map[string]bool, len(flips))
	for _, k := range flips {
		flipped[k] = true
	}
	for i := range records {
		if flipped[records[i].ID] {
			records[i].Status = models.AboutStatusInactive
		}
	}
	return records, nil
}

// commitExclusive merges (or, with replace, overwrites) record into the
// preferred key and deactivates every other active record in one transaction.
func (s *aboutService) commitExclusive(ctx context.Context, preferred string, record map[string]interface{}, replace bool) ([]string, error) {
	var flipped []string
	err := s.deps.DB.Transaction(ctx, CollectionAbout, exclusiveActiveTx(preferred, record, replace, &flipped))
	if err != nil {
		return nil, fmt.Errorf("enforcing single active about record: %w", err)
	}
	for _, k := range flipped {
		s.deps.recordChange(ctx, CollectionAbout, events.ActionUpdated, k,
			map[string]interface{}{"status": models.AboutStatusInactive})
	}
	return flipped, nil
}

func (s *aboutService) List(ctx context.Context, page PageRequest) (*Page[models.About], error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Paginate(records, page), nil
}

func (s *aboutService) Get(ctx context.Context, id string) (*models.About, error) {
	return s.store.get(ctx, id)
}

func (s *aboutService) Active(ctx context.Context) (*models.About, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Status == models.AboutStatusActive {
			return &records[i], nil
		}
	}
	return nil, ErrNoActiveAbout
}

func (s *aboutService) prepare(ctx context.Context, a *models.About) error {
	a.SocialMediaLinks = nonNil(a.SocialMediaLinks)
	if err := validation.Struct(a); err != nil {
		return err
	}
	img, err := s.deps.offload(ctx, a.Image)
	if err != nil {
		return err
	}
	a.Image = img
	return nil
}

func (s *aboutService) Create(ctx context.Context, about models.About) (*models.About, error) {
	if about.Status == "" {
		about.Status = models.AboutStatusActive
	}
	about.UpdatedAt = s.deps.timestamp()
	if err := s.prepare(ctx, &about); err != nil {
		return nil, err
	}

	created, err := s.store.create(ctx, about)
	if err != nil {
		return nil, err
	}
	if created.Status == models.AboutStatusActive {
		if _, err := s.commitExclusive(ctx, created.ID, nil, false); err != nil {
			return nil, err
		}
	}
	return created, nil
}

func (s *aboutService) Patch(ctx context.Context, id string, patch models.AboutPatch) (*models.About, error) {
	current, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *current
	fields := map[string]interface{}{}
	setString(fields, "name", &merged.Name, patch.Name)
	setString(fields, "profession", &merged.Profession, patch.Profession)
	setString(fields, "description", &merged.Description, patch.Description)
	setString(fields, "status", &merged.Status, patch.Status)
	setString(fields, "image", &merged.Image, patch.Image)
	setStrings(fields, "socialMediaLinks", &merged.SocialMediaLinks, patch.SocialMediaLinks)

	if err := s.prepare(ctx, &merged); err != nil {
		return nil, err
	}
	if _, ok := fields["image"]; ok {
		fields["image"] = merged.Image
	}
	merged.UpdatedAt = s.deps.timestamp()
	fields["updatedAt"] = merged.UpdatedAt

	if merged.Status != models.AboutStatusActive {
		return s.store.patch(ctx, id, merged, fields)
	}
	if _, err := s.commitExclusive(ctx, id, fields, false); err != nil {
		return nil, err
	}
	s.deps.recordChange(ctx, CollectionAbout, events.ActionUpdated, id, fields)
	return &merged, nil
}

func (s *aboutService) Replace(ctx context.Context, id string, about models.About) (*models.About, error) {
	if _, err := s.store.get(ctx, id); err != nil {
		return nil, err
	}
	about.UpdatedAt = s.deps.timestamp()
	if err := s.prepare(ctx, &about); err != nil {
		return nil, err
	}

	if about.Status != models.AboutStatusActive {
		return s.store.replace(ctx, id, about)
	}
	about.ID = ""
	fields, err := toFields(about)
	if err != nil {
		return nil, fmt.Errorf("encoding about record: %w", err)
	}
	if _, err := s.commitExclusive(ctx, id, fields, true); err != nil {
		return nil, err
	}
	about.ID = id
	s.deps.recordChange(ctx, CollectionAbout, events.ActionReplaced, id, about)
	return &about, nil
}

func (s *aboutService) Delete(ctx context.Context, id string) error {
	return s.store.remove(ctx, id)
}

func (s *aboutService) Normalize(ctx context.Context) ([]string, error) {
	return s.commitExclusive(ctx, "", nil, false)
}
