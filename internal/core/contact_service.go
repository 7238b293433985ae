package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/models"
	"github.com/example/portfolio-admin/internal/validation"
)

type contactService struct {
	store    *entityStore[models.Contact]
	deps     ServiceDeps
	notifier ContactNotifier
}

// NewContactService creates the Contact service. notifier may be nil.
func NewContactService(deps ServiceDeps, notifier ContactNotifier) ContactService {
	deps = deps.withDefaults()
	return &contactService{
		store: newEntityStore(deps, CollectionContact, ErrContactNotFound,
			func(c *models.Contact, id string) { c.ID = id },
			func(c *models.Contact) {
				if c.Status == "" {
					c.Status = models.ContactStatusUnread
				}
			}),
		deps:     deps,
		notifier: notifier,
	}
}

// List returns messages newest first.
func (s *contactService) List(ctx context.Context, page PageRequest) (*Page[models.Contact], error) {
	records, err := s.store.list(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return Paginate(records, page), nil
}

func (s *contactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	return s.store.get(ctx, id)
}

func (s *contactService) Submit(ctx context.Context, msg models.Contact) (*models.Contact, error) {
	msg.Status = models.ContactStatusUnread
	if err := validation.Struct(msg); err != nil {
		return nil, err
	}
	msg.CreatedAt = s.deps.timestamp()

	created, err := s.store.create(ctx, msg)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, *created); err != nil {
			s.deps.Logger.Warn("Failed to send contact notification", zap.String("id", created.ID), zap.Error(err))
		}
	}
	return created, nil
}

func (s *contactService) SetStatus(ctx context.Context, id, status string) (*models.Contact, error) {
	if err := validation.Struct(models.ContactStatusRequest{Status: status}); err != nil {
		return nil, err
	}
	current, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	current.Status = status
	return s.store.patch(ctx, id, *current, map[string]interface{}{"status": status})
}

func (s *contactService) MarkRead(ctx context.Context, id string) (*models.Contact, error) {
	return s.SetStatus(ctx, id, models.ContactStatusRead)
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	return s.store.remove(ctx, id)
}
