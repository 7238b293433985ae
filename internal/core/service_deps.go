package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/db"
	"github.com/example/portfolio-admin/internal/events"
	"github.com/example/portfolio-admin/internal/models"
)

// ServiceDeps are the collaborators shared by the content services. Only DB
// is required; the others fall back to no-ops.
type ServiceDeps struct {
	DB        db.Database
	Audit     AuditService
	Publisher events.Publisher
	Notifier  ChangeNotifier
	Images    ImageStore
	Logger    *zap.Logger
	Now       func() time.Time
}

type noopNotifier struct{}

func (noopNotifier) Touch(string) {}

func (d ServiceDeps) withDefaults() ServiceDeps {
	if d.Publisher == nil {
		d.Publisher = events.NoopPublisher{}
	}
	if d.Notifier == nil {
		d.Notifier = noopNotifier{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// timestamp formats the current time the way browsers serialize dates.
func (d ServiceDeps) timestamp() string {
	return d.Now().UTC().Format(isoMillis)
}

// recordChange runs the side effects of a successful write. None of them can
// fail the write: problems are logged.
func (d ServiceDeps) recordChange(ctx context.Context, collection, action, id string, record interface{}) {
	actor := ActorFromContext(ctx)

	if d.Audit != nil {
		entry := models.AuditLog{
			UserID:     actor,
			Action:     strings.ToUpper(action),
			TargetType: collection,
			TargetID:   id,
		}
		if err := d.Audit.CreateAuditLog(ctx, entry); err != nil {
			d.Logger.Warn("Failed to write audit log",
				zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		}
	}

	d.publish(ctx, collection, action, id, record)
	d.Notifier.Touch(collection)
}

// publish sends a change event. Broker failures are logged, never returned.
func (d ServiceDeps) publish(ctx context.Context, collection, action, id string, record interface{}) {
	event := events.ChangeEvent{
		Collection: collection,
		ID:         id,
		Action:     action,
		Actor:      ActorFromContext(ctx),
		Record:     record,
		Timestamp:  d.Now().UTC(),
	}
	if err := d.Publisher.Publish(ctx, events.Topic(collection, action), event); err != nil {
		d.Logger.Warn("Failed to publish change event",
			zap.String("collection", collection), zap.String("id", id), zap.Error(err))
	}
}

// offload replaces an inline image with its external URL when an ImageStore
// is configured.
func (d ServiceDeps) offload(ctx context.Context, ref string) (string, error) {
	if d.Images == nil || ref == "" {
		return ref, nil
	}
	out, err := d.Images.Offload(ctx, ref)
	if err != nil {
		return "", errors.Join(ErrImageUpload, err)
	}
	return out, nil
}

func (d ServiceDeps) offloadAll(ctx context.Context, refs []string) ([]string, error) {
	if d.Images == nil {
		return refs, nil
	}
	out := make([]string, len(refs))
	for i, ref := range refs {
		var err error
		if out[i], err = d.offload(ctx, ref); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// validKey reports whether id can be used as a single database path segment.
func validKey(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/.#$[]")
}

// toFields converts a record into the map written by multi-field updates.
func toFields(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func setString(fields map[string]interface{}, key string, dst, src *string) {
	if src != nil {
		*dst = *src
		fields[key] = *src
	}
}

func setStrings(fields map[string]interface{}, key string, dst, src *[]string) {
	if src != nil {
		v := *src
		if v == nil {
			v = []string{}
		}
		*dst = v
		fields[key] = v
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
