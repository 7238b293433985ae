package core

import (
	"context"
	"fmt"
	"time"

	"github.com/example/portfolio-admin/internal/db"
	"github.com/example/portfolio-admin/internal/models"
)

// auditService implements the AuditService interface on the content database.
type auditService struct {
	logs *db.Collection[models.AuditLog]
	now  func() time.Time
}

// NewAuditService creates a new AuditService that stores entries under
// "auditLogs".
func NewAuditService(d db.Database) AuditService {
	return &auditService{
		logs: db.NewCollection[models.AuditLog](d, CollectionAuditLogs),
		now:  time.Now,
	}
}

// CreateAuditLog creates a new audit log entry, stamping it when the caller
// did not.
func (s *auditService) CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error {
	logEntry.ID = ""
	if logEntry.Timestamp == "" {
		logEntry.Timestamp = s.now().UTC().Format(isoMillis)
	}
	if _, err := s.logs.Push(ctx, logEntry); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// List returns audit entries newest first.
func (s *auditService) List(ctx context.Context, page PageRequest) (*Page[models.AuditLog], error) {
	entries, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}
	out := make([]models.AuditLog, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i].Value
		entry.ID = entries[i].Key
		out = append(out, entry)
	}
	return Paginate(out, page), nil
}
