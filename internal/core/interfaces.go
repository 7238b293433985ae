package core

import (
	"context"

	"github.com/example/portfolio-admin/internal/models"
)

// Collection names in the content database.
const (
	CollectionAbout     = "portfolios"
	CollectionEducation = "education"
	CollectionSkills    = "skills"
	CollectionProjects  = "projects"
	CollectionContact   = "contact"
	CollectionAuditLogs = "auditLogs"
)

// ContentCollections lists the collections the dashboard edits and streams.
var ContentCollections = []string{
	CollectionAbout,
	CollectionEducation,
	CollectionSkills,
	CollectionProjects,
	CollectionContact,
}

// IsContentCollection reports whether name is one of ContentCollections.
func IsContentCollection(name string) bool {
	for _, c := range ContentCollections {
		if c == name {
			return true
		}
	}
	return false
}

// AboutService manages portfolio profiles and keeps at most one of them active.
type AboutService interface {
	List(ctx context.Context, page PageRequest) (*Page[models.About], error)
	Get(ctx context.Context, id string) (*models.About, error)
	// Active returns the single active profile shown on the public site.
	Active(ctx context.Context) (*models.About, error)
	Create(ctx context.Context, about models.About) (*models.About, error)
	Patch(ctx context.Context, id string, patch models.AboutPatch) (*models.About, error)
	Replace(ctx context.Context, id string, about models.About) (*models.About, error)
	Delete(ctx context.Context, id string) error
	// Normalize repairs the collection and returns the keys it deactivated.
	Normalize(ctx context.Context) ([]string, error)
}

// EducationService manages education timeline entries.
type EducationService interface {
	List(ctx context.Context, page PageRequest) (*Page[models.Education], error)
	Get(ctx context.Context, id string) (*models.Education, error)
	Create(ctx context.Context, edu models.Education) (*models.Education, error)
	Patch(ctx context.Context, id string, patch models.EducationPatch) (*models.Education, error)
	Replace(ctx context.Context, id string, edu models.Education) (*models.Education, error)
	Delete(ctx context.Context, id string) error
}

// SkillService manages skills. Levels are clamped to [0, 100].
type SkillService interface {
	List(ctx context.Context, page PageRequest) (*Page[models.Skill], error)
	Get(ctx context.Context, id string) (*models.Skill, error)
	Create(ctx context.Context, skill models.Skill) (*models.Skill, error)
	Patch(ctx context.Context, id string, patch models.SkillPatch) (*models.Skill, error)
	Replace(ctx context.Context, id string, skill models.Skill) (*models.Skill, error)
	Delete(ctx context.Context, id string) error
}

// ProjectService manages portfolio projects.
type ProjectService interface {
	List(ctx context.Context, page PageRequest) (*Page[models.Project], error)
	// ListActive returns the projects shown on the public site.
	ListActive(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, project models.Project) (*models.Project, error)
	Patch(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
	Replace(ctx context.Context, id string, project models.Project) (*models.Project, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*models.Project, error)
	// RecordView increments the view counter and returns the new count.
	RecordView(ctx context.Context, id string) (int, error)
}

// ContactService manages contact form messages.
type ContactService interface {
	List(ctx context.Context, page PageRequest) (*Page[models.Contact], error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	// Submit stores a message from the public contact form.
	Submit(ctx context.Context, msg models.Contact) (*models.Contact, error)
	SetStatus(ctx context.Context, id, status string) (*models.Contact, error)
	MarkRead(ctx context.Context, id string) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
}

// OverviewService builds the dashboard home summary.
type OverviewService interface {
	Overview(ctx context.Context) (*models.Overview, error)
}

// AuditService defines the interface for audit logging operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
	List(ctx context.Context, page PageRequest) (*Page[models.AuditLog], error)
}

// ChangeNotifier is told about every successful write so live subscribers
// see the new state without waiting for the next poll.
type ChangeNotifier interface {
	Touch(collection string)
}

// ImageStore moves inline images to external storage and returns the
// reference to store instead.
type ImageStore interface {
	Offload(ctx context.Context, ref string) (string, error)
}

// ContactNotifier is told about new contact form messages.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg models.Contact) error
}
