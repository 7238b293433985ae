package models

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	PositionLeft  = "left"
	PositionRight = "right"
)

// Education is a timeline entry stored under "education".
type Education struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title" validate:"notblank" label:"Title"`
	Institution string `json:"institution" validate:"notblank" label:"Institution"`
	Duration    string `json:"duration" validate:"notblank" label:"Duration"`
	Description string `json:"description" validate:"notblank" label:"Description"`
	// Position is the side of the timeline the entry is drawn on.
	Position  string `json:"position" validate:"notblank,oneof=left right" label:"Position"`
	Status    string `json:"status" validate:"notblank,oneof=active inactive" label:"Status"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// EducationPatch carries the fields of a partial Education update.
type EducationPatch struct {
	Title       *string `json:"title"`
	Institution *string `json:"institution"`
	Duration    *string `json:"duration"`
	Description *string `json:"description"`
	Position    *string `json:"position"`
	Status      *string `json:"status"`
}
