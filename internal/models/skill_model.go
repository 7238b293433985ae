package models

const (
	MinSkillLevel = 0
	MaxSkillLevel = 100
)

// Skill is a named proficiency stored under "skills".
type Skill struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name" validate:"notblank" label:"Name"`
	Level     int    `json:"level" validate:"min=0,max=100" label:"Level"`
	Status    string `json:"status" validate:"notblank,oneof=active inactive" label:"Status"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// SkillPatch carries the fields of a partial Skill update.
type SkillPatch struct {
	Name   *string `json:"name"`
	Level  *int    `json:"level"`
	Status *string `json:"status"`
}
