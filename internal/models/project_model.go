package models

// Project statuses use the same spelling as About.
const (
	ProjectStatusActive   = "active"
	ProjectStatusInactive = "unActive"
)

// Project is a portfolio project stored under "projects".
type Project struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title" validate:"notblank" label:"Title"`
	Description string   `json:"description" validate:"notblank" label:"Description"`
	Github      string   `json:"github" validate:"omitempty,url" label:"GitHub"`
	Live        string   `json:"live" validate:"omitempty,url" label:"Live"`
	Images      []string `json:"images" validate:"dive,url,imgdata,imgsize" label:"Image"`
	TechStack   []string `json:"techStack" validate:"min=1,dive,notblank" label:"Technology"`
	Views       int      `json:"views" validate:"min=0" label:"Views"`
	Status      string   `json:"status" validate:"notblank,oneof=active unActive" label:"Status"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// ProjectPatch carries the fields of a partial Project update. Views are
// only changed through the view counter.
type ProjectPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Github      *string   `json:"github"`
	Live        *string   `json:"live"`
	Images      *[]string `json:"images"`
	TechStack   *[]string `json:"techStack"`
	Status      *string   `json:"status"`
}
