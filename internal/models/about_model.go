package models

// About statuses. At most one About record is active at a time.
const (
	AboutStatusActive   = "active"
	AboutStatusInactive = "unActive"
)

// About is a portfolio profile stored under "portfolios".
type About struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name" validate:"notblank" label:"Name"`
	Profession       string   `json:"profession" validate:"notblank" label:"Profession"`
	Description      string   `json:"description" validate:"notblank" label:"Description"`
	Status           string   `json:"status" validate:"notblank,oneof=active unActive" label:"Status"`
	Image            string   `json:"image,omitempty" validate:"omitempty,url,imgdata,imgsize" label:"Image"`
	SocialMediaLinks []string `json:"socialMediaLinks" validate:"dive,url" label:"Social media"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

// AboutPatch carries the fields of a partial About update.
type AboutPatch struct {
	Name             *string   `json:"name"`
	Profession       *string   `json:"profession"`
	Description      *string   `json:"description"`
	Status           *string   `json:"status"`
	Image            *string   `json:"image"`
	SocialMediaLinks *[]string `json:"socialMediaLinks"`
}
