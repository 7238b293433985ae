package validation

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/example/portfolio-admin/internal/media"
	"github.com/example/portfolio-admin/internal/models"
)

func validEducation() models.Education {
	return models.Education{
		Title:       "B.Sc.",
		Institution: "MIT",
		Duration:    "2015 - 2019",
		Description: "Computer Science",
		Position:    models.PositionLeft,
		Status:      models.StatusActive,
	}
}

func TestStructEducation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *models.Education)
		want   map[string]string
	}{
		{"valid", func(*models.Education) {}, nil},
		{"empty institution", func(e *models.Education) { e.Institution = "" }, map[string]string{"institution": "Institution is required"}},
		{"whitespace title", func(e *models.Education) { e.Title = "   " }, map[string]string{"title": "Title is required"}},
		{"bad position", func(e *models.Education) { e.Position = "center" }, map[string]string{"position": "Position must be one of: left, right"}},
		{"missing status", func(e *models.Education) { e.Status = "" }, map[string]string{"status": "Status is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEducation()
			tt.mutate(&e)
			err := Struct(e)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *Errors
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Errors, got %v", err)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Error("errors.Is(err, ErrInvalid) = false")
			}
			for field, msg := range tt.want {
				if verr.Fields[field] != msg {
					t.Errorf("Fields[%q] = %q, want %q", field, verr.Fields[field], msg)
				}
			}
		})
	}
}

func TestStructURLs(t *testing.T) {
	about := models.About{
		Name:             "Ada",
		Profession:       "Engineer",
		Description:      "Builds things",
		Status:           models.AboutStatusActive,
		Image:            "not-a-url",
		SocialMediaLinks: []string{"https://github.com/ada", "nope"},
	}
	var verr *Errors
	if !errors.As(Struct(about), &verr) {
		t.Fatal("expected validation errors")
	}
	if got := verr.Fields["image"]; got != "Invalid image URL" {
		t.Errorf("image = %q", got)
	}
	if got := verr.Fields["socialMediaLinks"]; got != "One or more social media URLs are invalid" {
		t.Errorf("socialMediaLinks = %q", got)
	}

	about.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))
	about.SocialMediaLinks = nil
	if err := Struct(about); err != nil {
		t.Errorf("data URL image should be accepted: %v", err)
	}
}

func TestStructProject(t *testing.T) {
	p := models.Project{
		Title:       "Site",
		Description: "Portfolio",
		Status:      models.ProjectStatusActive,
	}
	var verr *Errors
	if !errors.As(Struct(p), &verr) {
		t.Fatal("expected validation errors")
	}
	if got := verr.Fields["techStack"]; got != "At least one technology is required" {
		t.Errorf("techStack = %q", got)
	}

	p.TechStack = []string{"Go"}
	p.Github = "github.com/ada/site"
	if !errors.As(Struct(p), &verr) || verr.Fields["github"] != "Invalid github URL" {
		t.Errorf("github error = %v", verr)
	}

	p.Github = ""
	p.Images = []string{"data:image/png;base64,@@@"}
	if !errors.As(Struct(p), &verr) || verr.Fields["images"] != "One or more images could not be decoded" {
		t.Errorf("images error = %v", verr)
	}

	big := "data:image/png;base64," + strings.Repeat("A", (media.MaxImageBytes/3+10)*4)
	p.Images = []string{big}
	if !errors.As(Struct(p), &verr) || verr.Fields["images"] != "One or more images exceed the 5 MB limit" {
		t.Errorf("images error = %v", verr)
	}
}

func TestStructContactEmail(t *testing.T) {
	c := models.Contact{FirstName: "Ada", Email: "ada@", Message: "Hi"}
	var verr *Errors
	if !errors.As(Struct(c), &verr) || verr.Fields["email"] != "Invalid email address" {
		t.Errorf("email error = %v", verr)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ in, want int }{{-5, 0}, {0, 0}, {55, 55}, {100, 100}, {150, 100}}
	for _, tt := range tests {
		if got := Clamp(tt.in, 0, 100); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
