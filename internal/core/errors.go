package core

import "errors"

var (
	ErrAboutNotFound     = errors.New("about record not found")
	ErrNoActiveAbout     = errors.New("no active about record")
	ErrEducationNotFound = errors.New("education record not found")
	ErrSkillNotFound     = errors.New("skill not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrContactNotFound   = errors.New("contact message not found")
	ErrInvalidCollection = errors.New("unknown collection")

	// ErrImageUpload wraps failures of the external image store.
	ErrImageUpload = errors.New("image upload failed")
)
