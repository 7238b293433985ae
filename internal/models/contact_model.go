package models

const (
	ContactStatusRead   = "read"
	ContactStatusUnread = "unread"
)

// Contact is a message left through the public contact form, stored under
// "contact". A missing status means unread.
type Contact struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName" validate:"notblank" label:"First name"`
	LastName  string `json:"lastName" label:"Last name"`
	Email     string `json:"email" validate:"notblank,email" label:"Email"`
	Subject   string `json:"subject" label:"Subject"`
	Message   string `json:"message" validate:"notblank" label:"Message"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=read unread" label:"Status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ContactStatusRequest changes the read state of a message.
type ContactStatusRequest struct {
	Status string `json:"status" validate:"notblank,oneof=read unread" label:"Status"`
}
