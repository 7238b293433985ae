package api

// ErrorResponse is the body of every failed request. Fields carries the
// per-field messages of a validation failure.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ContactStatusRequest is the body of PATCH /contact/:id/status.
type ContactStatusRequest struct {
	Status string `json:"status"`
}

// ViewResponse is returned by the public view counter.
type ViewResponse struct {
	ID    string `json:"id"`
	Views int    `json:"views"`
}

// NormalizeResponse lists the About records that were deactivated.
type NormalizeResponse struct {
	Deactivated []string `json:"deactivated"`
}
