package models

// AuditLog represents an audit trail event, stored under "auditLogs".
type AuditLog struct {
	ID         string                 `json:"id,omitempty"`
	Timestamp  string                 `json:"timestamp"`
	UserID     string                 `json:"userId"`               // Who performed the action
	Action     string                 `json:"action"`               // e.g. "PROJECT_CREATE", "ABOUT_NORMALIZE"
	TargetType string                 `json:"targetType,omitempty"` // Collection name
	TargetID   string                 `json:"targetId,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}
