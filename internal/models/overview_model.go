package models

// CollectionStats summarises one content collection.
type CollectionStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// Overview is the dashboard home summary.
type Overview struct {
	Collections    map[string]CollectionStats `json:"collections"`
	UnreadMessages int                        `json:"unreadMessages"`
	GeneratedAt    string                     `json:"generatedAt"`
}
