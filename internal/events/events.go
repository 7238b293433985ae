// Package events publishes content change notifications to a message broker
// so other services (site rebuilds, search indexers) can react to edits.
package events

import (
	"context"
	"time"
)

// Change actions.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionReplaced = "replaced"
	ActionDeleted  = "deleted"
)

// ChangeEvent describes one write to a content collection.
type ChangeEvent struct {
	Collection string      `json:"collection"`
	ID         string      `json:"id"`
	Action     string      `json:"action"`
	Actor      string      `json:"actor"`
	Record     interface{} `json:"record,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Topic returns the subject/routing key for a change, e.g.
// "portfolio.projects.created".
func Topic(collection, action string) string {
	return "portfolio." + collection + "." + action
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() error                               { return nil }
