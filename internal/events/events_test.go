package events

import (
	"context"
	"testing"
)

func TestTopic(t *testing.T) {
	if got := Topic("projects", ActionCreated); got != "portfolio.projects.created" {
		t.Errorf("Topic = %q", got)
	}
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	if err := p.Publish(context.Background(), Topic("skills", ActionDeleted), ChangeEvent{ID: "x"}); err != nil {
		t.Errorf("Publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
