package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/portfolio-admin/internal/db"
	"github.com/example/portfolio-admin/internal/models"
)

type overviewService struct {
	deps ServiceDeps
}

// NewOverviewService creates the dashboard summary service.
func NewOverviewService(deps ServiceDeps) OverviewService {
	return &overviewService{deps: deps.withDefaults()}
}

func (s *overviewService) Overview(ctx context.Context) (*models.Overview, error) {
	out := &models.Overview{
		Collections: make(map[string]models.CollectionStats, len(ContentCollections)),
		GeneratedAt: s.deps.timestamp(),
	}
	for _, name := range ContentCollections {
		raw, err := s.deps.DB.GetRaw(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		var children map[string]json.RawMessage
		if !db.IsNull(raw) {
			if err := json.Unmarshal(raw, &children); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", name, err)
			}
		}

		var stats models.CollectionStats
		for _, child := range children {
			var rec struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(child, &rec); err != nil {
				continue
			}
			stats.Total++
			switch {
			case name == CollectionContact:
				if rec.Status != models.ContactStatusRead {
					out.UnreadMessages++
				}
			case rec.Status == models.StatusActive:
				stats.Active++
			case rec.Status == "" && name == CollectionProjects:
				stats.Active++
			}
		}
		out.Collections[name] = stats
	}
	return out, nil
}
