package core

import (
	"encoding/json"
	"sort"

	"github.com/example/portfolio-admin/internal/db"
	"github.com/example/portfolio-admin/internal/models"
)

// StatusEntry is the key and status of one About record.
type StatusEntry struct {
	Key    string
	Status string
}

// NormalizeActive returns the keys of active records that must be switched
// to unActive so that at most one record stays active. entries must be in
// key order. The preferred record wins when it is active; otherwise the first
// active record in key order (the oldest, for push keys) wins.
func NormalizeActive(entries []StatusEntry, preferredKey string) []string {
	winner := ""
	if preferredKey != "" {
		for _, e := range entries {
			if e.Key == preferredKey && e.Status == models.AboutStatusActive {
				winner = preferredKey
				break
			}
		}
	}

	var flips []string
	for _, e := range entries {
		if e.Status != models.AboutStatusActive {
			continue
		}
		if winner == "" {
			winner = e.Key
		}
		if e.Key != winner {
			flips = append(flips, e.Key)
		}
	}
	return flips
}

// exclusiveActiveTx builds the transaction body that merges record into the
// child preferredKey (when record is non-nil) and deactivates every other
// active child. The keys it deactivated are stored in *flipped.
func exclusiveActiveTx(preferredKey string, record map[string]interface{}, replace bool, flipped *[]string) db.TxFunc {
	return func(current json.RawMessage) (interface{}, error) {
		*flipped = nil
		node := map[string]json.RawMessage{}
		if !db.IsNull(current) {
			if err := json.Unmarshal(current, &node); err != nil {
				return nil, err
			}
		}

		if preferredKey != "" {
			existing, ok := node[preferredKey]
			if !ok {
				return nil, ErrAboutNotFound
			}
			if record != nil {
				child := map[string]interface{}{}
				if !replace {
					_ = json.Unmarshal(existing, &child)
				}
				for k, v := range record {
					if v == nil {
						delete(child, k)
					} else {
						child[k] = v
					}
				}
				b, err := json.Marshal(child)
				if err != nil {
					return nil, err
				}
				node[preferredKey] = b
			}
		}

		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]StatusEntry, 0, len(keys))
		for _, k := range keys {
			var s struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(node[k], &s); err != nil {
				continue
			}
			entries = append(entries, StatusEntry{Key: k, Status: s.Status})
		}

		for _, k := range NormalizeActive(entries, preferredKey) {
			child := map[string]interface{}{}
			if err := json.Unmarshal(node[k], &child); err != nil {
				continue
			}
			child["status"] = models.AboutStatusInactive
			b, err := json.Marshal(child)
			if err != nil {
				return nil, err
			}
			node[k] = b
			*flipped = append(*flipped, k)
		}
		return node, nil
	}
}
