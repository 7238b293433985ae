package prefs

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const preferencesCollection = "preferences"

// FirestoreStore keeps one document per owner in the "preferences"
// collection. The client is owned by the caller.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(owner string) *firestore.DocumentRef {
	return s.client.Collection(preferencesCollection).Doc(owner)
}

func (s *FirestoreStore) Load(ctx context.Context, owner string) (map[string]string, error) {
	snap, err := s.doc(owner).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("loading preferences for %s: %w", owner, err)
	}
	out := make(map[string]string)
	for k, v := range snap.Data() {
		if str, ok := v.(string); ok {
			out[k] = str
		}
	}
	return out, nil
}

func (s *FirestoreStore) Save(ctx context.Context, owner string, values map[string]string) error {
	data := make(map[string]interface{}, len(values))
	for k, v := range values {
		data[k] = v
	}
	if _, err := s.doc(owner).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("saving preferences for %s: %w", owner, err)
	}
	return nil
}

func (s *FirestoreStore) Remove(ctx context.Context, owner string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	updates := make([]firestore.Update, len(keys))
	for i, k := range keys {
		// The keys contain dashes, so they go through FieldPath.
		updates[i] = firestore.Update{FieldPath: firestore.FieldPath{k}, Value: firestore.Delete}
	}
	_, err := s.doc(owner).Update(ctx, updates)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("removing preferences for %s: %w", owner, err)
	}
	return nil
}

func (s *FirestoreStore) Close() error { return nil }
