package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/planforge/internal/domain"
)

// healthCollection is read by Ping; it does not need to exist.
const healthCollection = "_health"

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore-backed domain.DocumentStore.
// Uses the project passed (PLANFORGE_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Upsert merges fields into the document, creating it when missing.
func (s *Store) Upsert(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("%w: firestore upsert %s/%s: %w", domain.ErrPersistence, collection, id, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
		}
		return nil, fmt.Errorf("%w: firestore get %s/%s: %w", domain.ErrPersistence, collection, id, err)
	}

	return &domain.Document{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

// ListByField returns documents whose field equals value, most recently
// updated first.
func (s *Store) ListByField(ctx context.Context, collection, field string, value any, limit int) ([]*domain.Document, error) {
	q := s.client.Collection(collection).Where(field, "==", value).OrderBy("updated_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []*domain.Document{}
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("%w: firestore list %s by %s: %w", domain.ErrPersistence, collection, field, err)
		}
		out = append(out, &domain.Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	return out, nil
}

// Ping issues a one-document read to check connectivity and credentials.
func (s *Store) Ping(ctx context.Context) error {
	iter := s.client.Collection(healthCollection).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("%w: firestore ping: %w", domain.ErrPersistence, err)
	}
	return nil
}
