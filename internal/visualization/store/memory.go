// Package store persists visualization artifacts. MemoryStore backs
// database-less development and tests; PostgresStore is the store of record.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/john-holland/heycern-m87hey/internal/visualization/models"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

// defaultListLimit bounds listings when the caller does not give a limit.
const defaultListLimit = 50

// MemoryStore keeps artifacts in memory, insertion-ordered.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[domain.VisualizationID]models.Artifact
	order []domain.VisualizationID
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[domain.VisualizationID]models.Artifact)}
}

func (s *MemoryStore) Save(_ context.Context, artifact models.Artifact) error {
	if artifact.ID.IsNil() {
		return fmt.Errorf("artifact id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[artifact.ID]; !exists {
		s.order = append(s.order, artifact.ID)
	}
	s.items[artifact.ID] = cloneArtifact(artifact)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id domain.VisualizationID) (models.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	artifact, ok := s.items[id]
	if !ok {
		return models.Artifact{}, fmt.Errorf("visualization %s: %w", id, sentinel.ErrNotFound)
	}
	return cloneArtifact(artifact), nil
}

// List returns metadata-only artifacts, newest insertion first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]models.Artifact, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Artifact, 0, min(limit, len(s.order)))
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.items[s.order[i]].WithoutImage())
	}
	return out, nil
}

func cloneArtifact(a models.Artifact) models.Artifact {
	a.ImagePNG = append([]byte(nil), a.ImagePNG...)
	return a
}
