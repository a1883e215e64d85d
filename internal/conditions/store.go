package conditions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

// SnapshotStore persists fetched snapshots and serves the newest one per
// source.
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
	Latest(ctx context.Context, source Source) (*Snapshot, error)
}

// MemoryStore keeps the newest snapshot per source in memory. It is the
// default when Postgres is not configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[Source]*Snapshot
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[Source]*Snapshot)}
}

func (s *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[snap.Source] = cloneSnapshot(snap)
	return nil
}

func (s *MemoryStore) Latest(_ context.Context, source Source) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.items[source]
	if !ok {
		return nil, fmt.Errorf("conditions snapshot for %s: %w", source, sentinel.ErrNotFound)
	}
	return cloneSnapshot(snap), nil
}

func cloneSnapshot(snap *Snapshot) *Snapshot {
	cp := *snap
	cp.Payload = append(json.RawMessage(nil), snap.Payload...)
	return &cp
}

// PostgresStore persists snapshots in the condition_snapshots table. Rows
// accumulate as history; Latest reads the newest per source.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed snapshot store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO condition_snapshots (id, source, summary, payload, fetched_at)
		VALUES ($1, $2, $3, $4, $5)`,
		snap.ID, string(snap.Source), snap.Summary, []byte(snap.Payload), snap.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("save conditions snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Latest(ctx context.Context, source Source) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, summary, payload, fetched_at
		FROM condition_snapshots
		WHERE source = $1
		ORDER BY fetched_at DESC
		LIMIT 1`,
		string(source),
	)

	var snap Snapshot
	var payload []byte
	err := row.Scan(&snap.ID, &snap.Source, &snap.Summary, &payload, &snap.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("conditions snapshot for %s: %w", source, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load conditions snapshot: %w", err)
	}
	snap.Payload = payload
	return &snap, nil
}
