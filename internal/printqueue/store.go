package printqueue

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
)

// JobStore persists the print history. Save upserts so a job can move from
// queued to printed under the same id.
type JobStore interface {
	Save(ctx context.Context, job Job) error
	List(ctx context.Context) ([]Job, error)
}

// MemoryStore keeps the history in memory, insertion-ordered.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[domain.PrintJobID]Job
	order []domain.PrintJobID
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[domain.PrintJobID]Job)}
}

func (s *MemoryStore) Save(_ context.Context, job Job) error {
	if job.ID.IsNil() {
		return fmt.Errorf("print job id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[job.ID]; !exists {
		s.order = append(s.order, job.ID)
	}
	s.items[job.ID] = cloneJob(job)
	return nil
}

// List returns the history, newest queued first.
func (s *MemoryStore) List(_ context.Context) ([]Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]Job, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		jobs = append(jobs, cloneJob(s.items[s.order[i]]))
	}
	return jobs, nil
}

func cloneJob(job Job) Job {
	if job.PrintedAt != nil {
		at := *job.PrintedAt
		job.PrintedAt = &at
	}
	return job
}

// PostgresStore is the durable history on the print_jobs table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgresStore on db.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, job Job) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO print_jobs (id, image_path, status, paper_size, color_mode, resolution, queued_at, printed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			printed_at = EXCLUDED.printed_at`,
		uuid.UUID(job.ID), job.ImagePath, string(job.Status), job.PaperSize,
		job.ColorMode, job.Resolution, job.QueuedAt, nullableTime(job.PrintedAt),
	)
	if err != nil {
		return fmt.Errorf("save print job: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, image_path, status, paper_size, color_mode, resolution, queued_at, printed_at
		FROM print_jobs
		ORDER BY queued_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list print jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		var jobID uuid.UUID
		var status string
		var printedAt sql.NullTime
		err := rows.Scan(&jobID, &job.ImagePath, &status, &job.PaperSize,
			&job.ColorMode, &job.Resolution, &job.QueuedAt, &printedAt)
		if err != nil {
			return nil, fmt.Errorf("scan print job: %w", err)
		}
		job.ID = domain.PrintJobID(jobID)
		job.Status = Status(status)
		if printedAt.Valid {
			at := printedAt.Time
			job.PrintedAt = &at
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list print jobs: %w", err)
	}
	return jobs, nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
