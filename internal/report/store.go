package report

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

// Store keeps generated reports addressable for later retrieval.
type Store interface {
	Save(ctx context.Context, report Report) error
	Get(ctx context.Context, reportID domain.ReportID) (Report, error)
}

// MemoryStore holds reports for the process lifetime. Reports are regenerable
// from stored data, so nothing longer-lived is needed.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[domain.ReportID]Report
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[domain.ReportID]Report)}
}

func (s *MemoryStore) Save(_ context.Context, report Report) error {
	if report.ID.IsNil() {
		return fmt.Errorf("report id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[report.ID] = report
	return nil
}

func (s *MemoryStore) Get(_ context.Context, reportID domain.ReportID) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.items[reportID]
	if !ok {
		return Report{}, fmt.Errorf("report %s: %w", reportID, sentinel.ErrNotFound)
	}
	return report, nil
}
