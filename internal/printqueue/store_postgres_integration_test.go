//go:build integration

package printqueue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/john-holland/heycern-m87hey/internal/printqueue"
	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
	"github.com/john-holland/heycern-m87hey/pkg/testutil/containers"
)

type PrintJobStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *printqueue.PostgresStore
}

func TestPrintJobStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PrintJobStoreSuite))
}

func (s *PrintJobStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = printqueue.NewPostgres(s.postgres.DB)
}

func (s *PrintJobStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "print_jobs")
	s.Require().NoError(err)
}

func newJob(imagePath string, queuedAt time.Time) printqueue.Job {
	return printqueue.Job{
		ID:         domain.NewPrintJobID(),
		ImagePath:  imagePath,
		Status:     printqueue.StatusQueued,
		PaperSize:  "A3",
		ColorMode:  "color",
		Resolution: "1200dpi",
		QueuedAt:   queuedAt,
	}
}

func (s *PrintJobStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	job := newJob("m87_lensed_earth_cretaceous.png", time.Now().UTC())

	s.Require().NoError(s.store.Save(ctx, job))

	jobs, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Equal(job.ID, jobs[0].ID)
	s.Equal(job.ImagePath, jobs[0].ImagePath)
	s.Equal(printqueue.StatusQueued, jobs[0].Status)
	s.Equal("A3", jobs[0].PaperSize)
	s.Equal("color", jobs[0].ColorMode)
	s.Equal("1200dpi", jobs[0].Resolution)
	s.WithinDuration(job.QueuedAt, jobs[0].QueuedAt, time.Second)
	s.Nil(jobs[0].PrintedAt)
}

func (s *PrintJobStoreSuite) TestSaveUpsertsPrintedState() {
	ctx := context.Background()
	job := newJob("m87_lensed_earth_triassic.png", time.Now().UTC())
	s.Require().NoError(s.store.Save(ctx, job))

	printed := job.QueuedAt.Add(2 * time.Second)
	job.Status = printqueue.StatusPrinted
	job.PrintedAt = &printed
	s.Require().NoError(s.store.Save(ctx, job))

	jobs, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Equal(printqueue.StatusPrinted, jobs[0].Status)
	s.Require().NotNil(jobs[0].PrintedAt)
	s.WithinDuration(printed, *jobs[0].PrintedAt, time.Second)
}

func (s *PrintJobStoreSuite) TestListNewestFirst() {
	ctx := context.Background()
	now := time.Now().UTC()

	older := newJob("m87_lensed_earth_early_earth.png", now.Add(-time.Hour))
	newer := newJob("m87_lensed_earth_cretaceous.png", now)
	s.Require().NoError(s.store.Save(ctx, older))
	s.Require().NoError(s.store.Save(ctx, newer))

	jobs, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(jobs, 2)
	s.Equal(newer.ID, jobs[0].ID)
	s.Equal(older.ID, jobs[1].ID)
}
