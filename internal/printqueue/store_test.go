package printqueue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
)

func queuedJob(imagePath string, queuedAt time.Time) Job {
	return Job{
		ID:         domain.NewPrintJobID(),
		ImagePath:  imagePath,
		Status:     StatusQueued,
		PaperSize:  "A3",
		ColorMode:  "color",
		Resolution: "1200dpi",
		QueuedAt:   queuedAt,
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	base := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	first := queuedJob("m87_lensed_earth_early_earth.png", base)
	second := queuedJob("m87_lensed_earth_triassic.png", base.Add(time.Minute))
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID)
	assert.Equal(t, first.ID, jobs[1].ID)
}

func TestMemoryStoreSaveUpsertsStatus(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	job := queuedJob("m87_lensed_earth_cretaceous.png", time.Now().UTC())
	require.NoError(t, store.Save(ctx, job))

	printed := job.QueuedAt.Add(time.Second)
	job.Status = StatusPrinted
	job.PrintedAt = &printed
	require.NoError(t, store.Save(ctx, job))

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, StatusPrinted, jobs[0].Status)
	require.NotNil(t, jobs[0].PrintedAt)
	assert.Equal(t, printed, *jobs[0].PrintedAt)
}

func TestMemoryStoreRejectsMissingID(t *testing.T) {
	store := NewMemoryStore()
	err := store.Save(context.Background(), Job{ImagePath: "m87_lensed_earth_cambrian.png"})
	require.Error(t, err)
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	printed := time.Date(2026, 8, 21, 12, 0, 1, 0, time.UTC)
	job := queuedJob("m87_lensed_earth_cretaceous.png", printed.Add(-time.Second))
	job.Status = StatusPrinted
	job.PrintedAt = &printed
	require.NoError(t, store.Save(ctx, job))

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	*jobs[0].PrintedAt = jobs[0].PrintedAt.Add(time.Hour)

	fresh, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, printed, *fresh[0].PrintedAt)
}
