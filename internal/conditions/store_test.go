package conditions

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap := &Snapshot{
		ID:        uuid.New(),
		Source:    SourceNOAA,
		Summary:   "1 TAVG observations",
		Payload:   json.RawMessage(`{"results":[{"value":17.8}]}`),
		FetchedAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Latest(ctx, SourceNOAA)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.Summary, got.Summary)
	assert.JSONEq(t, string(snap.Payload), string(got.Payload))
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Latest(context.Background(), SourceNWS)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStoreNewerReplacesOlder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	older := &Snapshot{ID: uuid.New(), Source: SourceNWS, Summary: "old", FetchedAt: time.Now().Add(-time.Hour)}
	newer := &Snapshot{ID: uuid.New(), Source: SourceNWS, Summary: "new", FetchedAt: time.Now()}
	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))

	got, err := store.Latest(ctx, SourceNWS)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Summary)
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap := &Snapshot{
		ID:      uuid.New(),
		Source:  SourceNOAA,
		Payload: json.RawMessage(`{"a":1}`),
	}
	require.NoError(t, store.Save(ctx, snap))

	// Mutating the caller's copy or a returned copy must not touch the store.
	snap.Payload[1] = 'x'
	got, err := store.Latest(ctx, SourceNOAA)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got.Payload))

	got.Payload[1] = 'y'
	again, err := store.Latest(ctx, SourceNOAA)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(again.Payload))
}

func TestMemoryStoreRejectsNil(t *testing.T) {
	assert.Error(t, NewMemoryStore().Save(context.Background(), nil))
}
