package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *MemoryStore {
	return NewMemoryStore(TableSpec{
		Name:         "test",
		PartitionKey: "guid",
		SortKey:      "s_key",
	})
}

func TestMemoryStorePutGet(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "A#1", "value": "x"}))

	rec, ok, err := s.Get(ctx, "p1", "A#1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", rec["value"])

	_, ok, err = s.Get(ctx, "p1", "A#2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStorePutOverwrites(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "A#1", "value": "x"}))
	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "A#1", "value": "y"}))

	rec, ok, err := s.Get(ctx, "p1", "A#1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "y", rec["value"])
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "A#1", "value": "x"}))

	rec, _, err := s.Get(ctx, "p1", "A#1")
	require.NoError(t, err)
	rec["value"] = "mutated"

	again, _, err := s.Get(ctx, "p1", "A#1")
	require.NoError(t, err)
	assert.Equal(t, "x", again["value"])
}

func TestMemoryStoreQueryPrefix(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "USER#b"}))
	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "USER#a"}))
	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "PORTAL#1"}))
	require.NoError(t, s.Put(ctx, Record{"guid": "p2", "s_key": "USER#c"}))

	recs, err := s.Query(ctx, "p1", "USER#")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	// Sort-key order.
	assert.Equal(t, "USER#a", recs[0]["s_key"])
	assert.Equal(t, "USER#b", recs[1]["s_key"])

	recs, err = s.Query(ctx, "p1", "MISSING#")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestMemoryStoreQueryIndex(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "USER#u1", "user_guid": "u1"}))
	require.NoError(t, s.Put(ctx, Record{"guid": "p2", "s_key": "USER#u1", "user_guid": "u1"}))
	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "USER#u2", "user_guid": "u2"}))

	recs, err := s.QueryIndex(ctx, "gsi.test", "user_guid", "u1")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{"guid": "p1", "s_key": "A#1"}))
	require.NoError(t, s.Delete(ctx, "p1", "A#1"))
	assert.Equal(t, 0, s.Len())

	// Absent rows are a no-op.
	require.NoError(t, s.Delete(ctx, "p1", "A#1"))
}

func TestMemoryStoreWithoutSortKey(t *testing.T) {
	s := NewMemoryStore(TableSpec{Name: "flat", PartitionKey: "guid"})
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{"guid": "u1", "username": "odin"}))

	rec, ok, err := s.Get(ctx, "u1", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "odin", rec["username"])
}
