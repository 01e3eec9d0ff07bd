package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano2vn/group-signup/config"
	"github.com/cardano2vn/group-signup/internal/storage"
	"github.com/cardano2vn/group-signup/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Groups:              []string{"A", "B", "C"},
		MaxStudentsPerGroup: 2,
	}
}

func seed() []models.Registration {
	return []models.Registration{
		{Name: "S1", Email: "s1@example.com", Phone: "0000000001", School: "X", Group: "A"},
		{Name: "S2", Email: "s2@example.com", Phone: "0000000002", School: "X", Group: "A"},
		{Name: "S3", Email: "s3@example.com", Phone: "0000000003", School: "Y", Group: "B"},
	}
}

func TestListIsIdempotent(t *testing.T) {
	r := New(storage.NewMemoryStore(seed()...), nil, testConfig())
	ctx := context.Background()

	first, err := r.List(ctx)
	require.NoError(t, err)
	second, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestGroupCounts(t *testing.T) {
	r := New(storage.NewMemoryStore(seed()...), nil, testConfig())

	counts, err := r.GroupCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, counts)
	// Empty groups are absent, callers default to zero.
	_, present := counts["C"]
	assert.False(t, present)
}

func TestIsGroupFull(t *testing.T) {
	r := New(storage.NewMemoryStore(seed()...), nil, testConfig())
	ctx := context.Background()

	full, err := r.IsGroupFull(ctx, "A")
	require.NoError(t, err)
	assert.True(t, full, "A holds exactly the capacity")

	full, err = r.IsGroupFull(ctx, "B")
	require.NoError(t, err)
	assert.False(t, full)

	full, err = r.IsGroupFull(ctx, "C")
	require.NoError(t, err)
	assert.False(t, full, "empty group counts as zero")
}

func TestAvailableGroups(t *testing.T) {
	r := New(storage.NewMemoryStore(seed()...), nil, testConfig())

	available, err := r.AvailableGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, available)
}

func TestGroupStatusesIncludeEmptyGroups(t *testing.T) {
	r := New(storage.NewMemoryStore(seed()...), nil, testConfig())

	statuses, err := r.GroupStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.GroupStatus{
		{Name: "A", Count: 2, IsFull: true, MaxStudents: 2},
		{Name: "B", Count: 1, IsFull: false, MaxStudents: 2},
		{Name: "C", Count: 0, IsFull: false, MaxStudents: 2},
	}, statuses)
}

func TestListWrapsStoreFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	store.ListErr = errors.New("range read failed")
	r := New(store, nil, testConfig())

	_, err := r.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "roster: fetch students")
	assert.ErrorIs(t, err, store.ListErr)
}
