package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndSummary(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, j.Record(ctx, "hidden", base))
	require.NoError(t, j.Record(ctx, "peeking", base.Add(time.Second)))
	require.NoError(t, j.Record(ctx, "hidden", base.Add(2*time.Second)))
	require.NoError(t, j.Record(ctx, "expanded", base.Add(3*time.Second)))

	s, err := j.Summary(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Counts["hidden"])
	assert.Equal(t, 1, s.Counts["peeking"])
	assert.Equal(t, 1, s.Counts["expanded"])
	assert.True(t, s.Last.Equal(base.Add(3*time.Second)))

	s, err = j.Summary(ctx, base.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Total)
	assert.Zero(t, s.Counts["peeking"])
}

func TestSummary_Empty(t *testing.T) {
	j := openTemp(t)

	s, err := j.Summary(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Zero(t, s.Total)
	assert.True(t, s.Last.IsZero())
	assert.NotNil(t, s.Counts)
}

func TestRecent(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, state := range []string{"hidden", "peeking", "hidden"} {
		require.NoError(t, j.Record(ctx, state, base.Add(time.Duration(i)*time.Minute)))
	}

	recent, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "hidden", recent[0].State)
	assert.True(t, recent[0].At.Equal(base.Add(2*time.Minute)))
	assert.Equal(t, "peeking", recent[1].State)
	assert.Greater(t, recent[0].ID, recent[1].ID)
}

func TestPrune(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, j.Record(ctx, "hidden", base))
	require.NoError(t, j.Record(ctx, "peeking", base.Add(time.Hour)))
	require.NoError(t, j.Record(ctx, "hidden", base.Add(2*time.Hour)))

	n, err := j.Prune(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	s, err := j.Summary(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Total)
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, "peeking", time.Now()))
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	s, err := j.Summary(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Counts["peeking"])
}

func TestClosed(t *testing.T) {
	j := openTemp(t)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	ctx := context.Background()
	assert.ErrorIs(t, j.Record(ctx, "hidden", time.Now()), ErrClosed)
	_, err := j.Summary(ctx, time.Time{})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = j.Recent(ctx, 1)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = j.Prune(ctx, time.Now())
	assert.ErrorIs(t, err, ErrClosed)
}
