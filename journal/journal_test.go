package journal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"
)
import "github.com/stretchr/testify/require"

import "github.com/temide/litepool"

var slogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

func newTestJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := New(filepath.Join(t.TempDir(), "litepool.db"), slogger)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, j.Close())
	})

	return j
}

func TestJournal_RecordAndList(t *testing.T) {
	now := time.Date(2024, 5, 4, 12, 30, 0, 0, time.UTC)
	j := newTestJournal(t).WithClock(fakeClock{now: now})

	j.Record(litepool.Execution{
		WorkerId: "worker_1",
		Duration: 15 * time.Millisecond,
	})
	j.Record(litepool.Execution{
		WorkerId: "worker_2",
		Duration: 3 * time.Millisecond,
		Err:      errors.New("task panicked: boom"),
		Panicked: true,
	})

	entries, err := j.Executions(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		require.NotEmpty(t, e.Id)
		require.Equal(t, now.Format(Rfc3339Milli), e.CreatedAt)
	}

	byWorker := map[string]Entry{}
	for _, e := range entries {
		byWorker[e.WorkerId] = e
	}

	ok := byWorker["worker_1"]
	require.Equal(t, StatusCompleted, ok.Status)
	require.Empty(t, ok.Error)
	require.False(t, ok.Detail.Panicked)
	require.Equal(t, (15 * time.Millisecond).Nanoseconds(), ok.Detail.DurationNs)

	bad := byWorker["worker_2"]
	require.Equal(t, StatusFailed, bad.Status)
	require.Equal(t, "task panicked: boom", bad.Error)
	require.True(t, bad.Detail.Panicked)
}

func TestJournal_Failed(t *testing.T) {
	j := newTestJournal(t)

	j.Record(litepool.Execution{WorkerId: "worker_1"})
	j.Record(litepool.Execution{WorkerId: "worker_1", Err: errors.New("no such file")})

	failed, err := j.Failed(context.Background())
	require.NoError(t, err)
	require.Len(t, failed, 1)
	require.Equal(t, "no such file", failed[0].Error)
}

func TestJournal_RecordsFromPoolWorkers(t *testing.T) {
	j := newTestJournal(t)

	p, err := litepool.New(3, litepool.WithLogger(slogger), litepool.WithRecorder(j))
	require.NoError(t, err)

	wg := &sync.WaitGroup{}
	for i := 0; i < 9; i++ {
		wg.Add(1)
		require.NoError(t, p.Execute(litepool.TaskFunc(func() error {
			defer wg.Done()
			return nil
		})))
	}

	wg.Wait()
	require.NoError(t, p.Shutdown())

	entries, err := j.Executions(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 9)

	for _, e := range entries {
		require.Equal(t, StatusCompleted, e.Status)
	}
}
