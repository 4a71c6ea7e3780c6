package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

// fakeStore records writer interactions for assertions.
type fakeStore struct {
	mu        sync.Mutex
	initErr   error
	insertErr error
	inited    bool
	closed    int
	inserted  []string
}

func (s *fakeStore) Init(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initErr != nil {
		return s.initErr
	}
	s.inited = true
	return nil
}

func (s *fakeStore) InsertEntry(_ context.Context, entry *catalog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, entry.Title)
	return nil
}

func (s *fakeStore) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *fakeStore) snapshot() (inited bool, closed int, inserted []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inited, s.closed, append([]string(nil), s.inserted...)
}

func TestWriterDrainsQueueThenStops(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	queue := NewQueue(10)
	counters := NewCounters()
	writer := NewWriter(store, queue, counters, SystemClock{}, zaptest.NewLogger(t))

	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, queue.Put(ctx, entry(title)))
	}

	done := make(chan error, 1)
	go func() {
		done <- writer.Run(ctx)
	}()

	require.NoError(t, queue.Join(ctx))
	writer.RequestStop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("writer did not stop after drain")
	}

	inited, closed, inserted := store.snapshot()
	require.True(t, inited)
	require.Equal(t, 1, closed)
	require.Equal(t, []string{"a", "b", "c"}, inserted, "persist order must match enqueue order")

	_, written := counters.Snapshot()
	require.Equal(t, uint64(3), written)
}

func TestWriterStopsImmediatelyWhenQueueEmpty(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	queue := NewQueue(1)
	writer := NewWriter(store, queue, NewCounters(), SystemClock{}, zaptest.NewLogger(t))

	writer.RequestStop()
	require.NoError(t, writer.Run(context.Background()))

	_, closed, _ := store.snapshot()
	require.Equal(t, 1, closed)
}

func TestWriterInsertFailureClosesStoreAndSkipsAck(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("insert failed")
	store := &fakeStore{insertErr: wantErr}
	queue := NewQueue(1)
	writer := NewWriter(store, queue, NewCounters(), SystemClock{}, zaptest.NewLogger(t))

	require.NoError(t, queue.Put(context.Background(), entry("doomed")))

	err := writer.Run(context.Background())
	require.ErrorIs(t, err, wantErr)

	_, closed, _ := store.snapshot()
	require.Equal(t, 1, closed, "store must be closed even on persistence failure")
	require.Equal(t, 1, queue.Depth(), "failed entry must stay unacknowledged")
}

func TestWriterInitFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("no database")
	store := &fakeStore{initErr: wantErr}
	writer := NewWriter(store, NewQueue(1), NewCounters(), SystemClock{}, zaptest.NewLogger(t))

	err := writer.Run(context.Background())
	require.ErrorIs(t, err, wantErr)
}

func TestWriterReturnsOnCanceledContext(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	writer := NewWriter(store, NewQueue(1), NewCounters(), SystemClock{}, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := writer.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, closed, _ := store.snapshot()
	require.Equal(t, 1, closed)
}
