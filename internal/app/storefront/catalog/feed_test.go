package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// pagedSource serves fixed pages keyed by page number.
type pagedSource struct {
	mu    sync.Mutex
	pages map[int][]domain.Product
	calls []int
	err   error
	gate  chan struct{}
}

func (s *pagedSource) ListProducts(ctx context.Context, page, limit int, category string) ([]domain.Product, error) {
	s.mu.Lock()
	s.calls = append(s.calls, page)
	gate, pages, err := s.gate, s.pages, s.err
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return pages[page], nil
}

// replace swaps the served pages and gates the next requests.
func (s *pagedSource) replace(pages map[int][]domain.Product, gate chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = pages
	s.gate = gate
}

func (s *pagedSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func batch(prefix string, n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{ID: fmt.Sprintf("%s-%02d", prefix, i), Name: prefix}
	}
	return out
}

func TestFeed_ShortPageStopsLoading(t *testing.T) {
	src := &pagedSource{pages: map[int][]domain.Product{1: batch("a", 15)}}
	feed := NewFeed(src, WithPageSize(20))
	defer feed.Close()

	added, err := feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, added)
	assert.False(t, feed.HasMore())

	added, err = feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Equal(t, 1, src.callCount())
}

func TestFeed_PageOfDuplicatesStopsLoading(t *testing.T) {
	first := batch("a", 20)
	src := &pagedSource{pages: map[int][]domain.Product{1: first, 2: first}}
	feed := NewFeed(src, WithPageSize(20))
	defer feed.Close()

	_, err := feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, feed.HasMore())

	added, err := feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.False(t, feed.HasMore())
	assert.Len(t, feed.Snapshot(), 20)
}

func TestFeed_LoadAllMergesAndDedups(t *testing.T) {
	p1 := batch("a", 3)
	p2 := append(batch("b", 2), p1[0])
	src := &pagedSource{pages: map[int][]domain.Product{1: p1, 2: p2, 3: batch("c", 1)}}
	feed := NewFeed(src, WithPageSize(3))
	defer feed.Close()

	require.NoError(t, feed.LoadAll(context.Background()))

	snapshot := feed.Snapshot()
	require.Len(t, snapshot, 6)
	assert.Equal(t, "a-00", snapshot[0].ID)
	assert.Equal(t, "c-00", snapshot[5].ID)
	assert.Equal(t, []int{1, 2, 3}, src.calls)

	p, ok := feed.Find("b-01")
	require.True(t, ok)
	assert.Equal(t, "b", p.Name)
}

func TestFeed_NoOverlappingRequests(t *testing.T) {
	src := &pagedSource{pages: map[int][]domain.Product{1: batch("a", 2)}, gate: make(chan struct{})}
	feed := NewFeed(src, WithPageSize(2))
	defer feed.Close()

	done := make(chan error, 1)
	go func() {
		_, err := feed.LoadMore(context.Background())
		done <- err
	}()

	require.Eventually(t, feed.Loading, time.Second, time.Millisecond)
	_, err := feed.LoadMore(context.Background())
	assert.ErrorIs(t, err, domain.ErrLoadInProgress)

	close(src.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, src.callCount())
	assert.False(t, feed.Loading())
}

func TestFeed_ErrorKeepsPosition(t *testing.T) {
	src := &pagedSource{pages: map[int][]domain.Product{1: batch("a", 2)}, err: errors.New("upstream down")}
	feed := NewFeed(src, WithPageSize(2))
	defer feed.Close()

	_, err := feed.LoadMore(context.Background())
	require.Error(t, err)
	assert.True(t, feed.HasMore())
	assert.False(t, feed.Loading())

	src.err = nil
	added, err := feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, []int{1, 1}, src.calls)
}

func TestFeed_ResetDiscardsInFlightPage(t *testing.T) {
	src := &pagedSource{pages: map[int][]domain.Product{1: batch("a", 1)}, gate: make(chan struct{})}
	feed := NewFeed(src, WithPageSize(2))
	defer feed.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = feed.LoadMore(context.Background())
	}()
	require.Eventually(t, feed.Loading, time.Second, time.Millisecond)

	feed.Reset()
	close(src.gate)
	<-done

	assert.Empty(t, feed.Snapshot())
	assert.True(t, feed.HasMore())
}

func TestFeed_ScheduleRefreshReloads(t *testing.T) {
	src := &pagedSource{pages: map[int][]domain.Product{1: batch("a", 1)}}
	feed := NewFeed(src, WithPageSize(5), WithRefreshDebounce(10*time.Millisecond))
	defer feed.Close()

	for i := 0; i < 3; i++ {
		feed.ScheduleRefresh()
	}

	assert.Eventually(t, func() bool { return len(feed.Snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, src.callCount())
}

func TestFindProduct_WaitsForPageInFlight(t *testing.T) {
	src := &pagedSource{pages: map[int][]domain.Product{1: batch("a", 2)}, gate: make(chan struct{})}
	feed := NewFeed(src, WithPageSize(5))
	defer feed.Close()

	go func() { _, _ = feed.LoadMore(context.Background()) }()
	require.Eventually(t, feed.Loading, time.Second, time.Millisecond)

	found := make(chan error, 1)
	go func() {
		_, err := FindProduct(context.Background(), feed, "a-01")
		found <- err
	}()

	select {
	case err := <-found:
		t.Fatalf("lookup returned before the page arrived: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	close(src.gate)
	require.NoError(t, <-found)
	assert.Equal(t, 1, src.callCount())
}

func TestFindProduct_WaitHonoursContext(t *testing.T) {
	src := &pagedSource{pages: map[int][]domain.Product{1: batch("a", 2)}, gate: make(chan struct{})}
	feed := NewFeed(src, WithPageSize(5))
	defer feed.Close()
	defer close(src.gate)

	go func() { _, _ = feed.LoadMore(context.Background()) }()
	require.Eventually(t, feed.Loading, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := FindProduct(ctx, feed, "a-01")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFeed_RefreshServesCurrentListUntilSwap(t *testing.T) {
	ctx := context.Background()
	src := &pagedSource{pages: map[int][]domain.Product{1: batch("a", 2)}}
	feed := NewFeed(src, WithPageSize(5), WithRefreshDebounce(time.Millisecond))
	defer feed.Close()
	require.NoError(t, feed.LoadAll(ctx))

	gate := make(chan struct{})
	src.replace(map[int][]domain.Product{1: batch("b", 3)}, gate)
	feed.ScheduleRefresh()
	require.Eventually(t, feed.Loading, time.Second, time.Millisecond)

	p, err := FindProduct(ctx, feed, "a-01")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Name)
	assert.Len(t, feed.Snapshot(), 2)

	close(gate)
	require.Eventually(t, func() bool {
		_, ok := feed.Find("b-02")
		return ok
	}, time.Second, time.Millisecond)

	_, ok := feed.Find("a-00")
	assert.False(t, ok)
	assert.Len(t, feed.Snapshot(), 3)
	assert.False(t, feed.HasMore())
	assert.False(t, feed.Loading())
}

func TestFeed_ResetAbandonsRefresh(t *testing.T) {
	src := &pagedSource{pages: map[int][]domain.Product{1: batch("a", 1)}, gate: make(chan struct{})}
	feed := NewFeed(src, WithPageSize(5), WithRefreshDebounce(time.Millisecond))
	defer feed.Close()

	feed.ScheduleRefresh()
	require.Eventually(t, feed.Loading, time.Second, time.Millisecond)

	feed.Reset()
	assert.False(t, feed.Loading())
	close(src.gate)

	assert.Never(t, func() bool { return len(feed.Snapshot()) > 0 }, 30*time.Millisecond, 5*time.Millisecond)
	assert.True(t, feed.HasMore())
}
