package dispatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Queue_DispatchWhileBound(t *testing.T) {
	// given
	q := NewQueue[int](0)
	var got []int
	q.Bind(func(v int) { got = append(got, v) })
	// when
	q.Dispatch(1)
	q.Dispatch(2)
	// then
	assert.Equal(t, []int{1, 2}, got)
	assert.Zero(t, q.Pending())
}

func Test_Queue_QueuesUntilBound(t *testing.T) {
	// given
	q := NewQueue[string](0)
	// when
	q.Dispatch("a")
	q.Dispatch("b")
	// then
	require.Equal(t, 2, q.Pending())

	// when a handler attaches, the backlog is flushed in dispatch order
	var got []string
	q.Bind(func(v string) { got = append(got, v) })
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Zero(t, q.Pending())

	// and subsequent dispatches go straight to the handler
	q.Dispatch("c")
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func Test_Queue_UnbindQueuesAgain(t *testing.T) {
	// given
	q := NewQueue[int](0)
	var got []int
	q.Bind(func(v int) { got = append(got, v) })
	q.Dispatch(1)
	// when
	q.Unbind()
	q.Dispatch(2)
	// then
	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 1, q.Pending())
}

func Test_Queue_BacklogDropsOldest(t *testing.T) {
	// given
	q := NewQueue[int](2)
	q.Dispatch(1)
	q.Dispatch(2)
	q.Dispatch(3)
	require.Equal(t, 2, q.Pending())
	// when
	var got []int
	q.Bind(func(v int) { got = append(got, v) })
	// then the oldest value was evicted
	assert.Equal(t, []int{2, 3}, got)
}

func Test_Queue_DispatchDuringBindFlushKeepsOrder(t *testing.T) {
	// given a backlog and a handler that stalls mid-flush
	q := NewQueue[int](0)
	q.Dispatch(1)
	q.Dispatch(2)

	dispatched := make(chan struct{})
	var got []int
	handler := func(v int) {
		if v == 1 {
			// a dispatch racing the bind must not overtake older
			// backlog entries still being flushed
			go func() {
				q.Dispatch(3)
				close(dispatched)
			}()
			<-dispatched
		}
		got = append(got, v)
	}
	// when
	q.Bind(handler)
	// then the racing value was queued behind the backlog
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Zero(t, q.Pending())
}

func Test_Queue_ConcurrentDispatch(t *testing.T) {
	// given
	q := NewQueue[int](1024)
	var mu sync.Mutex
	count := 0
	q.Bind(func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	// when
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				q.Dispatch(1)
			}
		}()
	}
	wg.Wait()
	// then
	assert.Equal(t, 800, count)
}
