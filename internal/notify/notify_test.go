package notify

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_OrderAndUnsubscribe(t *testing.T) {
	n := New()
	var got []string

	n.Subscribe(func() { got = append(got, "a") })
	unsubB := n.Subscribe(func() { got = append(got, "b") })
	n.Subscribe(func() { got = append(got, "c") })

	n.Notify()
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got = nil
	unsubB()
	unsubB()
	n.Notify()
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestNotifier_UnsubscribeDuringNotify(t *testing.T) {
	n := New()
	calls := 0

	var unsub func()
	unsub = n.Subscribe(func() {
		calls++
		unsub()
	})
	n.Subscribe(func() { calls++ })

	n.Notify()
	assert.Equal(t, 2, calls)

	n.Notify()
	assert.Equal(t, 3, calls)
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()
	var calls atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := n.Subscribe(func() { calls.Add(1) })
			n.Notify()
			unsub()
		}()
	}
	wg.Wait()

	// Everyone unsubscribed, so nothing runs any more.
	before := calls.Load()
	n.Notify()
	assert.Equal(t, before, calls.Load())
}
