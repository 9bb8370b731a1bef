package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerOnlyLastTriggerFires(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var first, last int32

	d.Trigger(func() { atomic.AddInt32(&first, 1) })
	d.Trigger(func() { atomic.AddInt32(&last, 1) })

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&first), "superseded trigger must not fire")
	assert.Equal(t, int32(1), atomic.LoadInt32(&last))
}

func TestDebouncerFiresAfterQuietPeriod(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	done := make(chan struct{})

	d.Trigger(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced function never fired")
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var fired int32

	d.Trigger(func() { atomic.AddInt32(&fired, 1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestDebouncerZeroDelayFallsBack(t *testing.T) {
	d := NewDebouncer(0)
	assert.Equal(t, DefaultSearchDebounce, d.delay)
}

func TestCoalescerCollapsesBurst(t *testing.T) {
	var fired int32
	c := NewCoalescer(20*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	for i := 0; i < 10; i++ {
		c.Request()
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired), "a burst collapses into one flush")
}

func TestCoalescerFiresAgainAfterFlush(t *testing.T) {
	var fired int32
	c := NewCoalescer(10*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	c.Request()
	time.Sleep(60 * time.Millisecond)
	c.Request()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(2), atomic.LoadInt32(&fired))
}
