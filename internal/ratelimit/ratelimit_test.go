package ratelimit

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounterCadence(t *testing.T) {
	c := NewCounter(3)

	var allowed []bool
	for i := 0; i < 9; i++ {
		allowed = append(allowed, c.Allow())
	}
	assert.Equal(t, []bool{true, false, false, true, false, false, true, false, false}, allowed)
}

func TestCounterReset(t *testing.T) {
	c := NewCounter(3)
	c.Allow()
	c.Allow()
	c.Reset()
	assert.True(t, c.Allow())
}

func TestInterval(t *testing.T) {
	i := NewInterval(time.Minute)
	current := time.Unix(1000, 0)
	i.now = func() time.Time { return current }

	assert.True(t, i.Allow())
	assert.False(t, i.Allow())

	current = current.Add(59 * time.Second)
	assert.False(t, i.Allow())

	current = current.Add(2 * time.Second)
	assert.True(t, i.Allow())
}

func TestDebouncerTrailingEdge(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
	}

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
