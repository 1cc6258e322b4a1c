package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAfterRuns(t *testing.T) {
	s := New()
	defer s.Stop()

	var fired atomic.Int32
	s.After("g", 10*time.Millisecond, func(ctx context.Context) { fired.Add(1) })

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestCancelDropsPending(t *testing.T) {
	s := New()
	defer s.Stop()

	var fired atomic.Int32
	s.After("g", 20*time.Millisecond, func(ctx context.Context) { fired.Add(1) })
	s.Cancel("g")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestCancelIsGroupScoped(t *testing.T) {
	s := New()
	defer s.Stop()

	var a, b atomic.Int32
	s.After("a", 10*time.Millisecond, func(ctx context.Context) { a.Add(1) })
	s.After("b", 10*time.Millisecond, func(ctx context.Context) { b.Add(1) })
	s.Cancel("a")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), a.Load())
	assert.Equal(t, int32(1), b.Load())
}

func TestEvery(t *testing.T) {
	s := New()

	var fired atomic.Int32
	s.Every("tick", 10*time.Millisecond, func(ctx context.Context) { fired.Add(1) })

	time.Sleep(55 * time.Millisecond)
	s.Stop()
	assert.GreaterOrEqual(t, fired.Load(), int32(2))
}
