package worker

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 50; i++ {
		p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	p.Stop()
	require.Equal(t, 50, count)
}

func TestPoolSurvivesPanic(t *testing.T) {
	p := NewPool(1)
	var n atomic.Int32
	p.Submit(func() { panic("boom") })
	p.Submit(nil)
	p.Submit(func() { n.Add(1) })
	p.Stop()
	require.Equal(t, int32(1), n.Load())
}

func TestPoolStopTwiceAndLateSubmit(t *testing.T) {
	p := NewPool(0)
	p.Stop()
	require.NotPanics(t, p.Stop)

	ran := false
	require.NotPanics(t, func() { p.Submit(func() { ran = true }) })
	require.False(t, ran)
}

func TestFakePool(t *testing.T) {
	f := &FakePool{}
	ran := false
	f.Submit(func() { ran = true })
	f.Submit(func() { panic("x") })
	f.Stop()
	require.True(t, ran)
	require.Equal(t, 2, f.Submitted)
	require.True(t, f.Stopped)
}
