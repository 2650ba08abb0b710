package app

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestInFlight_IncDec(t *testing.T) {
	c := NewInFlight()
	var seen []int64
	c.OnChange(func(n int64) { seen = append(seen, n) })

	assert.Equal(t, int64(1), c.Inc())
	assert.Equal(t, int64(2), c.Inc())
	assert.Equal(t, int64(1), c.Dec())
	assert.Equal(t, int64(1), c.Count())
	assert.Equal(t, []int64{1, 2, 1}, seen)
}

func TestInFlight_Concurrent(t *testing.T) {
	c := NewInFlight()
	var (
		mu  sync.Mutex
		max int64
	)
	c.OnChange(func(n int64) {
		mu.Lock()
		defer mu.Unlock()
		if n > max {
			max = n
		}
	})

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			c.Inc()
			c.Dec()
			return nil
		})
	}
	assert.NoError(t, g.Wait())
	assert.Equal(t, int64(0), c.Count())
	assert.GreaterOrEqual(t, max, int64(1))
}

func TestInFlight_LastNotificationMatchesCount(t *testing.T) {
	for round := 0; round < 200; round++ {
		c := NewInFlight()
		var (
			mu   sync.Mutex
			last int64
		)
		c.OnChange(func(n int64) {
			if n > 0 {
				runtime.Gosched()
			}
			mu.Lock()
			last = n
			mu.Unlock()
		})

		var g errgroup.Group
		for i := 0; i < 8; i++ {
			g.Go(func() error {
				c.Inc()
				c.Dec()
				return nil
			})
		}
		assert.NoError(t, g.Wait())

		mu.Lock()
		got := last
		mu.Unlock()
		if !assert.Equal(t, c.Count(), got, "round %d", round) {
			return
		}
	}
}

func TestInFlight_NilCount(t *testing.T) {
	var c *InFlight
	assert.Equal(t, int64(0), c.Count())
}
