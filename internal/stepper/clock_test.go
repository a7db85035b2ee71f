package stepper

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockMonotonic(t *testing.T) {
	c := NewClock()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())
}

func TestClockResume(t *testing.T) {
	c := NewClockAt(41)
	assert.Equal(t, int64(41), c.Current())
	assert.Equal(t, int64(42), c.Next())
}

func TestClockConcurrentUniqueness(t *testing.T) {
	c := NewClock()
	const n = 100

	var mu sync.Mutex
	seen := make(map[int64]bool, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := c.Next()
			mu.Lock()
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	assert.Equal(t, int64(n), c.Current())
}

func TestFixedGeneratorSequence(t *testing.T) {
	g := NewFixedGenerator("t-1", "t-2")
	assert.Equal(t, "t-1", g.Generate())
	assert.Equal(t, "t-2", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestUUIDv7GeneratorFormat(t *testing.T) {
	g := UUIDv7Generator{}
	a := g.Generate()
	b := g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
