package sequencer

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/zeebo/assert"
)

func TestPool(t *testing.T) {
	g := NewGlobal()
	p := NewPool(g, 4, 100)

	got := make(map[uint64]struct{})
	for i := 0; i < 100; i++ {
		v := p.Next()
		_, ok := got[v]
		assert.That(t, !ok)
		got[v] = struct{}{}
	}
	assert.That(t, g.Load() >= 100)
}

func TestPoolShared(t *testing.T) {
	g := NewGlobal()
	p := NewPool(g, 8, 64)
	s := New(g, 8, 64)

	got := make(map[uint64]struct{})
	for i := 0; i < 1000; i++ {
		for _, v := range []uint64{p.Next(), s.Next()} {
			_, ok := got[v]
			assert.That(t, !ok)
			got[v] = struct{}{}
		}
	}
	assert.Equal(t, len(got), 2000)
}

func TestPoolRace(t *testing.T) {
	num := 10000
	g := NewGlobal()
	p := NewPool(g, 16, 256)
	np := runtime.GOMAXPROCS(-1)
	ch := make(chan uint64, 100*np)

	var wg sync.WaitGroup
	wg.Add(4 * np)
	for i := 0; i < 4*np; i++ {
		go func() {
			defer wg.Done()
			for i := 0; i < num; i++ {
				ch <- p.Next()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	got := make(map[uint64]struct{}, 4*num*np)
	for v := range ch {
		got[v] = struct{}{}
	}
	assert.Equal(t, len(got), 4*num*np)
}

func TestPoolGrow(t *testing.T) {
	g := NewGlobal()
	p := NewPool(g, 16, 256)

	procs := runtime.GOMAXPROCS(-1)
	defer runtime.GOMAXPROCS(procs)
	runtime.GOMAXPROCS(2 * procs)

	num := 1000
	np := 4 * procs
	results := make([][]uint64, np)

	var wg sync.WaitGroup
	wg.Add(np)
	for i := 0; i < np; i++ {
		go func(out *[]uint64) {
			defer wg.Done()
			for i := 0; i < num; i++ {
				*out = append(*out, p.Next())
			}
		}(&results[i])
	}
	wg.Wait()

	got := make(map[uint64]struct{}, num*np)
	for _, values := range results {
		for _, v := range values {
			got[v] = struct{}{}
		}
	}
	assert.Equal(t, len(got), num*np)

	// growing keeps the shards that are already in use.
	p.grow(2 * procs)
	before := (*shardList)(atomic.LoadPointer(&p.list)).shards
	p.grow(len(before) + 1)
	after := (*shardList)(atomic.LoadPointer(&p.list)).shards
	assert.Equal(t, len(after), len(before)+1)
	for i := range before {
		assert.That(t, before[i] == after[i])
	}

	// shrinking GOMAXPROCS never drops shards.
	runtime.GOMAXPROCS(1)
	p.grow(1)
	assert.Equal(t, len((*shardList)(atomic.LoadPointer(&p.list)).shards), len(after))
}
