package sequencer

import (
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

// shard is the Sequencer owned by a single P, padded so that neighbouring
// shards do not share a cache line.
type shard struct {
	seq Sequencer
	// only taken when the race detector is enabled. pinning already keeps
	// every other goroutine away from the shard, but the detector can't see
	// that.
	mu sync.Mutex
	_  [cacheLine - (unsafe.Sizeof(Sequencer{})+unsafe.Sizeof(sync.Mutex{}))%cacheLine]byte
}

// shardList is swapped out as a whole when the number of Ps grows.
type shardList struct {
	shards []*shard
}

// Pool keeps one Sequencer per P so that it can be used from many goroutines
// without them contending on anything but the Global. It is the closest thing
// to a thread local Sequencer.
//
// Values are unique across everything drawing from the same Global, but a
// goroutine calling Next repeatedly may observe them out of order if it
// migrates between Ps.
type Pool struct {
	global *Global
	step   uint64
	lag    uint64

	list unsafe.Pointer // *shardList
	mu   sync.Mutex     // serializes grow
}

// NewPool returns a Pool whose Sequencers draw from global with the given step
// and lag. The same preconditions as New apply.
func NewPool(global *Global, step, lag uint64) *Pool {
	p := &Pool{
		global: global,
		step:   step,
		lag:    lag,
	}
	p.grow(runtime.GOMAXPROCS(0))
	return p
}

// Next returns a sequence number from the calling P's Sequencer. It is safe to
// be called concurrently.
func (p *Pool) Next() uint64 {
	for {
		// while pinned no other goroutine can run on this P, so the shard
		// for it is ours alone.
		pid := procPin()
		list := (*shardList)(atomic.LoadPointer(&p.list))
		if pid < len(list.shards) {
			sh := list.shards[pid]
			if raceEnabled {
				sh.mu.Lock()
			}
			v := sh.seq.Next()
			if raceEnabled {
				sh.mu.Unlock()
			}
			procUnpin()
			return v
		}

		// GOMAXPROCS was raised since the list was built. we can't block
		// while pinned, so unpin, grow and try again.
		procUnpin()
		p.grow(pid + 1)
	}
}

// grow ensures there are at least n shards. Existing shards are carried over
// by pointer so that a P still using the old list keeps using the same
// Sequencer.
func (p *Pool) grow(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var old []*shard
	if list := (*shardList)(atomic.LoadPointer(&p.list)); list != nil {
		old = list.shards
	}
	if len(old) >= n {
		return
	}
	if procs := runtime.GOMAXPROCS(0); procs > n {
		n = procs
	}

	shards := make([]*shard, n)
	copy(shards, old)
	for i := len(old); i < n; i++ {
		shards[i] = &shard{seq: *New(p.global, p.step, p.lag)}
	}

	// readers only ever load the pointer, and the mutex keeps us the only
	// writer, so a plain store is enough.
	atomic.StorePointer(&p.list, unsafe.Pointer(&shardList{shards: shards}))
}
