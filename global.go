package sequencer

import "sync/atomic"

const cacheLine = 64 // typical size of a cache line

// Global is the shared counter that Sequencers claim batches from. The zero
// value is ready to use and starts at 0.
//
// It is padded to fill a cache line so that the single hot word does not
// share a line with anything else. When embedding a Global in a struct, keep
// it as the first field so the counter stays 64-bit aligned on 32-bit
// platforms.
type Global struct {
	value uint64
	_     [cacheLine - 8]byte
}

// NewGlobal returns a Global starting at 0.
func NewGlobal() *Global { return new(Global) }

// FetchAdd advances the counter by n and returns the value it had before. The
// caller exclusively owns the range [ret, ret+n). It is safe to be called
// concurrently.
func (g *Global) FetchAdd(n uint64) uint64 {
	return atomic.AddUint64(&g.value, n) - n
}

// Load returns the current value of the counter. It is only a snapshot: by the
// time it returns other callers may have advanced the counter.
func (g *Global) Load() uint64 {
	return atomic.LoadUint64(&g.value)
}
