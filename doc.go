// package sequencer provides a scalable way to hand out unique, increasing sequence numbers.
//
// The obvious way to generate sequence numbers from many goroutines is a single atomic
// counter:
//
//	var counter uint64
//
//	func Next() uint64 {
//		return atomic.AddUint64(&counter, 1) - 1
//	}
//
// Every call writes to the same cache line, so throughput falls off quickly as more
// cores are added. A Sequencer instead claims a batch of step values from a shared
// Global with a single atomic add and then hands them out locally:
//
//	var global = sequencer.NewGlobal()
//
//	func worker() {
//		seq := sequencer.New(global, 128, 128*16)
//		for {
//			process(seq.Next())
//		}
//	}
//
// Values are unique across every Sequencer sharing the Global and strictly increasing
// within a single Sequencer, but there is no global order between Sequencers. To keep
// a slow Sequencer from handing out values far behind everyone else, it also refills
// early once its position has fallen more than lag behind the Global's frontier. That
// check reads the Global without synchronization, so it bounds the lag on a best-effort
// basis only.
//
// Larger steps mean fewer atomic operations and less contention, at the cost of wasting
// whatever is left of a batch when its Sequencer is dropped and of letting Sequencers
// drift further apart. A smaller lag trades some of that contention back for freshness.
//
// A Sequencer must only be used by one goroutine at a time. When callers can't own one,
// a Pool keeps a Sequencer per P and is safe for concurrent use.
package sequencer
