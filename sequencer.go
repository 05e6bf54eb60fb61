package sequencer

const (
	// DefaultStep is the batch size used by NewDefault.
	DefaultStep = 128
	// DefaultLag is the staleness bound used by NewDefault.
	DefaultLag = DefaultStep * 16
)

// Sequencer hands out sequence numbers from a batch it claimed from a Global.
// It only touches the Global when the batch is used up or when it has fallen
// more than lag behind the Global's frontier.
//
// A Sequencer is not safe for concurrent use. Any values left in its batch
// when it is dropped are never handed out by anyone.
type Sequencer struct {
	global *Global

	local  uint64
	target uint64

	step uint64
	lag  uint64

	refills uint64
}

// New returns a Sequencer that claims step values at a time from global and
// refills early once it is more than lag values behind. Both step and lag must
// be greater than zero: with a zero step every call claims nothing and the
// Sequencer refills on every call.
func New(global *Global, step, lag uint64) *Sequencer {
	return &Sequencer{
		global: global,
		step:   step,
		lag:    lag,
	}
}

// NewDefault returns a Sequencer using DefaultStep and DefaultLag.
func NewDefault(global *Global) *Sequencer {
	return New(global, DefaultStep, DefaultLag)
}

// Next returns the next sequence number. Values returned by one Sequencer are
// strictly increasing and never returned by any other Sequencer drawing from
// the same Global.
func (s *Sequencer) Next() uint64 {
	// a fresh Sequencer has local == target == 0, so the first call always
	// claims a batch.
	if s.local == s.target || s.local+s.lag < s.global.Load() {
		s.refill()
	}
	v := s.local
	s.local++
	return v
}

// refill claims a new batch, abandoning whatever was left of the old one.
func (s *Sequencer) refill() {
	s.local = s.global.FetchAdd(s.step)
	s.target = s.local + s.step
	s.refills++
}

// Local returns the value the next call to Next will return if it does not
// refill.
func (s *Sequencer) Local() uint64 { return s.local }

// Global returns the current frontier of the Global the Sequencer draws from.
func (s *Sequencer) Global() uint64 { return s.global.Load() }

// Remaining returns how many values are left in the current batch.
func (s *Sequencer) Remaining() uint64 { return s.target - s.local }

// Step returns the batch size.
func (s *Sequencer) Step() uint64 { return s.step }

// Lag returns the staleness bound.
func (s *Sequencer) Lag() uint64 { return s.lag }

// Refills returns how many batches the Sequencer has claimed from the Global.
func (s *Sequencer) Refills() uint64 { return s.refills }
