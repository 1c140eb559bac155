package scene

import "time"

// Debounce windows for the two expensive consumers: mesh re-tessellation and
// share-string persistence. Superseded writes are dropped, not cancelled.
const (
	GeometryQuiescence = 2 * time.Second
	PersistQuiescence  = 250 * time.Millisecond
)

// Debounce holds a value back until it has been stable for a quiescence
// window. Time is passed in explicitly so frame loops and tests drive it the
// same way.
type Debounce struct {
	delay     time.Duration
	value     float64
	committed float64
	pending   bool
	lastSet   time.Time
}

func NewDebounce(delay time.Duration, initial float64) *Debounce {
	return &Debounce{delay: delay, value: initial, committed: initial}
}

// Set records a new candidate value and restarts the quiet period. Setting
// the already-committed value disarms the trigger.
func (d *Debounce) Set(v float64, now time.Time) {
	d.value = v
	d.lastSet = now
	d.pending = v != d.committed
}

// Tick reports the committed value, and true exactly once when a pending
// value has been quiet long enough and gets committed.
func (d *Debounce) Tick(now time.Time) (float64, bool) {
	if d.pending && now.Sub(d.lastSet) >= d.delay {
		d.committed = d.value
		d.pending = false
		return d.committed, true
	}
	return d.committed, false
}
