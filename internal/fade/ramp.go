package fade

import "time"

const (
	// DefaultStep is the volume change applied on every tick.
	DefaultStep = 0.01
	// DefaultInterval is the tick period of a ramp.
	DefaultInterval = 50 * time.Millisecond

	// epsilon absorbs float drift from repeated step additions so that
	// a ramp always lands exactly on its bound.
	epsilon = 1e-9
)

// Direction of a volume ramp.
type Direction int

const (
	Increasing Direction = iota
	Decreasing
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Increasing {
		return "Increasing"
	}
	return "Decreasing"
}

// Params configures the linear ramp.
type Params struct {
	Step     float64
	Interval time.Duration
}

// DefaultParams returns 0.01 per 50ms, a full ramp in about five seconds.
func DefaultParams() Params {
	return Params{Step: DefaultStep, Interval: DefaultInterval}
}

func (p Params) withDefaults() Params {
	if p.Step <= 0 || p.Step > 1 {
		p.Step = DefaultStep
	}
	if p.Interval <= 0 {
		p.Interval = DefaultInterval
	}
	return p
}

// next applies one step in the given direction and reports whether the
// ramp reached its bound.
func (p Params) next(volume float64, dir Direction) (float64, bool) {
	if dir == Increasing {
		volume += p.Step
		if volume >= 1-epsilon {
			return 1, true
		}
		return volume, false
	}
	volume -= p.Step
	if volume <= epsilon {
		return 0, true
	}
	return volume, false
}

// TicksToBound returns how many ticks a ramp takes from volume to its bound.
func (p Params) TicksToBound(volume float64, dir Direction) int {
	p = p.withDefaults()
	n := 0
	done := false
	if dir == Increasing && volume >= 1-epsilon || dir == Decreasing && volume <= epsilon {
		return 0
	}
	for !done {
		volume, done = p.next(volume, dir)
		n++
	}
	return n
}
