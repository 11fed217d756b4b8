package clock

import "time"

// Manual is a ticker driven by explicit Tick calls, for tests.
type Manual struct {
	running  bool
	interval time.Duration
	onTick   func()
	starts   int
	stops    int
}

// NewManual creates a stopped manual ticker.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Start(interval time.Duration, onTick func()) {
	m.running = true
	m.interval = interval
	m.onTick = onTick
	m.starts++
}

func (m *Manual) Stop() {
	if m.running {
		m.stops++
	}
	m.running = false
	m.onTick = nil
}

// Tick fires the callback once. Returns false if the ticker is stopped.
func (m *Manual) Tick() bool {
	if !m.running || m.onTick == nil {
		return false
	}
	m.onTick()
	return true
}

// Run ticks until the ticker stops or max ticks elapse, returning the count.
func (m *Manual) Run(limit int) int {
	n := 0
	for n < limit && m.Tick() {
		n++
	}
	return n
}

// Test helpers

func (m *Manual) Running() bool { return m.running }

func (m *Manual) Interval() time.Duration { return m.interval }

func (m *Manual) Starts() int { return m.starts }

func (m *Manual) Stops() int { return m.stops }
