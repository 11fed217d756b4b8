// internal/player/mock.go
package player

// Mock is a test double for Device.
type Mock struct {
	state     State
	path      string
	loop      bool
	level     float64
	sourceErr error
	playErr   error
	onError   func(error)
	volumes   []float64
	playCalls int
	stopCalls int
}

// NewMock creates a new mock device for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped}
}

func (m *Mock) SetSource(path string) error {
	if m.sourceErr != nil {
		return m.sourceErr
	}
	m.path = path
	return nil
}

func (m *Mock) SetLoop(infinite bool) { m.loop = infinite }

func (m *Mock) SetVolume(level float64) {
	m.level = clampLevel(level)
	m.volumes = append(m.volumes, m.level)
}

func (m *Mock) Play() error {
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.state = Stopped
}

func (m *Mock) OnError(fn func(err error)) { m.onError = fn }

// Test helpers

func (m *Mock) State() State { return m.state }

func (m *Mock) Source() string { return m.path }

func (m *Mock) Looping() bool { return m.loop }

func (m *Mock) Volume() float64 { return m.level }

func (m *Mock) Volumes() []float64 { return m.volumes }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

func (m *Mock) SetSourceError(err error) { m.sourceErr = err }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

// SimulateError invokes the registered runtime error callback.
func (m *Mock) SimulateError(err error) {
	if m.onError != nil {
		m.onError(err)
	}
}
