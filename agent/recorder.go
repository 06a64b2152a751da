package agent

import (
	"sync"

	"monopoly/action"
)

const (
	BufferSize   = 10000
	BatchSize    = 32
	EpsilonStart = 0.9
	EpsilonFloor = 0.1
	DecaySteps   = 2000
)

// Transition is one recorded decision of a learned agent. Index addresses the
// group's raw score layout.
type Transition struct {
	State     []float64
	Group     action.Group
	Index     int
	Reward    float64
	NextState []float64
}

// Recorder keeps the most recent transitions in a bounded FIFO buffer and
// drives the exploration schedule. Safe for concurrent use by several games.
type Recorder struct {
	mu       sync.Mutex
	buffer   []Transition
	size     int
	start    float64
	steps    int
	evaluate bool
}

type RecorderOption func(*Recorder)

func WithBufferSize(size int) RecorderOption {
	return func(r *Recorder) {
		r.size = size
	}
}

func WithEpsilonStart(eps float64) RecorderOption {
	return func(r *Recorder) {
		r.start = eps
	}
}

// WithEvaluation turns exploration off.
func WithEvaluation() RecorderOption {
	return func(r *Recorder) {
		r.evaluate = true
	}
}

func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{size: BufferSize, start: EpsilonStart}
	for _, opt := range opts {
		opt(r)
	}
	if r.size < 1 {
		panic("recorder buffer size must be positive")
	}
	return r
}

// Epsilon is the current exploration probability: a linear decay from the
// start value to the floor over DecaySteps optimisation steps.
func (r *Recorder) Epsilon() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.evaluate {
		return 0
	}
	return max(EpsilonFloor, r.start-r.start/DecaySteps*float64(r.steps))
}

// Add stores t, dropping the oldest transition when the buffer is full.
func (r *Recorder) Add(t Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.buffer) == r.size {
		copy(r.buffer, r.buffer[1:])
		r.buffer = r.buffer[:len(r.buffer)-1]
	}
	r.buffer = append(r.buffer, t)
}

// Step counts one optimisation step once the buffer holds a full batch.
// It reports whether the step was counted.
func (r *Recorder) Step() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.buffer) < BatchSize {
		return false
	}
	r.steps++
	return true
}

func (r *Recorder) Steps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.steps
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buffer)
}

// Transitions returns a copy of the buffer, oldest first.
func (r *Recorder) Transitions() []Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Transition, len(r.buffer))
	copy(out, r.buffer)
	return out
}
