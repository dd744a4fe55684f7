package catalog

import (
	"sync"
	"time"
)

type Kind int

const (
	Idle Kind = iota
	Info
	Success
	Error
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return ""
}

// Feedback is the state of a message region: idle, or a message of some kind.
type Feedback struct {
	Kind Kind
	Text string
}

func (f Feedback) IsIdle() bool { return f.Kind == Idle }

// transient messages clear themselves; info waits to be superseded.
func (f Feedback) transient() bool { return f.Kind == Success || f.Kind == Error }

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// slot serializes writes to one message region. gen identifies the latest message so a
// pending clear never wipes a newer one.
type slot struct {
	mu   sync.Mutex
	gen  uint64
	show func(Feedback)
}

func (s *slot) set(f Feedback, delay time.Duration, after Scheduler) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.show(f)
	s.mu.Unlock()

	if !f.transient() {
		return
	}
	after(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.show(Feedback{})
		}
	})
}
