package acurite

import (
	"sync"
	"time"
)

// Session hosts the start/available facade, modeled on
// original_source/rpi/acumonitor.py's start()/available()/background-
// thread split. A single goroutine (started by
// Start) owns all Dispatcher state; Available callers register a
// buffered channel and block on it (or on a timeout), matching the
// Python implementation's Queue-based waiter list.
type Session struct {
	dispatcher *Dispatcher

	mu      sync.Mutex
	waiters []chan Payload

	done chan struct{}
}

// NewSession creates a Session over the given models. Call Start to
// begin consuming edge events.
func NewSession(models ...Model) *Session {
	return &Session{
		dispatcher: NewDispatcher(models...),
		done:       make(chan struct{}),
	}
}

// Start resets all model state and begins consuming edge events from
// events, fanning each through the Dispatcher. It returns immediately;
// decoding happens on an internal goroutine for the lifetime of the
// channel (or until Close is called).
func (s *Session) Start(events <-chan EdgeEvent) {
	s.dispatcher.Reset()
	go s.run(events)
}

func (s *Session) run(events <-chan EdgeEvent) {
	for {
		select {
		case <-s.done:
			return
		case ev, open := <-events:
			if !open {
				return
			}
			if payload, ok := s.dispatcher.Parse(ev); ok {
				s.broadcast(payload)
			}
		}
	}
}

// broadcast delivers payload to every pending Available caller.
func (s *Session) broadcast(payload Payload) {
	s.mu.Lock()
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	for _, w := range waiters {
		w <- payload
	}
}

// Available blocks until a payload is successfully decoded or timeout
// elapses, whichever comes first. It returns (Payload{}, false) on
// timeout; the caller may call Available again to keep waiting.
func (s *Session) Available(timeout time.Duration) (Payload, bool) {
	waiter := make(chan Payload, 1)

	s.mu.Lock()
	s.waiters = append(s.waiters, waiter)
	s.mu.Unlock()

	select {
	case payload := <-waiter:
		return payload, true
	case <-time.After(timeout):
		s.removeWaiter(waiter)
		return Payload{}, false
	case <-s.done:
		return Payload{}, false
	}
}

func (s *Session) removeWaiter(waiter chan Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.waiters {
		if w == waiter {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}
}

// Close stops the session's internal goroutine and releases any
// blocked Available callers.
func (s *Session) Close() {
	close(s.done)
}
