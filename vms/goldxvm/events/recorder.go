// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import "sync"

var _ Emitter = (*Recorder)(nil)

// Recorder keeps every emitted event in memory, in emission order.
type Recorder struct {
	mu     sync.RWMutex
	events []Event
}

func (r *Recorder) Emit(events ...Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns the recorded events with the given name.
func (r *Recorder) Named(name string) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Event
	for _, e := range r.events {
		if e.Name() == name {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recent event, or nil if none was recorded.
func (r *Recorder) Last() Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
