package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Handler func(Event)

// Subscription identifies one registered handler for Off.
type Subscription struct {
	id   uint64
	kind Kind
}

// Publisher is what producers of events depend on.
type Publisher interface {
	Emit(ev Event)
}

type entry struct {
	id   uint64
	kind Kind // empty means every kind
	h    Handler
}

// Emitter delivers events to handlers in registration order. Emit calls from
// any goroutine are serialized into one stream: the first emitter drains the
// queue, a re-entrant or concurrent Emit only enqueues.
type Emitter struct {
	mu       sync.Mutex
	nextID   uint64
	entries  []entry
	queue    []Event
	draining bool
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) On(kind Kind, h Handler) Subscription {
	return e.add(kind, h)
}

// OnAll subscribes h to the whole vocabulary.
func (e *Emitter) OnAll(h Handler) Subscription {
	return e.add("", h)
}

func (e *Emitter) add(kind Kind, h Handler) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.entries = append(e.entries, entry{id: e.nextID, kind: kind, h: h})
	return Subscription{id: e.nextID, kind: kind}
}

func (e *Emitter) Off(sub Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, en := range e.entries {
		if en.id == sub.id {
			e.entries = append(e.entries[:i:i], e.entries[i+1:]...)
			return
		}
	}
}

// Clear drops every handler.
func (e *Emitter) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = nil
}

func (e *Emitter) Emit(ev Event) {
	if ev == nil {
		return
	}
	e.mu.Lock()
	e.queue = append(e.queue, ev)
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true
	for len(e.queue) > 0 {
		next := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		targets := e.targets(next.Kind())
		e.mu.Unlock()
		for _, h := range targets {
			deliver(h, next)
		}
		e.mu.Lock()
	}
	e.draining = false
	e.mu.Unlock()
}

func (e *Emitter) targets(kind Kind) []Handler {
	out := make([]Handler, 0, len(e.entries))
	for _, en := range e.entries {
		if en.kind == "" || en.kind == kind {
			out = append(out, en.h)
		}
	}
	return out
}

func deliver(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("module", "app.events").Str("kind", string(ev.Kind())).Interface("panic", r).Msg("handler panicked")
		}
	}()
	h(ev)
}
