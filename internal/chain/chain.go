// Package chain provides the handler chain the tag pipeline is built from.
//
// A source of tag events (the parser) drives a linear chain of stages. Each
// stage sees every event, may transform or buffer data before passing it on,
// and may declare itself unhealthy. Health propagates backwards: a stage is
// healthy only if it and every stage after it are healthy, so the source can
// stop as soon as any stage fails.
package chain

import (
	"errors"
	"fmt"
	"reflect"
)

// Handler receives the events of one tag stream.
//
// Exactly one OnBegin and one OnEnd are delivered per stream, with any number
// of OnData calls in between. Once Healthy reports false, OnData must not be
// forwarded any further; OnEnd still is.
type Handler interface {
	OnBegin(source string)
	OnEnd(ok bool)
	OnData(key, value string)
	Healthy() bool
}

// Stage is a Handler that can be linked to a successor.
type Stage interface {
	Handler
	SetNext(next Handler)
}

// Link is the building block of a stage. Embedded in a stage type it forwards
// every event to the successor and tracks the stage's own health.
//
// The zero value is a healthy stage without a successor.
type Link struct {
	next   Handler
	broken bool
}

// SetNext sets the successor.
func (l *Link) SetNext(next Handler) {
	l.next = next
}

// Next returns the successor, or nil for the last stage.
func (l *Link) Next() Handler {
	return l.next
}

// SetHealthy sets the local health flag. OnBegin resets it to healthy.
func (l *Link) SetHealthy(ok bool) {
	l.broken = !ok
}

// Healthy reports whether this stage and all stages after it are healthy.
func (l *Link) Healthy() bool {
	if l.broken {
		return false
	}
	return l.next == nil || l.next.Healthy()
}

// OnBegin resets the stage and forwards the event.
func (l *Link) OnBegin(source string) {
	l.broken = false
	if l.next != nil {
		l.next.OnBegin(source)
	}
}

// OnEnd forwards the event.
func (l *Link) OnEnd(ok bool) {
	if l.next != nil {
		l.next.OnEnd(ok)
	}
}

// OnData forwards the pair while the chain is healthy.
func (l *Link) OnData(key, value string) {
	if l.next != nil && l.Healthy() {
		l.next.OnData(key, value)
	}
}

// Forward passes a pair to the successor and reports whether the chain is
// still healthy afterwards. Stages that flush buffered pairs use it to stop
// at the first failure.
func (l *Link) Forward(key, value string) bool {
	if l.next == nil {
		return !l.broken
	}
	l.next.OnData(key, value)
	return l.next.Healthy()
}

// ErrNilStage is returned by Connect when a stage is nil.
var ErrNilStage = errors.New("chain: nil stage")

// Connect links stages in order and appends tail as the final handler. It
// returns the head of the chain. A stage may appear only once, so the result
// never contains a cycle.
//
// Only handlers held by pointer take part in the duplicate check, so tail
// may be of any type, including one that is not comparable.
func Connect(tail Handler, stages ...Stage) (Handler, error) {
	if tail == nil {
		return nil, ErrNilStage
	}
	seen := make(map[Handler]int, len(stages))
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("%w at position %d", ErrNilStage, i)
		}
		if !isPointer(s) {
			continue
		}
		if j, dup := seen[s]; dup {
			return nil, fmt.Errorf("chain: stage at position %d already linked at position %d", i, j)
		}
		seen[s] = i
	}
	if isPointer(tail) {
		if j, dup := seen[tail]; dup {
			return nil, fmt.Errorf("chain: tail already linked at position %d", j)
		}
	}

	for i, s := range stages {
		if i+1 < len(stages) {
			s.SetNext(stages[i+1])
		} else {
			s.SetNext(tail)
		}
	}
	if len(stages) == 0 {
		return tail, nil
	}
	return stages[0], nil
}

func isPointer(h Handler) bool {
	return reflect.TypeOf(h).Kind() == reflect.Pointer
}
