package chain

import (
	"fmt"
	"strconv"

	"github.com/simonhull/kvtag/internal/types"
)

// Kind is the type of an Event.
type Kind int

const (
	KindBegin Kind = iota
	KindData
	KindEnd
)

// Event is a recorded handler call.
type Event struct {
	Source string // KindBegin
	Key    string // KindData
	Value  string // KindData
	Kind   Kind
	OK     bool // KindEnd
}

// Begin returns a begin event for source.
func Begin(source string) Event { return Event{Kind: KindBegin, Source: source} }

// Data returns a data event.
func Data(key, value string) Event { return Event{Kind: KindData, Key: key, Value: value} }

// End returns an end event.
func End(ok bool) Event { return Event{Kind: KindEnd, OK: ok} }

// String formats the event as the call it represents, e.g.
// OnData("TITLE", "Intro").
func (e Event) String() string {
	switch e.Kind {
	case KindBegin:
		return "OnBegin(" + strconv.Quote(e.Source) + ")"
	case KindData:
		return "OnData(" + strconv.Quote(e.Key) + ", " + strconv.Quote(e.Value) + ")"
	case KindEnd:
		return "OnEnd(" + strconv.FormatBool(e.OK) + ")"
	default:
		return fmt.Sprintf("Event(%d)", int(e.Kind))
	}
}

// Replay delivers events to h in order.
func Replay(h Handler, events ...Event) {
	for _, e := range events {
		switch e.Kind {
		case KindBegin:
			h.OnBegin(e.Source)
		case KindData:
			h.OnData(e.Key, e.Value)
		case KindEnd:
			h.OnEnd(e.OK)
		}
	}
}

// Collector is a terminal handler that records everything it receives.
//
// Besides the raw event log it groups data into records: a record is closed
// every time the trigger key arrives, which is how the assembled tracks leave
// the pipeline.
type Collector struct {
	Link

	trigger string
	events  []Event
	records []types.Record
	current types.Record
}

// NewCollector returns a collector that closes a record on trigger. An empty
// trigger disables grouping.
func NewCollector(trigger string) *Collector {
	return &Collector{trigger: trigger}
}

// OnBegin implements Handler.
func (c *Collector) OnBegin(source string) {
	c.Link.OnBegin(source)
	c.events = append(c.events, Begin(source))
	c.current.Reset()
}

// OnEnd implements Handler.
func (c *Collector) OnEnd(ok bool) {
	c.events = append(c.events, End(ok))
	c.current.Reset()
	c.Link.OnEnd(ok)
}

// OnData implements Handler.
func (c *Collector) OnData(key, value string) {
	c.events = append(c.events, Data(key, value))
	c.current.Add(key, value)
	if c.trigger != "" && key == c.trigger {
		c.records = append(c.records, c.current.Clone())
		c.current.Reset()
	}
	c.Link.OnData(key, value)
}

// Events returns the recorded events.
func (c *Collector) Events() []Event {
	return c.events
}

// Records returns the completed records.
func (c *Collector) Records() []types.Record {
	return c.records
}

// Lines returns the recorded events formatted with Event.String.
func (c *Collector) Lines() []string {
	lines := make([]string, len(c.events))
	for i, e := range c.events {
		lines[i] = e.String()
	}
	return lines
}
