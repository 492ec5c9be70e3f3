package html

// EventKind tells which of the three markup events an Event is
type EventKind int

const (
	EventOpen EventKind = iota
	EventText
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventText:
		return "text"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Event is one item of the document-order stream consumed by the tree
// builder. Entities are already decoded.
type Event struct {
	Kind  EventKind
	Tag   string            // open and close events
	Attrs map[string]string // open events only
	Text  string            // text events only
}

// Source delivers events in document order. Next returns false once the
// stream is exhausted.
type Source interface {
	Next() (Event, bool)
}

// sliceSource replays a prepared event list
type sliceSource struct {
	events []Event
}

func (s *sliceSource) Next() (Event, bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

// Events returns a Source replaying events
func Events(events ...Event) Source {
	return &sliceSource{events: events}
}

// voidTags never have content and are never left open
var voidTags = map[string]bool{
	"br":    true,
	"img":   true,
	"hr":    true,
	"input": true,
}

// IsVoid reports whether tag is a void element
func IsVoid(tag string) bool {
	return voidTags[tag]
}

// StyleTag is the element whose content is style-sheet text
const StyleTag = "style"
