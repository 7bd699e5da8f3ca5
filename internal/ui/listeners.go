package ui

// EventKind selects which global events a listener receives.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventKeyDown
)

func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "pointerdown"
	case EventKeyDown:
		return "keydown"
	}
	return "unknown"
}

// Event is a global input event as seen by listeners.
type Event interface {
	Kind() EventKind
}

// PointerDownEvent is a mouse button press at terminal cell (X, Y).
type PointerDownEvent struct {
	X, Y int
}

func (PointerDownEvent) Kind() EventKind { return EventPointerDown }

// KeyDownEvent is a key press; Key uses bubbletea's key names ("esc", "a", "ctrl+c").
type KeyDownEvent struct {
	Key string
}

func (KeyDownEvent) Kind() EventKind { return EventKeyDown }

// Listener handles one global event.
type Listener func(Event)

// ListenerID identifies a registration for Remove. Zero is never issued.
type ListenerID uint64

type listenerEntry struct {
	id   ListenerID
	kind EventKind
	fn   Listener
}

// Listeners is the program-wide event target, the terminal counterpart of a
// document's addEventListener/removeEventListener. The App feeds every key
// press and mouse press through Dispatch; components register only for the
// time they need global input.
//
// Not safe for concurrent use; it lives on the bubbletea Update goroutine.
type Listeners struct {
	nextID  ListenerID
	entries []listenerEntry
}

// NewListeners returns an empty registry.
func NewListeners() *Listeners {
	return &Listeners{}
}

// Add registers fn for events of kind and returns its ID.
func (l *Listeners) Add(kind EventKind, fn Listener) ListenerID {
	l.nextID++
	l.entries = append(l.entries, listenerEntry{id: l.nextID, kind: kind, fn: fn})
	return l.nextID
}

// Remove unregisters id. It reports whether the id was registered.
func (l *Listeners) Remove(id ListenerID) bool {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns how many listeners are registered for kind.
func (l *Listeners) Count(kind EventKind) int {
	n := 0
	for _, e := range l.entries {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// Len returns the total number of registered listeners.
func (l *Listeners) Len() int {
	return len(l.entries)
}

// Dispatch delivers ev to every listener of its kind in registration order
// and returns how many ran. A listener removed by an earlier listener during
// the same dispatch is skipped.
func (l *Listeners) Dispatch(ev Event) int {
	kind := ev.Kind()
	var ids []ListenerID
	for _, e := range l.entries {
		if e.kind == kind {
			ids = append(ids, e.id)
		}
	}

	ran := 0
	for _, id := range ids {
		fn := l.lookup(id)
		if fn == nil {
			continue
		}
		fn(ev)
		ran++
	}
	return ran
}

func (l *Listeners) lookup(id ListenerID) Listener {
	for _, e := range l.entries {
		if e.id == id {
			return e.fn
		}
	}
	return nil
}
