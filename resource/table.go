package resource

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Insert once the table has been closed.
var ErrClosed = errors.New("resource table closed")

// Handle is an opaque reference to a located resource.
// Handle 0 is reserved and always invalid.
type Handle uint64

// Owner returns the identity of the table that issued h.
func (h Handle) Owner() uint32 {
	return uint32(h >> 32)
}

// Slot returns the 1-based slot of h within its table.
func (h Handle) Slot() uint32 {
	return uint32(h)
}

// Event types for handle lifecycle notifications.
type EventType uint8

const (
	EventIssued EventType = iota
	EventInvalidated
)

// Event represents a handle lifecycle event.
type Event struct {
	Key    any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

var tableSeq atomic.Uint32

// Table issues handles for one module. Handles are never reused within a
// table; closing the table invalidates all of them.
type Table struct {
	index     map[any]Handle
	entries   []entry
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	owner     uint32
	closed    bool
}

type entry struct {
	key   any
	value any
}

// NewTable creates an empty table with a process-unique identity.
func NewTable() *Table {
	return &Table{
		index:   make(map[any]Handle),
		entries: make([]entry, 0, 16),
		owner:   tableSeq.Add(1),
	}
}

// Insert returns the handle for key, issuing a new one on first use.
// key must be comparable.
func (t *Table) Insert(key, value any) (Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, ErrClosed
	}
	if h, ok := t.index[key]; ok {
		t.mu.Unlock()
		return h, nil
	}

	t.entries = append(t.entries, entry{key: key, value: value})
	h := Handle(uint64(t.owner)<<32 | uint64(len(t.entries)))
	t.index[key] = h
	t.mu.Unlock()

	t.notify(Event{Type: EventIssued, Handle: h, Key: key})
	return h, nil
}

// Get retrieves the host value for a handle issued by this table.
func (t *Table) Get(h Handle) (any, bool) {
	if !t.Owns(h) {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		return nil, false
	}
	idx := h.Slot() - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}
	return t.entries[idx].value, true
}

// Owns reports whether h was issued by this table, valid or not. It tells a
// stale handle apart from one that belongs to another module.
func (t *Table) Owns(h Handle) bool {
	return h != 0 && h.Owner() == t.owner
}

// Len returns the number of issued handles.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Close invalidates every handle and stops issuing new ones.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	entries := t.entries
	t.entries = nil
	t.index = nil
	t.mu.Unlock()

	for i, e := range entries {
		t.notify(Event{
			Type:   EventInvalidated,
			Handle: Handle(uint64(t.owner)<<32 | uint64(i+1)),
			Key:    e.key,
		})
	}
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}
