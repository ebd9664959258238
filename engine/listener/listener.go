// Package listener is the priority-ordered, filterable table of event handlers a
// viewer dispatches events through.
package listener

import (
	"slices"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/event"
)

// Handler receives events that passed an entry's filters.
// Implementations must be comparable (usually pointer types): entries are
// removed by value equality, and comparing non-comparable handlers panics.
type Handler interface {
	Handle(e event.Event)
}

type funcHandler struct {
	fn func(e event.Event)
}

func (h *funcHandler) Handle(e event.Event) {
	h.fn(e)
}

// NewHandler wraps fn in a comparable Handler. Keep the result to remove the
// entry later. A nil fn yields a nil Handler.
//
// Parameters:
//   - fn: the function to call
//
// Returns:
//   - Handler: the wrapping handler
func NewHandler(fn func(e event.Event)) Handler {
	if fn == nil {
		return nil
	}
	return &funcHandler{fn: fn}
}

// Entry is one registered listener.
type Entry struct {
	// Priority orders dispatch, lowest first.
	Priority int

	// FilterKeys requires the event's keys down to equal Keys exactly.
	FilterKeys bool
	Keys       event.KeySet

	// FilterButtons requires the event's buttons down to equal Buttons exactly.
	FilterButtons bool
	Buttons       event.ButtonSet

	Handler Handler
}

// Matches reports whether every filter the entry declares accepts e.
//
// Parameters:
//   - e: the event being dispatched
//
// Returns:
//   - bool: true if the handler should be invoked
func (en Entry) Matches(e event.Event) bool {
	if en.FilterKeys && e.KeysDown() != en.Keys {
		return false
	}
	if en.FilterButtons && e.ButtonsDown() != en.Buttons {
		return false
	}
	return true
}

// Table maps event types to listener entries sorted ascending by priority.
// Entries of equal priority have no guaranteed relative order: the sort is not
// stable and adding or removing an entry may reorder ties.
type Table struct {
	mu      sync.Mutex
	entries map[event.Type][]Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[event.Type][]Entry)}
}

// Add registers e for events of type t. Entries without a handler are ignored.
func (tb *Table) Add(t event.Type, e Entry) {
	if e.Handler == nil {
		return
	}
	tb.mu.Lock()
	defer tb.mu.Unlock()
	list := append(tb.entries[t], e)
	sortEntries(list)
	tb.entries[t] = list
}

// Remove unregisters the first entry equal to e. When no entries remain for t,
// the type is dropped from the table.
//
// Returns:
//   - bool: true if an entry was removed
func (tb *Table) Remove(t event.Type, e Entry) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	list := tb.entries[t]
	i := slices.Index(list, e)
	if i < 0 {
		return false
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(tb.entries, t)
		return true
	}
	sortEntries(list)
	tb.entries[t] = list
	return true
}

// Set replaces every entry for t. Entries without a handler are skipped and an
// empty result drops the type.
func (tb *Table) Set(t event.Type, entries []Entry) {
	list := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Handler != nil {
			list = append(list, e)
		}
	}
	sortEntries(list)

	tb.mu.Lock()
	defer tb.mu.Unlock()
	if len(list) == 0 {
		delete(tb.entries, t)
		return
	}
	tb.entries[t] = list
}

// Get returns a copy of the entries for t in dispatch order.
func (tb *Table) Get(t event.Type) []Entry {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return slices.Clone(tb.entries[t])
}

func (tb *Table) Clear(t event.Type) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	delete(tb.entries, t)
}

func (tb *Table) ClearAll() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	clear(tb.entries)
}

// Len returns the number of entries for t.
func (tb *Table) Len(t event.Type) int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.entries[t])
}

// Types returns the event types that have entries, ascending.
func (tb *Table) Types() []event.Type {
	tb.mu.Lock()
	out := make([]event.Type, 0, len(tb.entries))
	for t := range tb.entries {
		out = append(out, t)
	}
	tb.mu.Unlock()
	slices.Sort(out)
	return out
}

// Notify dispatches e to the matching entries of its type, in priority order,
// on the calling goroutine. The entries are snapshotted first, so handlers may
// edit the table.
//
// Parameters:
//   - e: the event to dispatch
//
// Returns:
//   - int: the number of handlers invoked
func (tb *Table) Notify(e event.Event) int {
	if e == nil {
		return 0
	}
	n := 0
	for _, en := range tb.Get(e.Type()) {
		if en.Matches(e) {
			en.Handler.Handle(e)
			n++
		}
	}
	return n
}

func sortEntries(list []Entry) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Priority < list[j].Priority
	})
}
