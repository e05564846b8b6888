package attendance

import (
	"errors"
	"sync"

	"ems/internal/domain/employee"
)

var (
	ErrUnknownEmployee = errors.New("employee not on attendance board")
	ErrPending         = errors.New("attendance change already awaiting confirmation")
)

// Entry is one row of the board. While Pending is set, Status holds the
// speculative value and Confirmed the last value the server agreed to.
type Entry struct {
	Record    Record
	Status    Status
	Confirmed Status
	Pending   bool
}

func (e Entry) Label() string {
	if e.Pending {
		return e.Status.Label() + " (pending)"
	}
	return e.Status.Label()
}

// Board tracks today's attendance and any speculative toggles awaiting
// confirmation.
type Board struct {
	mu      sync.RWMutex
	order   []employee.BusinessID
	entries map[employee.BusinessID]*Entry
}

func NewBoard() *Board {
	return &Board{entries: map[employee.BusinessID]*Entry{}}
}

// Reset replaces the board with server records. Pending toggles are
// dropped since the reload is authoritative.
func (b *Board) Reset(records []Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.order = b.order[:0]
	b.entries = make(map[employee.BusinessID]*Entry, len(records))
	for _, r := range records {
		if _, seen := b.entries[r.EmployeeID]; !seen {
			b.order = append(b.order, r.EmployeeID)
		}
		b.entries[r.EmployeeID] = &Entry{Record: r, Status: r.Status, Confirmed: r.Status}
	}
}

// Begin marks id as pending with its toggled status and returns that
// target status.
func (b *Board) Begin(id employee.BusinessID) (Status, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entries[id]
	if !ok {
		return "", ErrUnknownEmployee
	}
	if entry.Pending {
		return "", ErrPending
	}
	entry.Pending = true
	entry.Status = entry.Confirmed.Toggled()
	return entry.Status, nil
}

// Confirm settles a pending entry with the server's record.
func (b *Board) Confirm(id employee.BusinessID, record Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entries[id]
	if !ok {
		return
	}
	if record.EmployeeID == 0 {
		record = entry.Record
		record.Status = entry.Status
	}
	entry.Record = record
	entry.Status = record.Status
	entry.Confirmed = record.Status
	entry.Pending = false
}

// Set applies a record the server accepted outside a toggle. A pending
// toggle on the same entry is settled by it. A record without an id keeps
// the entry's previous details.
func (b *Board) Set(record Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entries[record.EmployeeID]
	if !ok {
		return
	}
	if record.ID == 0 {
		status := record.Status
		record = entry.Record
		record.Status = status
	}
	entry.Record = record
	entry.Status = record.Status
	entry.Confirmed = record.Status
	entry.Pending = false
}

// Rollback restores the last confirmed status.
func (b *Board) Rollback(id employee.BusinessID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entries[id]
	if !ok {
		return
	}
	entry.Status = entry.Confirmed
	entry.Pending = false
}

func (b *Board) Get(id employee.BusinessID) (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, ok := b.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Entry, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.entries[id])
	}
	return out
}

// PresentCount counts confirmed present entries.
func (b *Board) PresentCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, entry := range b.entries {
		if entry.Confirmed.Label() == "Present" {
			n++
		}
	}
	return n
}
