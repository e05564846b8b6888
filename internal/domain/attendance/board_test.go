package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggled(t *testing.T) {
	assert.Equal(t, StatusAbsent, StatusPresent.Toggled())
	assert.Equal(t, StatusAbsent, StatusLate.Toggled())
	assert.Equal(t, StatusAbsent, StatusHalfDay.Toggled())
	assert.Equal(t, StatusPresent, StatusAbsent.Toggled())
	assert.Equal(t, "Absent", Status("").Label())
}

func TestBoardBeginConfirm(t *testing.T) {
	b := NewBoard()
	b.Reset([]Record{{EmployeeID: 112, Status: StatusAbsent}, {EmployeeID: 113, Status: StatusPresent}})

	target, err := b.Begin(112)
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, target)

	entry, ok := b.Get(112)
	require.True(t, ok)
	assert.True(t, entry.Pending)
	assert.Equal(t, "Present (pending)", entry.Label())
	assert.Equal(t, StatusAbsent, entry.Confirmed)
	assert.Equal(t, 1, b.PresentCount(), "pending changes are not counted")

	_, err = b.Begin(112)
	assert.ErrorIs(t, err, ErrPending)

	b.Confirm(112, Record{ID: 7, EmployeeID: 112, Status: StatusPresent, CheckIn: "09:01"})
	entry, _ = b.Get(112)
	assert.False(t, entry.Pending)
	assert.Equal(t, StatusPresent, entry.Confirmed)
	assert.Equal(t, "09:01", entry.Record.CheckIn)
	assert.Equal(t, 2, b.PresentCount())
}

func TestBoardRollback(t *testing.T) {
	b := NewBoard()
	b.Reset([]Record{{EmployeeID: 112, Status: StatusPresent}})

	_, err := b.Begin(112)
	require.NoError(t, err)
	b.Rollback(112)

	entry, _ := b.Get(112)
	assert.False(t, entry.Pending)
	assert.Equal(t, StatusPresent, entry.Status)
	assert.Equal(t, "Present", entry.Label())
}

func TestBoardConfirmWithoutServerRecord(t *testing.T) {
	b := NewBoard()
	b.Reset([]Record{{ID: 3, EmployeeID: 112, Status: StatusPresent}})

	_, err := b.Begin(112)
	require.NoError(t, err)
	b.Confirm(112, Record{})

	entry, _ := b.Get(112)
	assert.Equal(t, StatusAbsent, entry.Confirmed)
	assert.Equal(t, int64(3), entry.Record.ID)
}

func TestBoardUnknownEmployee(t *testing.T) {
	b := NewBoard()
	_, err := b.Begin(1)
	assert.ErrorIs(t, err, ErrUnknownEmployee)
}

func TestBoardResetKeepsOrder(t *testing.T) {
	b := NewBoard()
	b.Reset([]Record{{EmployeeID: 3}, {EmployeeID: 1}, {EmployeeID: 2}, {EmployeeID: 1, Status: StatusPresent}})

	entries := b.Entries()
	require.Len(t, entries, 3)
	assert.EqualValues(t, 3, entries[0].Record.EmployeeID)
	assert.EqualValues(t, 1, entries[1].Record.EmployeeID)
	assert.Equal(t, StatusPresent, entries[1].Status)
}

func TestBoardSetSettlesPending(t *testing.T) {
	b := NewBoard()
	b.Reset([]Record{{ID: 3, EmployeeID: 112, Status: StatusAbsent, CheckIn: "08:55"}, {EmployeeID: 113}})

	_, err := b.Begin(112)
	require.NoError(t, err)
	b.Set(Record{EmployeeID: 112, Status: StatusLate})

	entry, _ := b.Get(112)
	assert.False(t, entry.Pending)
	assert.Equal(t, StatusLate, entry.Status)
	assert.Equal(t, StatusLate, entry.Confirmed)
	assert.Equal(t, int64(3), entry.Record.ID)
	assert.Equal(t, "08:55", entry.Record.CheckIn)

	b.Set(Record{ID: 9, EmployeeID: 113, Status: StatusHalfDay})
	entry, _ = b.Get(113)
	assert.Equal(t, int64(9), entry.Record.ID)

	b.Set(Record{EmployeeID: 500, Status: StatusPresent})
	_, ok := b.Get(500)
	assert.False(t, ok)
}

func TestStatusAndMarkValidation(t *testing.T) {
	assert.True(t, StatusHalfDay.Valid())
	assert.False(t, Status("presnt").Valid())
	assert.False(t, Status("").Valid())

	require.NoError(t, Mark{EmployeeID: 1001, Status: StatusPresent}.Validate())
	assert.EqualError(t, Mark{EmployeeID: 1001, Status: "presnt"}.Validate(), "status must be one of: present absent late half-day")
	assert.EqualError(t, Mark{Status: StatusAbsent}.Validate(), "employeeId is required")
}
