package store

import (
	"context"
	"errors"
	"fmt"

	"ems/internal/domain/attendance"
	"ems/internal/domain/employee"
)

// LoadAttendance reloads today's records. Pending toggles are dropped.
func (s *Store) LoadAttendance(ctx context.Context) Result {
	gen, _, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	records, err := s.client.Attendance.Today(ctx)
	if err != nil {
		return s.loadFailed(gen, "attendance.load", "Failed to fetch attendance", err)
	}
	if !s.commit(gen, func() { s.board.Reset(records) }) {
		return superseded()
	}
	return ok()
}

// ToggleAttendance flips an employee between present and absent. The
// board shows the new status as pending until the server answers; a
// failure rolls it back.
func (s *Store) ToggleAttendance(ctx context.Context, id employee.BusinessID) Result {
	target, err := s.board.Begin(id)
	if err != nil {
		return invalid(err)
	}
	defer s.mutate()()
	gen := s.generation()
	record, err := s.client.Attendance.Mark(ctx, id, target)
	if err != nil {
		s.commit(gen, func() { s.board.Rollback(id) })
		return s.fail("attendance.toggle", "Failed to update attendance", err)
	}
	s.commit(gen, func() { s.board.Confirm(id, record) })
	return ok()
}

// MarkAll saves a whole day's sheet. Every mark is checked before any call
// is made. Entries the server saved are applied to the board even when
// another entry fails, and settle any pending toggle on the same employee.
func (s *Store) MarkAll(ctx context.Context, marks []attendance.Mark) Result {
	if len(marks) == 0 {
		return invalid(errors.New("nothing to save"))
	}
	for _, m := range marks {
		if err := m.Validate(); err != nil {
			return invalid(fmt.Errorf("employee %d: %w", m.EmployeeID, err))
		}
	}
	defer s.mutate()()
	gen := s.generation()
	records, err := s.client.Attendance.MarkAll(ctx, marks)
	s.commit(gen, func() {
		for _, rec := range records {
			s.board.Set(rec)
		}
	})
	if err != nil {
		return s.fail("attendance.markAll", "Failed to save attendance", err)
	}
	return ok()
}

// CheckIn records the caller's own check-in and returns the server's
// confirmation text as the message.
func (s *Store) CheckIn(ctx context.Context) Result {
	biz, linked := s.Identity().BusinessID()
	if !linked {
		return invalid(errNoEmployee)
	}
	defer s.mutate()()
	msg, err := s.client.Attendance.CheckIn(ctx, biz)
	if err != nil {
		return s.fail("attendance.checkIn", "Failed to check in", err)
	}
	return Result{Success: true, Message: msg}
}

func (s *Store) Attendance() []attendance.Entry {
	return s.board.Entries()
}

func (s *Store) AttendanceEntry(id employee.BusinessID) (attendance.Entry, bool) {
	return s.board.Get(id)
}
