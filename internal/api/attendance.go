package api

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"ems/internal/domain/attendance"
	"ems/internal/domain/employee"
)

// markAllLimit bounds concurrent calls made by MarkAll.
const markAllLimit = 4

type AttendanceService struct{ c *Client }

func (s *AttendanceService) Mark(ctx context.Context, id employee.BusinessID, status attendance.Status) (attendance.Record, error) {
	var out attendance.Record
	err := s.c.do(ctx, call{
		op:     "attendance.mark",
		method: http.MethodPut,
		path:   idPath("/attendance/mark", int64(id)),
		query:  url.Values{"status": {string(status)}},
	}, &out)
	return out, err
}

// CheckIn records a check-in and returns the backend's confirmation text.
func (s *AttendanceService) CheckIn(ctx context.Context, id employee.BusinessID) (string, error) {
	var out string
	err := s.c.do(ctx, call{op: "attendance.checkIn", method: http.MethodPut, path: idPath("/attendance/addcheckin", int64(id))}, &out)
	return out, err
}

func (s *AttendanceService) Today(ctx context.Context) ([]attendance.Record, error) {
	var out []attendance.Record
	err := s.c.do(ctx, call{op: "attendance.today", method: http.MethodGet, path: "/attendance/today"}, &out)
	return out, err
}

// MarkAll marks every entry concurrently and keeps going past failures.
// It returns the records saved, in input order, with the first error. A
// reply without a body is reported as the mark that was sent.
func (s *AttendanceService) MarkAll(ctx context.Context, marks []attendance.Mark) ([]attendance.Record, error) {
	out := make([]attendance.Record, len(marks))
	saved := make([]bool, len(marks))
	var g errgroup.Group
	g.SetLimit(markAllLimit)
	for i, m := range marks {
		g.Go(func() error {
			rec, err := s.Mark(ctx, m.EmployeeID, m.Status)
			if err != nil {
				return err
			}
			if rec.EmployeeID == 0 {
				rec.EmployeeID, rec.Status = m.EmployeeID, m.Status
			}
			out[i], saved[i] = rec, true
			return nil
		})
	}
	err := g.Wait()
	records := make([]attendance.Record, 0, len(marks))
	for i, rec := range out {
		if saved[i] {
			records = append(records, rec)
		}
	}
	return records, err
}
