package sandbox

import (
	"fmt"
	"net/http"

	"ems/internal/domain/attendance"
	"ems/internal/domain/employee"
)

var validAttendance = map[attendance.Status]bool{
	attendance.StatusPresent: true,
	attendance.StatusAbsent:  true,
	attendance.StatusLate:    true,
	attendance.StatusHalfDay: true,
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	raw, ok := pathID(w, r, "employeeId")
	if !ok {
		return
	}
	status := attendance.Status(r.URL.Query().Get("status"))
	if !validAttendance[status] {
		fail(w, http.StatusBadRequest, "Invalid attendance status")
		return
	}
	rec, err := s.db.markAttendance(employee.BusinessID(raw), status)
	if err != nil {
		failErr(w, err, "Employee not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleCheckIn answers with plain text, as the real backend does.
func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	raw, ok := pathID(w, r, "employeeId")
	if !ok {
		return
	}
	id := employee.BusinessID(raw)
	if !ownOrAdmin(w, r, id) {
		return
	}
	rec, err := s.db.checkIn(id)
	if err != nil {
		failErr(w, err, "Employee not found")
		return
	}
	writeText(w, http.StatusOK, fmt.Sprintf("Check-in recorded for %s at %s", rec.EmployeeName, rec.CheckIn))
}

func (s *Server) handleTodayAttendance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.todayAttendance())
}
