package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ems/internal/domain/employee"
	"ems/internal/domain/payroll"
)

func (s *Server) handleListPayroll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.listPayroll(nil))
}

func (s *Server) handlePayrollByEmployee(w http.ResponseWriter, r *http.Request) {
	raw, ok := pathID(w, r, "employeeId")
	if !ok {
		return
	}
	id := employee.BusinessID(raw)
	if !ownOrAdmin(w, r, id) {
		return
	}
	writeJSON(w, http.StatusOK, s.db.listPayroll(func(p payroll.Record) bool { return p.EmployeeID == id }))
}

func (s *Server) handlePayrollByStatus(w http.ResponseWriter, r *http.Request) {
	status := payroll.Status(chi.URLParam(r, "status"))
	if !payroll.ValidStatus(status) {
		fail(w, http.StatusBadRequest, "Invalid payroll status")
		return
	}
	writeJSON(w, http.StatusOK, s.db.listPayroll(func(p payroll.Record) bool { return p.Status == status }))
}

func (s *Server) handleUpdatePayrollStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var payload struct {
		Status payroll.Status `json:"status"`
	}
	if !decode(w, r, &payload) {
		return
	}
	if !payroll.ValidStatus(payload.Status) {
		fail(w, http.StatusBadRequest, "Invalid payroll status")
		return
	}
	rec, err := s.db.updatePayrollStatus(id, ifMatch(r), payload.Status)
	if err != nil {
		failErr(w, err, "Payroll not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGeneratePayroll(w http.ResponseWriter, r *http.Request) {
	period, err := payroll.Period(r.URL.Query().Get("ym"))
	if err != nil {
		failErr(w, err, "")
		return
	}
	if period == "" {
		period = payroll.CurrentPeriod(s.cfg.Now())
	}
	sum, err := s.db.generatePayroll(period)
	if err != nil {
		failErr(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
