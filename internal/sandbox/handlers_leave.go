package sandbox

import (
	"net/http"

	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
)

func (s *Server) handleListLeave(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.listLeave(nil))
}

func (s *Server) handleLeaveByEmployee(w http.ResponseWriter, r *http.Request) {
	raw, ok := pathID(w, r, "employeeId")
	if !ok {
		return
	}
	id := employee.BusinessID(raw)
	if !ownOrAdmin(w, r, id) {
		return
	}
	writeJSON(w, http.StatusOK, s.db.listLeave(func(req leave.Request) bool { return req.EmployeeID == id }))
}

func (s *Server) handleCreateLeave(w http.ResponseWriter, r *http.Request) {
	var in leave.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	if !ownOrAdmin(w, r, in.EmployeeID) {
		return
	}
	req, err := s.db.createLeave(in)
	if err != nil {
		failErr(w, err, "Employee not found")
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleUpdateLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in leave.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	if !ownOrAdmin(w, r, in.EmployeeID) {
		return
	}
	req, err := s.db.updateLeave(id, ifMatch(r), in)
	if err != nil {
		failErr(w, err, "Leave request not found")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleApproveLeave(w http.ResponseWriter, r *http.Request) {
	s.decideLeave(w, r, leave.StatusApproved)
}

func (s *Server) handleRejectLeave(w http.ResponseWriter, r *http.Request) {
	s.decideLeave(w, r, leave.StatusRejected)
}

func (s *Server) decideLeave(w http.ResponseWriter, r *http.Request, to leave.Status) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, err := s.db.decideLeave(id, ifMatch(r), to)
	if err != nil {
		failErr(w, err, "Leave request not found")
		return
	}
	writeJSON(w, http.StatusOK, req)
}
