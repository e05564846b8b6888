package sandbox

import (
	"net/http"

	"ems/internal/domain/employee"
	"ems/internal/domain/performance"
)

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.listReviews(nil))
}

func (s *Server) handleReviewsByEmployee(w http.ResponseWriter, r *http.Request) {
	raw, ok := pathID(w, r, "employeeId")
	if !ok {
		return
	}
	id := employee.BusinessID(raw)
	writeJSON(w, http.StatusOK, s.db.listReviews(func(rv performance.Review) bool { return rv.EmployeeID == id }))
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var in performance.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	rv, err := s.db.createReview(in)
	if err != nil {
		failErr(w, err, "Employee not found")
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in performance.Update
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	rv, err := s.db.updateReview(id, ifMatch(r), in)
	if err != nil {
		failErr(w, err, "Performance review not found")
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.deleteReview(id); err != nil {
		failErr(w, err, "Performance review not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
