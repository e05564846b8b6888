package sandbox

import "net/http"

const (
	recentEmployeesLimit = 5
	activitiesLimit      = 10
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.stats())
}

func (s *Server) handleRecentEmployees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.recentEmployees(recentEmployeesLimit))
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.recentActivities(activitiesLimit))
}
