// Package sandbox is an in-memory implementation of the employee
// management REST backend, used for local runs and end-to-end tests.
package sandbox

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Config struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	Seed          bool
	// LoginRateLimit caps signin attempts per email per minute; zero
	// disables the limit.
	LoginRateLimit int
	// Now overrides the clock; nil uses time.Now.
	Now func() time.Time
}

type Server struct {
	cfg    Config
	db     *db
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if len(cfg.JWTSecret) < 16 {
		return nil, errors.New("sandbox jwt secret must be at least 16 characters")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 8 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{cfg: cfg, db: newDB(cfg.Now), logger: logger}
	if cfg.Seed {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(Logger(s.logger))
	router.Use(SecureHeaders)
	router.Use(BodyLimit(maxBodyBytes))
	router.Use(Authenticate(s.cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, "ok")
	})

	router.Route("/api", func(r chi.Router) {
		r.With(LoginRateLimit(s.cfg.LoginRateLimit, time.Minute, s.cfg.Now, s.logger)).Post("/auth/signin", s.handleSignin)
		r.Post("/auth/signup", s.handleSignup)

		r.Group(func(r chi.Router) {
			r.Use(RequireUser)

			r.Get("/employees", s.handleListEmployees)
			r.Get("/employees/search", s.handleSearchEmployees)
			r.Get("/employees/{id}", s.handleGetEmployee)
			r.Get("/departments", s.handleListDepartments)
			r.Get("/departments/{id}", s.handleGetDepartment)
			r.Get("/departments/{id}/employees", s.handleDepartmentEmployees)

			r.Get("/leave-requests/{employeeId}", s.handleLeaveByEmployee)
			r.Post("/leave-requests/post/leave", s.handleCreateLeave)
			r.Put("/leave-requests/{id}", s.handleUpdateLeave)

			r.Put("/attendance/addcheckin/{employeeId}", s.handleCheckIn)
			r.Get("/attendance/today", s.handleTodayAttendance)

			r.Get("/payrolls/employee/{employeeId}", s.handlePayrollByEmployee)

			r.Get("/performance-reviews", s.handleListReviews)
			r.Get("/performance-reviews/employee/{employeeId}", s.handleReviewsByEmployee)

			r.Get("/dashboard/stats", s.handleStats)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Post("/employees", s.handleCreateEmployee)
			r.Put("/employees/{id}", s.handleUpdateEmployee)
			r.Delete("/employees/{id}", s.handleDeleteEmployee)

			r.Post("/departments", s.handleCreateDepartment)
			r.Put("/departments/{id}", s.handleUpdateDepartment)
			r.Delete("/departments/{id}", s.handleDeleteDepartment)

			r.Get("/leave-requests/leave", s.handleListLeave)
			r.Put("/leave-requests/{id}/approve", s.handleApproveLeave)
			r.Put("/leave-requests/{id}/reject", s.handleRejectLeave)

			r.Put("/attendance/mark/{employeeId}", s.handleMarkAttendance)

			r.Get("/payrolls", s.handleListPayroll)
			r.Get("/payrolls/status/{status}", s.handlePayrollByStatus)
			r.Put("/payrolls/{id}/status", s.handleUpdatePayrollStatus)
			r.Post("/payrolls/generate", s.handleGeneratePayroll)

			r.Post("/performance-reviews", s.handleCreateReview)
			r.Put("/performance-reviews/{id}", s.handleUpdateReview)
			r.Delete("/performance-reviews/{id}", s.handleDeleteReview)

			r.Get("/dashboard/recent-employees", s.handleRecentEmployees)
			r.Get("/dashboard/activities", s.handleActivities)
		})
	})

	return router
}
