package api

import (
	"context"
	"net/http"

	"ems/internal/domain/employee"
	"ems/internal/domain/performance"
)

type PerformanceService struct{ c *Client }

func (s *PerformanceService) List(ctx context.Context) ([]performance.Review, error) {
	var out []performance.Review
	err := s.c.do(ctx, call{op: "performance.list", method: http.MethodGet, path: "/performance-reviews"}, &out)
	return out, err
}

func (s *PerformanceService) ByEmployee(ctx context.Context, id employee.BusinessID) ([]performance.Review, error) {
	var out []performance.Review
	err := s.c.do(ctx, call{op: "performance.byEmployee", method: http.MethodGet, path: idPath("/performance-reviews/employee", int64(id))}, &out)
	return out, err
}

func (s *PerformanceService) Create(ctx context.Context, in performance.Input) (performance.Review, error) {
	var out performance.Review
	err := s.c.do(ctx, call{op: "performance.create", method: http.MethodPost, path: "/performance-reviews", body: in}, &out)
	return out, err
}

// Update sends only the editable fields; employee and period are fixed.
func (s *PerformanceService) Update(ctx context.Context, id, version int64, in performance.Update) (performance.Review, error) {
	var out performance.Review
	err := s.c.do(ctx, call{op: "performance.update", method: http.MethodPut, path: idPath("/performance-reviews", id), body: in, version: version}, &out)
	return out, err
}

func (s *PerformanceService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, call{op: "performance.delete", method: http.MethodDelete, path: idPath("/performance-reviews", id)}, nil)
}
