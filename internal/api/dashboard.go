package api

import (
	"context"
	"net/http"

	"ems/internal/domain/dashboard"
	"ems/internal/domain/employee"
)

type DashboardService struct{ c *Client }

func (s *DashboardService) Stats(ctx context.Context) (dashboard.Stats, error) {
	var out dashboard.Stats
	err := s.c.do(ctx, call{op: "dashboard.stats", method: http.MethodGet, path: "/dashboard/stats"}, &out)
	return out, err
}

func (s *DashboardService) RecentEmployees(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	err := s.c.do(ctx, call{op: "dashboard.recentEmployees", method: http.MethodGet, path: "/dashboard/recent-employees"}, &out)
	return out, err
}

func (s *DashboardService) Activities(ctx context.Context) ([]dashboard.Activity, error) {
	var out []dashboard.Activity
	err := s.c.do(ctx, call{op: "dashboard.activities", method: http.MethodGet, path: "/dashboard/activities"}, &out)
	return out, err
}
