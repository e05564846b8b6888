package api

import (
	"context"
	"net/http"
	"net/url"

	"ems/internal/domain/employee"
	"ems/internal/domain/payroll"
)

type PayrollService struct{ c *Client }

func (s *PayrollService) List(ctx context.Context) ([]payroll.Record, error) {
	var out []payroll.Record
	err := s.c.do(ctx, call{op: "payroll.list", method: http.MethodGet, path: "/payrolls"}, &out)
	return out, err
}

func (s *PayrollService) ByEmployee(ctx context.Context, id employee.BusinessID) ([]payroll.Record, error) {
	var out []payroll.Record
	err := s.c.do(ctx, call{op: "payroll.byEmployee", method: http.MethodGet, path: idPath("/payrolls/employee", int64(id))}, &out)
	return out, err
}

func (s *PayrollService) ByStatus(ctx context.Context, status payroll.Status) ([]payroll.Record, error) {
	var out []payroll.Record
	err := s.c.do(ctx, call{op: "payroll.byStatus", method: http.MethodGet, path: "/payrolls/status/" + url.PathEscape(string(status))}, &out)
	return out, err
}

func (s *PayrollService) UpdateStatus(ctx context.Context, id, version int64, status payroll.Status) (payroll.Record, error) {
	var out payroll.Record
	body := map[string]payroll.Status{"status": status}
	err := s.c.do(ctx, call{op: "payroll.updateStatus", method: http.MethodPut, path: idPath("/payrolls", id, "status"), body: body, version: version}, &out)
	return out, err
}

// Generate creates payroll records for ym (YYYY-MM). An empty ym lets the
// backend pick the current month.
func (s *PayrollService) Generate(ctx context.Context, ym string) (payroll.GenerateSummary, error) {
	var out payroll.GenerateSummary
	var query url.Values
	if ym != "" {
		query = url.Values{"ym": {ym}}
	}
	err := s.c.do(ctx, call{op: "payroll.generate", method: http.MethodPost, path: "/payrolls/generate", query: query}, &out)
	return out, err
}
