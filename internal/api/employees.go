package api

import (
	"context"
	"net/http"
	"net/url"

	"ems/internal/domain/employee"
)

type EmployeeService struct{ c *Client }

func (s *EmployeeService) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	err := s.c.do(ctx, call{op: "employees.list", method: http.MethodGet, path: "/employees"}, &out)
	return out, err
}

func (s *EmployeeService) Get(ctx context.Context, id employee.StorageID) (employee.Employee, error) {
	var out employee.Employee
	err := s.c.do(ctx, call{op: "employees.get", method: http.MethodGet, path: idPath("/employees", int64(id))}, &out)
	return out, err
}

func (s *EmployeeService) Create(ctx context.Context, in employee.Input) (employee.Employee, error) {
	var out employee.Employee
	err := s.c.do(ctx, call{op: "employees.create", method: http.MethodPost, path: "/employees", body: in}, &out)
	return out, err
}

// Update replaces an employee. A non-zero version is sent as If-Match.
func (s *EmployeeService) Update(ctx context.Context, id employee.StorageID, version int64, in employee.Input) (employee.Employee, error) {
	var out employee.Employee
	err := s.c.do(ctx, call{op: "employees.update", method: http.MethodPut, path: idPath("/employees", int64(id)), body: in, version: version}, &out)
	return out, err
}

func (s *EmployeeService) Delete(ctx context.Context, id employee.StorageID) error {
	return s.c.do(ctx, call{op: "employees.delete", method: http.MethodDelete, path: idPath("/employees", int64(id))}, nil)
}

func (s *EmployeeService) Search(ctx context.Context, query string) ([]employee.Employee, error) {
	var out []employee.Employee
	err := s.c.do(ctx, call{op: "employees.search", method: http.MethodGet, path: "/employees/search", query: url.Values{"q": {query}}}, &out)
	return out, err
}
