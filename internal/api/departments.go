package api

import (
	"context"
	"net/http"

	"ems/internal/domain/department"
	"ems/internal/domain/employee"
)

type DepartmentService struct{ c *Client }

func (s *DepartmentService) List(ctx context.Context) ([]department.Department, error) {
	var out []department.Department
	err := s.c.do(ctx, call{op: "departments.list", method: http.MethodGet, path: "/departments"}, &out)
	return out, err
}

func (s *DepartmentService) Get(ctx context.Context, id int64) (department.Department, error) {
	var out department.Department
	err := s.c.do(ctx, call{op: "departments.get", method: http.MethodGet, path: idPath("/departments", id)}, &out)
	return out, err
}

func (s *DepartmentService) Create(ctx context.Context, in department.Input) (department.Department, error) {
	var out department.Department
	err := s.c.do(ctx, call{op: "departments.create", method: http.MethodPost, path: "/departments", body: in}, &out)
	return out, err
}

func (s *DepartmentService) Update(ctx context.Context, id, version int64, in department.Input) (department.Department, error) {
	var out department.Department
	err := s.c.do(ctx, call{op: "departments.update", method: http.MethodPut, path: idPath("/departments", id), body: in, version: version}, &out)
	return out, err
}

func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, call{op: "departments.delete", method: http.MethodDelete, path: idPath("/departments", id)}, nil)
}

func (s *DepartmentService) Employees(ctx context.Context, id int64) ([]employee.Employee, error) {
	var out []employee.Employee
	err := s.c.do(ctx, call{op: "departments.employees", method: http.MethodGet, path: idPath("/departments", id, "employees")}, &out)
	return out, err
}
