package api

import (
	"context"
	"net/http"

	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
)

type LeaveService struct{ c *Client }

func (s *LeaveService) List(ctx context.Context) ([]leave.Request, error) {
	var out []leave.Request
	err := s.c.do(ctx, call{op: "leave.list", method: http.MethodGet, path: "/leave-requests/leave"}, &out)
	return out, err
}

func (s *LeaveService) ByEmployee(ctx context.Context, id employee.BusinessID) ([]leave.Request, error) {
	var out []leave.Request
	err := s.c.do(ctx, call{op: "leave.byEmployee", method: http.MethodGet, path: idPath("/leave-requests", int64(id))}, &out)
	return out, err
}

func (s *LeaveService) Create(ctx context.Context, in leave.Input) (leave.Request, error) {
	var out leave.Request
	err := s.c.do(ctx, call{op: "leave.create", method: http.MethodPost, path: "/leave-requests/post/leave", body: in}, &out)
	return out, err
}

func (s *LeaveService) Update(ctx context.Context, id, version int64, in leave.Input) (leave.Request, error) {
	var out leave.Request
	err := s.c.do(ctx, call{op: "leave.update", method: http.MethodPut, path: idPath("/leave-requests", id), body: in, version: version}, &out)
	return out, err
}

func (s *LeaveService) Approve(ctx context.Context, id, version int64) (leave.Request, error) {
	var out leave.Request
	err := s.c.do(ctx, call{op: "leave.approve", method: http.MethodPut, path: idPath("/leave-requests", id, "approve"), version: version}, &out)
	return out, err
}

func (s *LeaveService) Reject(ctx context.Context, id, version int64) (leave.Request, error) {
	var out leave.Request
	err := s.c.do(ctx, call{op: "leave.reject", method: http.MethodPut, path: idPath("/leave-requests", id, "reject"), version: version}, &out)
	return out, err
}
