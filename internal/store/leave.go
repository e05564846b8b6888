package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ems/internal/domain/leave"
)

var errNoEmployee = errors.New("no employee record is linked to this account")

// LoadLeaveRequests loads every request for admins and the caller's own
// requests otherwise.
func (s *Store) LoadLeaveRequests(ctx context.Context) Result {
	gen, identity, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	var (
		list []leave.Request
		err  error
	)
	if identity.User.IsAdmin() {
		list, err = s.client.Leave.List(ctx)
	} else {
		biz, linked := identity.BusinessID()
		if !linked {
			s.commit(gen, func() { s.leave.Replace(nil) })
			return ok()
		}
		list, err = s.client.Leave.ByEmployee(ctx, biz)
	}
	if err != nil {
		return s.loadFailed(gen, "leave.load", "Failed to fetch leave requests", err)
	}
	if !s.commit(gen, func() { s.leave.Replace(list) }) {
		return superseded()
	}
	return ok()
}

// CreateLeaveRequest submits in. A non-admin's own business id is filled
// in when EmployeeID is zero.
func (s *Store) CreateLeaveRequest(ctx context.Context, in leave.Input) Result {
	if in.EmployeeID == 0 {
		if biz, linked := s.Identity().BusinessID(); linked {
			in.EmployeeID = biz
		} else {
			return invalid(errNoEmployee)
		}
	}
	if err := in.Validate(); err != nil {
		return invalid(err)
	}
	defer s.mutate()()
	gen := s.generation()
	created, err := s.client.Leave.Create(ctx, in)
	if err != nil {
		return s.fail("leave.create", "Failed to create leave request", err)
	}
	s.commit(gen, func() { s.leave.Upsert(created) })
	return ok()
}

func (s *Store) ApproveLeave(ctx context.Context, id int64) Result {
	return s.decideLeave(ctx, id, leave.StatusApproved)
}

func (s *Store) RejectLeave(ctx context.Context, id int64) Result {
	return s.decideLeave(ctx, id, leave.StatusRejected)
}

// decideLeave refuses locally when the cached request is already decided,
// so a decision is never sent twice.
func (s *Store) decideLeave(ctx context.Context, id int64, to leave.Status) Result {
	s.mu.RLock()
	current, cached := s.leave.Get(id)
	s.mu.RUnlock()
	if cached && !leave.CanTransition(current.Status, to) {
		return Result{
			Message: fmt.Sprintf("Leave request already %s", current.Status),
			Status:  http.StatusConflict,
		}
	}

	defer s.mutate()()
	gen := s.generation()
	var (
		decided leave.Request
		err     error
	)
	if to == leave.StatusApproved {
		decided, err = s.client.Leave.Approve(ctx, id, current.Version)
	} else {
		decided, err = s.client.Leave.Reject(ctx, id, current.Version)
	}
	if err != nil {
		return s.fail("leave."+string(to), fmt.Sprintf("Failed to %s leave request", verb(to)), err)
	}
	if decided.ID == 0 {
		if !cached {
			// No echo and nothing cached to patch; the next load brings it in.
			return ok()
		}
		decided = current
	}
	if !decided.Status.Decided() {
		decided.Status = to
	}
	s.commit(gen, func() { s.patchLeave(decided) })
	return ok()
}

// patchLeave upserts r without ever moving a decided request back.
func (s *Store) patchLeave(r leave.Request) {
	if existing, ok := s.leave.Get(r.ID); ok && existing.Status.Decided() && !r.Status.Decided() {
		r.Status = existing.Status
	}
	s.leave.Upsert(r)
}

func verb(to leave.Status) string {
	if to == leave.StatusApproved {
		return "approve"
	}
	return "reject"
}

func (s *Store) LeaveRequests(f leave.Filter) []leave.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return leave.Apply(s.leave.All(), f)
}

func (s *Store) LeaveRequest(id int64) (leave.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leave.Get(id)
}
