package store

import (
	"context"
	"fmt"
	"net/http"

	"ems/internal/domain/payroll"
)

// LoadPayrolls loads every record for admins and the caller's own
// records otherwise.
func (s *Store) LoadPayrolls(ctx context.Context) Result {
	gen, identity, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	var (
		list []payroll.Record
		err  error
	)
	if identity.User.IsAdmin() {
		list, err = s.client.Payroll.List(ctx)
	} else {
		biz, linked := identity.BusinessID()
		if !linked {
			return invalid(errNoEmployee)
		}
		list, err = s.client.Payroll.ByEmployee(ctx, biz)
	}
	if err != nil {
		return s.loadFailed(gen, "payroll.load", "Failed to fetch payrolls", err)
	}
	if !s.commit(gen, func() { s.payrolls.Replace(list) }) {
		return superseded()
	}
	return ok()
}

// LoadPayrollsByStatus replaces the cache with records in status.
func (s *Store) LoadPayrollsByStatus(ctx context.Context, status payroll.Status) Result {
	if !payroll.ValidStatus(status) {
		return invalid(fmt.Errorf("unknown payroll status %q", status))
	}
	gen, _, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	list, err := s.client.Payroll.ByStatus(ctx, status)
	if err != nil {
		return s.loadFailed(gen, "payroll.loadByStatus", "Failed to fetch payrolls", err)
	}
	if !s.commit(gen, func() { s.payrolls.Replace(list) }) {
		return superseded()
	}
	return ok()
}

func (s *Store) UpdatePayrollStatus(ctx context.Context, id int64, status payroll.Status) Result {
	s.mu.RLock()
	current, cached := s.payrolls.Get(id)
	s.mu.RUnlock()
	if cached && !payroll.CanTransition(current.Status, status) {
		return Result{
			Message: fmt.Sprintf("Cannot move payroll from %s to %s", current.Status, status),
			Status:  http.StatusConflict,
		}
	}
	defer s.mutate()()
	gen := s.generation()
	updated, err := s.client.Payroll.UpdateStatus(ctx, id, current.Version, status)
	if err != nil {
		return s.fail("payroll.updateStatus", "Failed to update payroll status", err)
	}
	s.commit(gen, func() { s.payrolls.Upsert(updated) })
	return ok()
}

// GeneratePayroll creates records for ym (YYYY-MM, empty for the current
// month) and reloads the cache.
func (s *Store) GeneratePayroll(ctx context.Context, ym string) Result {
	period, err := payroll.Period(ym)
	if err != nil {
		return invalid(err)
	}
	done := s.mutate()
	summary, err := s.client.Payroll.Generate(ctx, period)
	done()
	if err != nil {
		return s.fail("payroll.generate", "Failed to generate payroll", err)
	}
	if res := s.LoadPayrolls(ctx); !res.Success {
		return res
	}
	msg := summary.Message
	if msg == "" {
		msg = fmt.Sprintf("Generated %d payroll record(s)", summary.Generated)
	}
	return Result{Success: true, Message: msg}
}

func (s *Store) Payrolls() []payroll.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payrolls.All()
}

func (s *Store) Payroll(id int64) (payroll.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payrolls.Get(id)
}
