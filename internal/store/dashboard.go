package store

import (
	"context"

	"ems/internal/domain/dashboard"
	"ems/internal/domain/employee"
)

func (s *Store) LoadStats(ctx context.Context) Result {
	gen, _, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	stats, err := s.client.Dashboard.Stats(ctx)
	if err != nil {
		return s.loadFailed(gen, "dashboard.stats", "Failed to fetch dashboard stats", err)
	}
	if !s.commit(gen, func() { s.stats = stats }) {
		return superseded()
	}
	return ok()
}

func (s *Store) LoadRecentEmployees(ctx context.Context) Result {
	gen, _, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	list, err := s.client.Dashboard.RecentEmployees(ctx)
	if err != nil {
		return s.loadFailed(gen, "dashboard.recentEmployees", "Failed to fetch recent employees", err)
	}
	if !s.commit(gen, func() { s.recent = list }) {
		return superseded()
	}
	return ok()
}

func (s *Store) LoadActivities(ctx context.Context) Result {
	gen, _, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	list, err := s.client.Dashboard.Activities(ctx)
	if err != nil {
		return s.loadFailed(gen, "dashboard.activities", "Failed to fetch activities", err)
	}
	if !s.commit(gen, func() { s.activities = list }) {
		return superseded()
	}
	return ok()
}

func (s *Store) Stats() dashboard.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Store) RecentEmployees() []employee.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]employee.Employee(nil), s.recent...)
}

func (s *Store) Activities() []dashboard.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]dashboard.Activity(nil), s.activities...)
}
