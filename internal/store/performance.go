package store

import (
	"context"

	"ems/internal/domain/performance"
)

// LoadReviews loads all reviews for admins and for accounts without a
// business id, and the caller's own reviews otherwise.
func (s *Store) LoadReviews(ctx context.Context) Result {
	gen, identity, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	var (
		list []performance.Review
		err  error
	)
	if biz, linked := identity.BusinessID(); linked && !identity.User.IsAdmin() {
		list, err = s.client.Performance.ByEmployee(ctx, biz)
	} else {
		list, err = s.client.Performance.List(ctx)
	}
	if err != nil {
		return s.loadFailed(gen, "performance.load", "Failed to fetch performance reviews", err)
	}
	if !s.commit(gen, func() { s.reviews.Replace(list) }) {
		return superseded()
	}
	return ok()
}

func (s *Store) AddReview(ctx context.Context, in performance.Input) Result {
	if err := in.Validate(); err != nil {
		return invalid(err)
	}
	defer s.mutate()()
	gen := s.generation()
	created, err := s.client.Performance.Create(ctx, in)
	if err != nil {
		return s.fail("performance.add", "Failed to add performance review", err)
	}
	s.commit(gen, func() { s.reviews.Upsert(created) })
	return ok()
}

// UpdateReview changes scores, reviewer and comments; employee and period
// stay as created.
func (s *Store) UpdateReview(ctx context.Context, id int64, upd performance.Update) Result {
	if err := upd.Validate(); err != nil {
		return invalid(err)
	}
	defer s.mutate()()
	gen := s.generation()
	s.mu.RLock()
	current, _ := s.reviews.Get(id)
	s.mu.RUnlock()
	updated, err := s.client.Performance.Update(ctx, id, current.Version, upd)
	if err != nil {
		return s.fail("performance.update", "Failed to update performance review", err)
	}
	s.commit(gen, func() { s.reviews.Upsert(updated) })
	return ok()
}

func (s *Store) DeleteReview(ctx context.Context, id int64) Result {
	defer s.mutate()()
	gen := s.generation()
	if err := s.client.Performance.Delete(ctx, id); err != nil {
		return s.fail("performance.delete", "Failed to delete performance review", err)
	}
	s.commit(gen, func() { s.reviews.Remove(id) })
	return ok()
}

func (s *Store) Reviews() []performance.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews.All()
}

func (s *Store) Review(id int64) (performance.Review, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews.Get(id)
}
