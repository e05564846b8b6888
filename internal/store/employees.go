package store

import (
	"context"

	"ems/internal/domain/department"
	"ems/internal/domain/employee"
)

func (s *Store) LoadEmployees(ctx context.Context) Result {
	gen, _, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	list, err := s.client.Employees.List(ctx)
	if err != nil {
		return s.loadFailed(gen, "employees.load", "Failed to fetch employees", err)
	}
	if !s.commit(gen, func() { s.employees.Replace(list) }) {
		return superseded()
	}
	return ok()
}

func (s *Store) AddEmployee(ctx context.Context, in employee.Input) Result {
	if err := in.Validate(); err != nil {
		return invalid(err)
	}
	defer s.mutate()()
	gen := s.generation()
	created, err := s.client.Employees.Create(ctx, in)
	if err != nil {
		return s.fail("employees.add", "Failed to add employee", err)
	}
	s.commit(gen, func() { s.employees.Upsert(created) })
	return ok()
}

func (s *Store) UpdateEmployee(ctx context.Context, id employee.StorageID, in employee.Input) Result {
	if err := in.Validate(); err != nil {
		return invalid(err)
	}
	defer s.mutate()()
	gen := s.generation()
	s.mu.RLock()
	current, _ := s.employees.Get(id)
	s.mu.RUnlock()
	updated, err := s.client.Employees.Update(ctx, id, current.Version, in)
	if err != nil {
		return s.fail("employees.update", "Failed to update employee", err)
	}
	s.commit(gen, func() { s.employees.Upsert(updated) })
	return ok()
}

func (s *Store) DeleteEmployee(ctx context.Context, id employee.StorageID) Result {
	defer s.mutate()()
	gen := s.generation()
	if err := s.client.Employees.Delete(ctx, id); err != nil {
		return s.fail("employees.delete", "Failed to delete employee", err)
	}
	s.commit(gen, func() { s.employees.Remove(id) })
	return ok()
}

// SearchEmployees asks the server; it does not touch the cache.
func (s *Store) SearchEmployees(ctx context.Context, query string) ([]employee.Employee, Result) {
	defer s.track()()
	list, err := s.client.Employees.Search(ctx, query)
	if err != nil {
		return nil, s.fail("employees.search", "Failed to search employees", err)
	}
	return list, ok()
}

// Employees returns cached employees matching f.
func (s *Store) Employees(f employee.Filter) []employee.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return employee.Apply(s.employees.All(), f)
}

func (s *Store) Employee(id employee.StorageID) (employee.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employees.Get(id)
}

// BusinessIDFor maps a storage id to the business id used by leave,
// attendance, payroll and performance.
func (s *Store) BusinessIDFor(id employee.StorageID) (employee.BusinessID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return employee.NewDirectory(s.employees.All()).BusinessID(id)
}

func (s *Store) StorageIDFor(id employee.BusinessID) (employee.StorageID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return employee.NewDirectory(s.employees.All()).StorageID(id)
}

func (s *Store) LoadDepartments(ctx context.Context) Result {
	gen, _, live := s.view(ctx)
	if !live {
		return superseded()
	}
	defer s.track()()
	list, err := s.client.Departments.List(ctx)
	if err != nil {
		return s.loadFailed(gen, "departments.load", "Failed to fetch departments", err)
	}
	if !s.commit(gen, func() { s.departments.Replace(list) }) {
		return superseded()
	}
	return ok()
}

func (s *Store) AddDepartment(ctx context.Context, in department.Input) Result {
	if err := in.Validate(); err != nil {
		return invalid(err)
	}
	defer s.mutate()()
	gen := s.generation()
	created, err := s.client.Departments.Create(ctx, in)
	if err != nil {
		return s.fail("departments.add", "Failed to add department", err)
	}
	s.commit(gen, func() { s.departments.Upsert(created) })
	return ok()
}

func (s *Store) UpdateDepartment(ctx context.Context, id int64, in department.Input) Result {
	if err := in.Validate(); err != nil {
		return invalid(err)
	}
	defer s.mutate()()
	gen := s.generation()
	s.mu.RLock()
	current, _ := s.departments.Get(id)
	s.mu.RUnlock()
	updated, err := s.client.Departments.Update(ctx, id, current.Version, in)
	if err != nil {
		return s.fail("departments.update", "Failed to update department", err)
	}
	s.commit(gen, func() { s.departments.Upsert(updated) })
	return ok()
}

func (s *Store) DeleteDepartment(ctx context.Context, id int64) Result {
	defer s.mutate()()
	gen := s.generation()
	if err := s.client.Departments.Delete(ctx, id); err != nil {
		return s.fail("departments.delete", "Failed to delete department", err)
	}
	s.commit(gen, func() { s.departments.Remove(id) })
	return ok()
}

// DepartmentEmployees lists a department's members from the server.
func (s *Store) DepartmentEmployees(ctx context.Context, id int64) ([]employee.Employee, Result) {
	defer s.track()()
	list, err := s.client.Departments.Employees(ctx, id)
	if err != nil {
		return nil, s.fail("departments.employees", "Failed to fetch department employees", err)
	}
	return list, ok()
}

func (s *Store) Departments() []department.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.departments.All()
}
