package sandbox

import (
	"errors"
	"fmt"

	"ems/internal/domain/auth"
	"ems/internal/domain/department"
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
)

// DefaultEmployeePassword is the password of the seeded employee accounts.
const DefaultEmployeePassword = "employee123"

var seedDepartments = []department.Input{
	{Name: "Engineering", Description: "Builds and runs the product"},
	{Name: "Human Resources", Description: "People operations"},
	{Name: "Sales", Description: "Customer acquisition"},
}

var seedEmployees = []employee.Input{
	{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@ems.local", Department: "Engineering", Position: "Backend Engineer", Salary: 96000, HireDate: "2021-04-12"},
	{FirstName: "Omar", LastName: "Haddad", Email: "omar.haddad@ems.local", Department: "Engineering", Position: "SRE", Salary: 102000, HireDate: "2020-09-01"},
	{FirstName: "Priya", LastName: "Nair", Email: "priya.nair@ems.local", Department: "Human Resources", Position: "HR Partner", Salary: 72000, HireDate: "2022-01-17"},
	{FirstName: "Lucas", LastName: "Moreau", Email: "lucas.moreau@ems.local", Department: "Sales", Position: "Account Executive", Salary: 68000, HireDate: "2023-06-05"},
}

func (s *Server) seed() error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return errors.New("seeding requires an admin email and password")
	}
	if err := s.addAccount("admin", s.cfg.AdminEmail, s.cfg.AdminPassword, auth.AuthorityAdmin); err != nil {
		return err
	}
	for _, in := range seedDepartments {
		if _, err := s.db.createDepartment(in); err != nil {
			return fmt.Errorf("seed department %s: %w", in.Name, err)
		}
	}
	var staff []employee.Employee
	for _, in := range seedEmployees {
		e, err := s.db.createEmployee(in)
		if err != nil {
			return fmt.Errorf("seed employee %s: %w", in.Email, err)
		}
		if err := s.addAccount(e.FirstName, e.Email, DefaultEmployeePassword, auth.AuthorityEmployee); err != nil {
			return err
		}
		staff = append(staff, e)
	}

	today := s.cfg.Now()
	start := today.AddDate(0, 0, 7).Format("2006-01-02")
	end := today.AddDate(0, 0, 9).Format("2006-01-02")
	request := leave.Input{EmployeeID: staff[0].EmployeeID, Type: leave.TypeVacation, StartDate: start, EndDate: end, Reason: "Family trip"}
	if err := request.Validate(); err != nil {
		return err
	}
	if _, err := s.db.createLeave(request); err != nil {
		return err
	}

	review := performance.Input{
		EmployeeID: staff[1].EmployeeID,
		Period:     fmt.Sprintf("Q%d %d", (int(today.Month())-1)/3+1, today.Year()),
		Scores:     performance.Scores{Productivity: 4, Communication: 4, Teamwork: 5, Punctuality: 3},
		Reviewer:   "admin",
		Comments:   "Reliable on-call rotation",
	}
	if _, err := s.db.createReview(review); err != nil {
		return err
	}

	if _, err := s.db.generatePayroll(payroll.CurrentPeriod(today)); err != nil {
		return err
	}
	return nil
}

func (s *Server) addAccount(username, email, password, role string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := s.db.addUser(user{Username: username, Email: email, PasswordHash: hash, Roles: []string{role}}); err != nil {
		return fmt.Errorf("seed account %s: %w", email, err)
	}
	return nil
}
