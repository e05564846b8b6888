package auth

import (
	"strings"
	"time"

	"ems/internal/domain/employee"
	"ems/internal/platform/validation"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"

	AuthorityAdmin    = "ROLE_ADMIN"
	AuthorityEmployee = "ROLE_EMPLOYEE"
)

// RoleFromAuthorities maps backend authorities to the client role.
func RoleFromAuthorities(authorities []string) Role {
	for _, a := range authorities {
		if strings.EqualFold(strings.TrimSpace(a), AuthorityAdmin) {
			return RoleAdmin
		}
	}
	return RoleEmployee
}

// User is the routing identity: who is logged in and what they may see.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

func (u User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EmployeeRef is the business identity used for leave, attendance, payroll
// and performance lookups.
type EmployeeRef struct {
	ID         employee.StorageID  `json:"id,omitempty"`
	EmployeeID employee.BusinessID `json:"employeeId"`
	FirstName  string              `json:"firstName,omitempty"`
	LastName   string              `json:"lastName,omitempty"`
}

func RefFrom(e employee.Employee) EmployeeRef {
	return EmployeeRef{ID: e.ID, EmployeeID: e.EmployeeID, FirstName: e.FirstName, LastName: e.LastName}
}

type Identity struct {
	Token    string
	User     User
	Employee *EmployeeRef
	// ExpiresAt is read from the token when it is a JWT; nil otherwise.
	ExpiresAt *time.Time
}

// BusinessID returns the caller's employee number, if known.
func (i Identity) BusinessID() (employee.BusinessID, bool) {
	if i.Employee == nil || i.Employee.EmployeeID == 0 {
		return 0, false
	}
	return i.Employee.EmployeeID, true
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.Struct(r)
}

// LoginResponse is the signin payload. EmployeeID and EmployeePK carry the
// business identity when the account is linked to an employee record.
type LoginResponse struct {
	Token      string               `json:"token"`
	Type       string               `json:"type,omitempty"`
	ID         int64                `json:"id"`
	FirstName  string               `json:"firstName"`
	LastName   string               `json:"lastName"`
	Email      string               `json:"email"`
	Roles      []string             `json:"roles"`
	EmployeeID *employee.BusinessID `json:"employeeId,omitempty"`
	EmployeePK *employee.StorageID  `json:"employeePk,omitempty"`
}

func (r LoginResponse) User() User {
	return User{ID: r.ID, Email: r.Email, FirstName: r.FirstName, LastName: r.LastName, Role: RoleFromAuthorities(r.Roles)}
}

// EmployeeRef returns the business identity carried by the response.
func (r LoginResponse) EmployeeRef() (EmployeeRef, bool) {
	if r.EmployeeID == nil || *r.EmployeeID == 0 {
		return EmployeeRef{}, false
	}
	ref := EmployeeRef{EmployeeID: *r.EmployeeID, FirstName: r.FirstName, LastName: r.LastName}
	if r.EmployeePK != nil {
		ref.ID = *r.EmployeePK
	}
	return ref, true
}

type SignupRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

func (r SignupRequest) Validate() error {
	return validation.Struct(r)
}
