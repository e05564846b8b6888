package employee

import (
	"fmt"
	"strings"
)

// StorageID is the backend primary key of an employee record.
type StorageID int64

// BusinessID is the human-facing employee number. Leave, attendance,
// payroll and performance records reference employees by BusinessID.
type BusinessID int64

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

type Employee struct {
	ID         StorageID  `json:"id"`
	EmployeeID BusinessID `json:"employeeId"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Salary     float64    `json:"salary"`
	HireDate   string     `json:"hireDate,omitempty"`
	Status     Status     `json:"status"`
	ManagerID  *StorageID `json:"managerId,omitempty"`
	Version    int64      `json:"version,omitempty"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e Employee) String() string {
	return fmt.Sprintf("#%d %s <%s>", e.EmployeeID, e.FullName(), e.Email)
}

// Input is the create/update payload. The backend assigns both ids.
type Input struct {
	FirstName  string     `json:"firstName" validate:"required"`
	LastName   string     `json:"lastName" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      string     `json:"phone,omitempty"`
	Department string     `json:"department" validate:"required"`
	Position   string     `json:"position" validate:"required"`
	Salary     float64    `json:"salary" validate:"gte=0"`
	HireDate   string     `json:"hireDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status     Status     `json:"status,omitempty" validate:"omitempty,oneof=active inactive terminated"`
	ManagerID  *StorageID `json:"managerId,omitempty"`
}

// InputFrom copies the editable fields of an existing record.
func InputFrom(e Employee) Input {
	return Input{
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Position:   e.Position,
		Salary:     e.Salary,
		HireDate:   e.HireDate,
		Status:     e.Status,
		ManagerID:  e.ManagerID,
	}
}
