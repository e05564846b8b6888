package attendance

import (
	"ems/internal/domain/employee"
	"ems/internal/platform/validation"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
)

// Label is the Present/Absent display value derived from a status.
func (s Status) Label() string {
	if s == StatusAbsent || s == "" {
		return "Absent"
	}
	return "Present"
}

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// Toggled flips between present and absent. Late and half-day count as
// present, so they toggle to absent.
func (s Status) Toggled() Status {
	if s.Label() == "Present" {
		return StatusAbsent
	}
	return StatusPresent
}

type Record struct {
	ID           int64               `json:"id"`
	EmployeeID   employee.BusinessID `json:"employeeId"`
	EmployeeName string              `json:"employeeName,omitempty"`
	Date         string              `json:"date"`
	CheckIn      string              `json:"checkIn,omitempty"`
	CheckOut     string              `json:"checkOut,omitempty"`
	TotalHours   float64             `json:"totalHours,omitempty"`
	Status       Status              `json:"status"`
}

type Mark struct {
	EmployeeID employee.BusinessID `json:"employeeId" validate:"required,gt=0"`
	Status     Status              `json:"status" validate:"required,oneof=present absent late half-day"`
}

func (m Mark) Validate() error {
	return validation.Struct(m)
}
