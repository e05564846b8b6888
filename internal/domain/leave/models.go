package leave

import "ems/internal/domain/employee"

type Type string

const (
	TypeVacation  Type = "vacation"
	TypeSick      Type = "sick"
	TypePersonal  Type = "personal"
	TypeMaternity Type = "maternity"
	TypeEmergency Type = "emergency"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decided reports whether the status is terminal.
func (s Status) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

type Request struct {
	ID         int64               `json:"id"`
	EmployeeID employee.BusinessID `json:"employeeId"`
	Type       Type                `json:"type"`
	StartDate  string              `json:"startDate"`
	EndDate    string              `json:"endDate"`
	Days       int                 `json:"days"`
	Reason     string              `json:"reason"`
	Status     Status              `json:"status"`
	AppliedOn  string              `json:"appliedOn,omitempty"`
	Version    int64               `json:"version,omitempty"`
}

// Input is what an employee submits. Days is a client-side preview; the
// backend stores its own count.
type Input struct {
	EmployeeID employee.BusinessID `json:"employeeId" validate:"required,gt=0"`
	Type       Type                `json:"type" validate:"required,oneof=vacation sick personal maternity emergency"`
	StartDate  string              `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string              `json:"endDate" validate:"required,datetime=2006-01-02"`
	Days       int                 `json:"days,omitempty"`
	Reason     string              `json:"reason" validate:"required"`
}
