package payroll

import "ems/internal/domain/employee"

type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
)

type Record struct {
	ID           int64               `json:"id"`
	EmployeeID   employee.BusinessID `json:"employeeId"`
	EmployeeName string              `json:"employeeName,omitempty"`
	Month        string              `json:"month"`
	Year         int                 `json:"year"`
	BasicSalary  float64             `json:"basicSalary"`
	Allowances   float64             `json:"allowances"`
	Deductions   float64             `json:"deductions"`
	NetSalary    float64             `json:"netSalary"`
	Status       Status              `json:"status"`
	Version      int64               `json:"version,omitempty"`
}

// GenerateSummary is what the backend reports after a payroll run.
type GenerateSummary struct {
	Period    string `json:"period"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
	Message   string `json:"message,omitempty"`
}
