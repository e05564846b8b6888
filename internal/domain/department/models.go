package department

import (
	"ems/internal/domain/employee"
	"ems/internal/platform/validation"
)

type Department struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	ManagerID   *employee.StorageID `json:"managerId,omitempty"`
	// EmployeeCount is computed by the backend.
	EmployeeCount int   `json:"employeeCount"`
	Version       int64 `json:"version,omitempty"`
}

type Input struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	ManagerID   *employee.StorageID `json:"managerId,omitempty"`
}

func (in Input) Validate() error {
	return validation.Struct(in)
}

func InputFrom(d Department) Input {
	return Input{Name: d.Name, Description: d.Description, ManagerID: d.ManagerID}
}
