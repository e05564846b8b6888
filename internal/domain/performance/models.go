package performance

import "ems/internal/domain/employee"

const (
	MinScore = 1
	MaxScore = 5
)

type Review struct {
	ID            int64               `json:"id"`
	EmployeeID    employee.BusinessID `json:"employeeId"`
	Period        string              `json:"period"`
	Productivity  int                 `json:"productivity"`
	Communication int                 `json:"communication"`
	Teamwork      int                 `json:"teamwork"`
	Punctuality   int                 `json:"punctuality"`
	Reviewer      string              `json:"reviewer,omitempty"`
	// FinalScore is computed by the backend.
	FinalScore float64 `json:"finalScore"`
	Comments   string  `json:"comments"`
	Version    int64   `json:"version,omitempty"`
}

type Scores struct {
	Productivity  int `json:"productivity" validate:"gte=1,lte=5"`
	Communication int `json:"communication" validate:"gte=1,lte=5"`
	Teamwork      int `json:"teamwork" validate:"gte=1,lte=5"`
	Punctuality   int `json:"punctuality" validate:"gte=1,lte=5"`
}

// Input creates a review. EmployeeID and Period are fixed after creation.
type Input struct {
	EmployeeID employee.BusinessID `json:"employeeId" validate:"required,gt=0"`
	Period     string              `json:"period" validate:"required,review_period"`
	Scores
	Reviewer string `json:"reviewer,omitempty"`
	Comments string `json:"comments"`
}

// Update carries only the fields that stay editable.
type Update struct {
	Scores
	Reviewer string `json:"reviewer,omitempty"`
	Comments string `json:"comments"`
}
