package payroll

import "math"

type LineKind string

const (
	LineEarning   LineKind = "earning"
	LineDeduction LineKind = "deduction"
)

// Standard monthly elements as a share of the basic amount.
const (
	AllowanceRate = 0.10
	DeductionRate = 0.12
)

// Line is one pay element of a monthly record.
type Line struct {
	Kind   LineKind
	Label  string
	Amount float64
}

// MonthlyLines splits an annual salary into the monthly basic amount and
// the standard allowance and deduction lines.
func MonthlyLines(annual float64) (basic float64, lines []Line) {
	basic = roundCents(annual / 12)
	return basic, []Line{
		{Kind: LineEarning, Label: "Allowances", Amount: roundCents(basic * AllowanceRate)},
		{Kind: LineDeduction, Label: "Deductions", Amount: roundCents(basic * DeductionRate)},
	}
}

// Compute totals the lines on top of basic. Lines of an unknown kind are
// ignored.
func Compute(basic float64, lines []Line) (allowances, deductions, net float64) {
	for _, line := range lines {
		switch line.Kind {
		case LineEarning:
			allowances += line.Amount
		case LineDeduction:
			deductions += line.Amount
		}
	}
	allowances, deductions = roundCents(allowances), roundCents(deductions)
	return allowances, deductions, Net(basic, allowances, deductions)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
