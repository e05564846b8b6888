package payroll

import (
	"errors"
	"fmt"
	"math"
	"time"

	"ems/internal/platform/validation"
)

var ErrInvalidTransition = errors.New("invalid payroll status transition")

var order = map[Status]int{StatusPending: 0, StatusProcessed: 1, StatusPaid: 2}

// CanTransition allows moving forward only: pending → processed → paid.
func CanTransition(from, to Status) bool {
	f, okFrom := order[from]
	t, okTo := order[to]
	return okFrom && okTo && t == f+1
}

func ValidStatus(s Status) bool {
	_, ok := order[s]
	return ok
}

// Net is the amount an employee receives for a record's components.
func Net(basic, allowances, deductions float64) float64 {
	return math.Round((basic+allowances-deductions)*100) / 100
}

// Period normalizes an optional YYYY-MM argument. Empty means no explicit
// period; the backend then uses the current month.
func Period(ym string) (string, error) {
	if ym == "" {
		return "", nil
	}
	if err := validation.Check(validation.IsYearMonth(ym), "ym", "must be YYYY-MM"); err != nil {
		return "", err
	}
	return ym, nil
}

// CurrentPeriod formats now as YYYY-MM.
func CurrentPeriod(now time.Time) string {
	return fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
}

// Label renders a record's period the way payslips show it.
func (r Record) Label() string {
	return fmt.Sprintf("%s %d", r.Month, r.Year)
}
