package employee

import (
	"strings"

	"ems/internal/platform/validation"
)

func (in Input) Validate() error {
	return validation.Struct(in)
}

// Directory maps between the two employee identifiers.
type Directory struct {
	toBusiness map[StorageID]BusinessID
	toStorage  map[BusinessID]StorageID
}

func NewDirectory(employees []Employee) Directory {
	d := Directory{
		toBusiness: make(map[StorageID]BusinessID, len(employees)),
		toStorage:  make(map[BusinessID]StorageID, len(employees)),
	}
	for _, e := range employees {
		d.toBusiness[e.ID] = e.EmployeeID
		if e.EmployeeID != 0 {
			d.toStorage[e.EmployeeID] = e.ID
		}
	}
	return d
}

func (d Directory) BusinessID(id StorageID) (BusinessID, bool) {
	v, ok := d.toBusiness[id]
	return v, ok && v != 0
}

func (d Directory) StorageID(id BusinessID) (StorageID, bool) {
	v, ok := d.toStorage[id]
	return v, ok
}

// Filter is the in-memory search used by list views. Empty fields match
// everything; Query matches name, email or position case-insensitively.
type Filter struct {
	Query      string
	Department string
	Status     Status
}

func (f Filter) Match(e Employee) bool {
	if f.Department != "" && !strings.EqualFold(f.Department, e.Department) {
		return false
	}
	if f.Status != "" && f.Status != e.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{e.FullName(), e.Email, e.Position} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func Apply(employees []Employee, f Filter) []Employee {
	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// MatchEmail returns the single employee whose email equals email
// (case-insensitive). More than one match, or none, yields false.
func MatchEmail(employees []Employee, email string) (Employee, bool) {
	email = strings.TrimSpace(email)
	var found Employee
	count := 0
	for _, e := range employees {
		if strings.EqualFold(strings.TrimSpace(e.Email), email) {
			found = e
			count++
		}
	}
	return found, count == 1
}
