package sandbox

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"ems/internal/domain/attendance"
	"ems/internal/domain/dashboard"
	"ems/internal/domain/department"
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
)

var (
	ErrNotFound = errors.New("not found")
	ErrStale    = errors.New("stale version")
	ErrConflict = errors.New("conflict")
)

const (
	firstBusinessID = 1001
	maxActivities   = 50
)

type user struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Roles        []string
}

// db is the sandbox's whole state. Every method takes the lock; handlers
// never touch the maps directly.
type db struct {
	mu  sync.Mutex
	now func() time.Time

	users       []*user
	employees   map[employee.StorageID]*employee.Employee
	departments map[int64]*department.Department
	leave       map[int64]*leave.Request
	reviews     map[int64]*performance.Review
	payrolls    map[int64]*payroll.Record
	attendance  map[string]map[employee.BusinessID]*attendance.Record
	activities  []dashboard.Activity

	nextUser, nextEmployee, nextDepartment int64
	nextLeave, nextReview, nextPayroll     int64
	nextAttendance, nextActivity           int64
	nextBusiness                           employee.BusinessID
}

func newDB(now func() time.Time) *db {
	return &db{
		now:          now,
		employees:    map[employee.StorageID]*employee.Employee{},
		departments:  map[int64]*department.Department{},
		leave:        map[int64]*leave.Request{},
		reviews:      map[int64]*performance.Review{},
		payrolls:     map[int64]*payroll.Record{},
		attendance:   map[string]map[employee.BusinessID]*attendance.Record{},
		nextBusiness: firstBusinessID,
	}
}

func (d *db) today() string {
	return d.now().Format("2006-01-02")
}

// checkVersion enforces If-Match. A zero expected version skips the check.
func checkVersion(expected, current int64) error {
	if expected != 0 && expected != current {
		return fmt.Errorf("%w: have %d, got %d", ErrStale, current, expected)
	}
	return nil
}

func (d *db) logActivity(kind, format string, args ...any) {
	d.nextActivity++
	d.activities = append(d.activities, dashboard.Activity{
		ID:        d.nextActivity,
		Type:      kind,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: d.now().UTC().Format(time.RFC3339),
	})
	if len(d.activities) > maxActivities {
		d.activities = d.activities[len(d.activities)-maxActivities:]
	}
}

// users

func (d *db) userByEmail(email string) (*user, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.findUser(email)
}

func (d *db) findUser(email string) (*user, bool) {
	for _, u := range d.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, true
		}
	}
	return nil, false
}

func (d *db) addUser(u user) (user, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.findUser(u.Email); exists {
		return user{}, fmt.Errorf("%w: email already in use", ErrConflict)
	}
	d.nextUser++
	u.ID = d.nextUser
	d.users = append(d.users, &u)
	d.logActivity("user", "Account created for %s", u.Email)
	return u, nil
}

// employeeByEmail is the server-side join between an account and its
// employee record.
func (d *db) employeeByEmail(email string) (employee.Employee, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.employees {
		if strings.EqualFold(e.Email, strings.TrimSpace(email)) {
			return *e, true
		}
	}
	return employee.Employee{}, false
}

// employees

func (d *db) listEmployees() []employee.Employee {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]employee.Employee, 0, len(d.employees))
	for _, e := range d.employees {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *db) getEmployee(id employee.StorageID) (employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.employees[id]
	if !ok {
		return employee.Employee{}, ErrNotFound
	}
	return *e, nil
}

func (d *db) employeeByBusinessID(id employee.BusinessID) (employee.Employee, bool) {
	for _, e := range d.employees {
		if e.EmployeeID == id {
			return *e, true
		}
	}
	return employee.Employee{}, false
}

func (d *db) emailTaken(email string, except employee.StorageID) bool {
	for _, e := range d.employees {
		if e.ID != except && strings.EqualFold(e.Email, email) {
			return true
		}
	}
	return false
}

func (d *db) createEmployee(in employee.Input) (employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.emailTaken(in.Email, 0) {
		return employee.Employee{}, fmt.Errorf("%w: email already exists", ErrConflict)
	}
	d.nextEmployee++
	e := employee.Employee{ID: employee.StorageID(d.nextEmployee), EmployeeID: d.nextBusiness, Version: 1}
	d.nextBusiness++
	applyEmployeeInput(&e, in)
	if e.Status == "" {
		e.Status = employee.StatusActive
	}
	if e.HireDate == "" {
		e.HireDate = d.today()
	}
	d.employees[e.ID] = &e
	d.logActivity("employee", "New employee %s joined %s", e.FullName(), e.Department)
	return e, nil
}

func (d *db) updateEmployee(id employee.StorageID, version int64, in employee.Input) (employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.employees[id]
	if !ok {
		return employee.Employee{}, ErrNotFound
	}
	if err := checkVersion(version, e.Version); err != nil {
		return employee.Employee{}, err
	}
	if d.emailTaken(in.Email, id) {
		return employee.Employee{}, fmt.Errorf("%w: email already exists", ErrConflict)
	}
	applyEmployeeInput(e, in)
	e.Version++
	d.logActivity("employee", "Employee %s updated", e.FullName())
	return *e, nil
}

func applyEmployeeInput(e *employee.Employee, in employee.Input) {
	e.FirstName = in.FirstName
	e.LastName = in.LastName
	e.Email = in.Email
	e.Phone = in.Phone
	e.Department = in.Department
	e.Position = in.Position
	e.Salary = in.Salary
	if in.HireDate != "" {
		e.HireDate = in.HireDate
	}
	if in.Status != "" {
		e.Status = in.Status
	}
	e.ManagerID = in.ManagerID
}

func (d *db) deleteEmployee(id employee.StorageID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.employees[id]
	if !ok {
		return ErrNotFound
	}
	delete(d.employees, id)
	d.logActivity("employee", "Employee %s removed", e.FullName())
	return nil
}

func (d *db) searchEmployees(query string) []employee.Employee {
	return employee.Apply(d.listEmployees(), employee.Filter{Query: query})
}

func (d *db) recentEmployees(limit int) []employee.Employee {
	all := d.listEmployees()
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// departments

func (d *db) countIn(name string) int {
	n := 0
	for _, e := range d.employees {
		if strings.EqualFold(e.Department, name) {
			n++
		}
	}
	return n
}

func (d *db) withCount(dep department.Department) department.Department {
	dep.EmployeeCount = d.countIn(dep.Name)
	return dep
}

func (d *db) listDepartments() []department.Department {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]department.Department, 0, len(d.departments))
	for _, dep := range d.departments {
		out = append(out, d.withCount(*dep))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *db) getDepartment(id int64) (department.Department, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dep, ok := d.departments[id]
	if !ok {
		return department.Department{}, ErrNotFound
	}
	return d.withCount(*dep), nil
}

func (d *db) departmentNameTaken(name string, except int64) bool {
	for _, dep := range d.departments {
		if dep.ID != except && strings.EqualFold(dep.Name, name) {
			return true
		}
	}
	return false
}

func (d *db) createDepartment(in department.Input) (department.Department, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.departmentNameTaken(in.Name, 0) {
		return department.Department{}, fmt.Errorf("%w: department already exists", ErrConflict)
	}
	d.nextDepartment++
	dep := department.Department{ID: d.nextDepartment, Name: in.Name, Description: in.Description, ManagerID: in.ManagerID, Version: 1}
	d.departments[dep.ID] = &dep
	d.logActivity("department", "Department %s created", dep.Name)
	return d.withCount(dep), nil
}

func (d *db) updateDepartment(id, version int64, in department.Input) (department.Department, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dep, ok := d.departments[id]
	if !ok {
		return department.Department{}, ErrNotFound
	}
	if err := checkVersion(version, dep.Version); err != nil {
		return department.Department{}, err
	}
	if d.departmentNameTaken(in.Name, id) {
		return department.Department{}, fmt.Errorf("%w: department already exists", ErrConflict)
	}
	dep.Name = in.Name
	dep.Description = in.Description
	dep.ManagerID = in.ManagerID
	dep.Version++
	return d.withCount(*dep), nil
}

func (d *db) deleteDepartment(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	dep, ok := d.departments[id]
	if !ok {
		return ErrNotFound
	}
	delete(d.departments, id)
	d.logActivity("department", "Department %s removed", dep.Name)
	return nil
}

func (d *db) departmentEmployees(id int64) ([]employee.Employee, error) {
	dep, err := d.getDepartment(id)
	if err != nil {
		return nil, err
	}
	return employee.Apply(d.listEmployees(), employee.Filter{Department: dep.Name}), nil
}

// leave

func (d *db) listLeave(filter func(leave.Request) bool) []leave.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]leave.Request, 0, len(d.leave))
	for _, r := range d.leave {
		if filter == nil || filter(*r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *db) createLeave(in leave.Input) (leave.Request, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.employeeByBusinessID(in.EmployeeID)
	if !ok {
		return leave.Request{}, fmt.Errorf("employee %d: %w", in.EmployeeID, ErrNotFound)
	}
	d.nextLeave++
	r := leave.Request{
		ID:         d.nextLeave,
		EmployeeID: in.EmployeeID,
		Type:       in.Type,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Days:       in.Days,
		Reason:     in.Reason,
		Status:     leave.StatusPending,
		AppliedOn:  d.today(),
		Version:    1,
	}
	d.leave[r.ID] = &r
	d.logActivity("leave", "%s requested %d day(s) of %s leave", e.FullName(), r.Days, r.Type)
	return r, nil
}

func (d *db) updateLeave(id, version int64, in leave.Input) (leave.Request, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.leave[id]
	if !ok {
		return leave.Request{}, ErrNotFound
	}
	if err := checkVersion(version, r.Version); err != nil {
		return leave.Request{}, err
	}
	if r.Status.Decided() {
		return leave.Request{}, fmt.Errorf("%w: leave request already %s", ErrConflict, r.Status)
	}
	r.Type = in.Type
	r.StartDate = in.StartDate
	r.EndDate = in.EndDate
	r.Days = in.Days
	r.Reason = in.Reason
	r.Version++
	return *r, nil
}

// decideLeave moves a pending request to a terminal status. Decided
// requests never change again.
func (d *db) decideLeave(id, version int64, to leave.Status) (leave.Request, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.leave[id]
	if !ok {
		return leave.Request{}, ErrNotFound
	}
	if !leave.CanTransition(r.Status, to) {
		return leave.Request{}, fmt.Errorf("%w: leave request already %s", ErrConflict, r.Status)
	}
	if err := checkVersion(version, r.Version); err != nil {
		return leave.Request{}, err
	}
	r.Status = to
	r.Version++
	d.logActivity("leave", "Leave request #%d %s", r.ID, to)
	return *r, nil
}

// attendance

func (d *db) todayAttendance() []attendance.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	day := d.today()
	marked := d.attendance[day]
	var out []attendance.Record
	for _, e := range d.sortedEmployees() {
		if e.Status != employee.StatusActive {
			continue
		}
		if rec, ok := marked[e.EmployeeID]; ok {
			out = append(out, *rec)
			continue
		}
		out = append(out, attendance.Record{EmployeeID: e.EmployeeID, EmployeeName: e.FullName(), Date: day, Status: attendance.StatusAbsent})
	}
	return out
}

func (d *db) sortedEmployees() []*employee.Employee {
	out := make([]*employee.Employee, 0, len(d.employees))
	for _, e := range d.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *db) attendanceRecord(id employee.BusinessID) (*attendance.Record, error) {
	e, ok := d.employeeByBusinessID(id)
	if !ok {
		return nil, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	day := d.today()
	if d.attendance[day] == nil {
		d.attendance[day] = map[employee.BusinessID]*attendance.Record{}
	}
	rec, ok := d.attendance[day][id]
	if !ok {
		d.nextAttendance++
		rec = &attendance.Record{ID: d.nextAttendance, EmployeeID: id, EmployeeName: e.FullName(), Date: day, Status: attendance.StatusAbsent}
		d.attendance[day][id] = rec
	}
	return rec, nil
}

func (d *db) markAttendance(id employee.BusinessID, status attendance.Status) (attendance.Record, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, err := d.attendanceRecord(id)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.Status = status
	d.logActivity("attendance", "%s marked %s", rec.EmployeeName, status.Label())
	return *rec, nil
}

func (d *db) checkIn(id employee.BusinessID) (attendance.Record, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, err := d.attendanceRecord(id)
	if err != nil {
		return attendance.Record{}, err
	}
	if rec.CheckIn != "" {
		return attendance.Record{}, fmt.Errorf("%w: already checked in at %s", ErrConflict, rec.CheckIn)
	}
	rec.CheckIn = d.now().Format("15:04")
	rec.Status = attendance.StatusPresent
	d.logActivity("attendance", "%s checked in", rec.EmployeeName)
	return *rec, nil
}

func (d *db) presentToday() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, rec := range d.attendance[d.today()] {
		if rec.Status.Label() == attendance.StatusPresent.Label() {
			n++
		}
	}
	return n
}

// payroll

func (d *db) listPayroll(filter func(payroll.Record) bool) []payroll.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]payroll.Record, 0, len(d.payrolls))
	for _, p := range d.payrolls {
		if filter == nil || filter(*p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *db) updatePayrollStatus(id, version int64, to payroll.Status) (payroll.Record, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.payrolls[id]
	if !ok {
		return payroll.Record{}, ErrNotFound
	}
	if err := checkVersion(version, p.Version); err != nil {
		return payroll.Record{}, err
	}
	if !payroll.CanTransition(p.Status, to) {
		return payroll.Record{}, fmt.Errorf("%w: cannot move payroll from %s to %s", ErrConflict, p.Status, to)
	}
	p.Status = to
	p.Version++
	d.logActivity("payroll", "Payroll #%d for %s marked %s", p.ID, p.EmployeeName, to)
	return *p, nil
}

// generatePayroll creates one pending record per active employee for the
// period (YYYY-MM). Employees that already have one are skipped.
func (d *db) generatePayroll(period string) (payroll.GenerateSummary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	when, err := time.Parse("2006-01", period)
	if err != nil {
		return payroll.GenerateSummary{}, err
	}
	month := when.Month().String()
	sum := payroll.GenerateSummary{Period: period}
	for _, e := range d.sortedEmployees() {
		if e.Status != employee.StatusActive {
			continue
		}
		if d.hasPayroll(e.EmployeeID, month, when.Year()) {
			sum.Skipped++
			continue
		}
		basic, lines := payroll.MonthlyLines(e.Salary)
		allowances, deductions, net := payroll.Compute(basic, lines)
		d.nextPayroll++
		d.payrolls[d.nextPayroll] = &payroll.Record{
			ID:           d.nextPayroll,
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.FullName(),
			Month:        month,
			Year:         when.Year(),
			BasicSalary:  basic,
			Allowances:   allowances,
			Deductions:   deductions,
			NetSalary:    net,
			Status:       payroll.StatusPending,
			Version:      1,
		}
		sum.Generated++
	}
	sum.Message = fmt.Sprintf("Generated %d payroll record(s) for %s", sum.Generated, period)
	d.logActivity("payroll", "%s", sum.Message)
	return sum, nil
}

func (d *db) hasPayroll(id employee.BusinessID, month string, year int) bool {
	for _, p := range d.payrolls {
		if p.EmployeeID == id && p.Month == month && p.Year == year {
			return true
		}
	}
	return false
}

func (d *db) monthlyPayroll() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	total := 0.0
	for _, p := range d.payrolls {
		if p.Month == now.Month().String() && p.Year == now.Year() {
			total += p.NetSalary
		}
	}
	return roundCents(total)
}

// performance

func (d *db) listReviews(filter func(performance.Review) bool) []performance.Review {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]performance.Review, 0, len(d.reviews))
	for _, r := range d.reviews {
		if filter == nil || filter(*r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *db) createReview(in performance.Input) (performance.Review, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.employeeByBusinessID(in.EmployeeID)
	if !ok {
		return performance.Review{}, fmt.Errorf("employee %d: %w", in.EmployeeID, ErrNotFound)
	}
	for _, r := range d.reviews {
		if r.EmployeeID == in.EmployeeID && r.Period == in.Period {
			return performance.Review{}, fmt.Errorf("%w: review for %s already exists", ErrConflict, in.Period)
		}
	}
	d.nextReview++
	r := performance.Review{ID: d.nextReview, EmployeeID: in.EmployeeID, Period: in.Period, Version: 1}
	applyScores(&r, in.Scores, in.Reviewer, in.Comments)
	d.reviews[r.ID] = &r
	d.logActivity("performance", "Review for %s (%s) scored %.2f", e.FullName(), r.Period, r.FinalScore)
	return r, nil
}

func (d *db) updateReview(id, version int64, in performance.Update) (performance.Review, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.reviews[id]
	if !ok {
		return performance.Review{}, ErrNotFound
	}
	if err := checkVersion(version, r.Version); err != nil {
		return performance.Review{}, err
	}
	applyScores(r, in.Scores, in.Reviewer, in.Comments)
	r.Version++
	return *r, nil
}

func applyScores(r *performance.Review, s performance.Scores, reviewer, comments string) {
	r.Productivity = s.Productivity
	r.Communication = s.Communication
	r.Teamwork = s.Teamwork
	r.Punctuality = s.Punctuality
	r.Reviewer = reviewer
	r.Comments = comments
	r.FinalScore = performance.FinalScore(s)
}

func (d *db) deleteReview(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(d.reviews, id)
	return nil
}

// dashboard

func (d *db) stats() dashboard.Stats {
	pending := len(d.listLeave(func(r leave.Request) bool { return r.Status == leave.StatusPending }))
	total := len(d.listEmployees())
	return dashboard.Stats{
		TotalEmployees: total,
		PresentToday:   d.presentToday(),
		PendingLeaves:  pending,
		MonthlyPayroll: d.monthlyPayroll(),
	}
}

func (d *db) recentActivities(limit int) []dashboard.Activity {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]dashboard.Activity, 0, limit)
	for i := len(d.activities) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, d.activities[i])
	}
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
