package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/api"
	"ems/internal/domain/attendance"
	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
	"ems/internal/platform/storage"
	"ems/internal/sandbox"
	"ems/internal/session"
)

const (
	adminEmail    = "admin@ems.local"
	adminPassword = "admin-password"
	janeEmail     = "jane.doe@ems.local"
	janeBiz       = employee.BusinessID(1001)
)

type recorder struct {
	next        http.Handler
	failMark    atomic.Bool
	failMarkFor atomic.Int64
	delay       atomic.Int64

	mu   sync.Mutex
	hits map[string]int
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.hits[req.Method+" "+req.URL.Path]++
	r.mu.Unlock()
	if r.failMark.Load() && strings.HasPrefix(req.URL.Path, "/api/attendance/mark/") {
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	if id := r.failMarkFor.Load(); id != 0 && req.URL.Path == "/api/attendance/mark/"+strconv.FormatInt(id, 10) {
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	if d := time.Duration(r.delay.Load()); d > 0 {
		time.Sleep(d)
	}
	r.next.ServeHTTP(w, req)
}

func (r *recorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[key]
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits = map[string]int{}
}

type env struct {
	rec     *recorder
	url     string
	session *session.Store
	store   *Store
}

func newBackend(t *testing.T) (*recorder, string) {
	t.Helper()
	sb, err := sandbox.New(sandbox.Config{
		JWTSecret:     "store-test-secret-0000",
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
		Seed:          true,
	}, nil)
	require.NoError(t, err)
	rec := &recorder{next: sb.Router(), hits: map[string]int{}}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return rec, srv.URL + "/api"
}

func newClientSide(t *testing.T, baseURL string) (*session.Store, *Store) {
	t.Helper()
	client, err := api.New(baseURL)
	require.NoError(t, err)
	sess := session.New(storage.NewMemory(), client.Auth, session.WithEmployeeLister(client.Employees))
	client.SetTokenSource(sess)
	st := New(client, nil)
	sess.OnLogin(func(identity auth.Identity) {
		_ = st.Init(context.Background(), identity)
	})
	sess.OnLogout(st.Reset)
	return sess, st
}

func newEnv(t *testing.T) *env {
	t.Helper()
	rec, url := newBackend(t)
	sess, st := newClientSide(t, url)
	return &env{rec: rec, url: url, session: sess, store: st}
}

func (e *env) login(t *testing.T, email, password string) {
	t.Helper()
	res := e.session.Login(context.Background(), email, password)
	require.True(t, res.Success, res.Message)
}

func TestAdminInitLoadsFiveCollections(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)

	require.True(t, e.store.Initialized())
	assert.Len(t, e.store.Employees(employee.Filter{}), 4)
	assert.Len(t, e.store.Departments(), 3)
	assert.Len(t, e.store.LeaveRequests(leave.Filter{}), 1)
	assert.Len(t, e.store.Reviews(), 1)
	assert.Equal(t, 4, e.store.Stats().TotalEmployees)

	for _, key := range []string{
		"GET /api/employees",
		"GET /api/departments",
		"GET /api/leave-requests/leave",
		"GET /api/dashboard/stats",
		"GET /api/performance-reviews",
	} {
		assert.Equal(t, 1, e.rec.count(key), key)
	}
	assert.False(t, e.store.Loading())
	assert.Empty(t, e.store.Err())
}

func TestEmployeeInitLoadsThreeCollections(t *testing.T) {
	e := newEnv(t)
	e.login(t, janeEmail, sandbox.DefaultEmployeePassword)

	assert.Empty(t, e.store.Employees(employee.Filter{}))
	assert.Empty(t, e.store.Departments())
	requests := e.store.LeaveRequests(leave.Filter{})
	require.Len(t, requests, 1)
	assert.Equal(t, janeBiz, requests[0].EmployeeID)

	assert.Equal(t, 1, e.rec.count("GET /api/leave-requests/1001"))
	assert.Equal(t, 1, e.rec.count("GET /api/dashboard/stats"))
	assert.Equal(t, 1, e.rec.count("GET /api/performance-reviews/employee/1001"))
	assert.Zero(t, e.rec.count("GET /api/employees"))
	assert.Zero(t, e.rec.count("GET /api/departments"))
}

func TestInitRunsOnceUnderDuplicateTriggers(t *testing.T) {
	rec, url := newBackend(t)
	rec.delay.Store(int64(20 * time.Millisecond))
	client, err := api.New(url)
	require.NoError(t, err)
	sess := session.New(storage.NewMemory(), client.Auth)
	client.SetTokenSource(sess)
	st := New(client, nil)
	require.True(t, sess.Login(context.Background(), adminEmail, adminPassword).Success)
	identity, _ := sess.Identity()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Init(context.Background(), identity)
		}()
	}
	wg.Wait()
	_ = st.Init(context.Background(), identity)

	assert.Equal(t, 1, st.InitRuns())
	assert.Equal(t, 1, rec.count("GET /api/dashboard/stats"))
	assert.Equal(t, 1, rec.count("GET /api/employees"))
}

func TestLogoutResetsAndReArmsInit(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	e.session.Logout(context.Background())

	assert.False(t, e.store.Initialized())
	assert.Empty(t, e.store.Employees(employee.Filter{}))

	e.login(t, janeEmail, sandbox.DefaultEmployeePassword)
	assert.Equal(t, 2, e.store.InitRuns())
	assert.Empty(t, e.store.Employees(employee.Filter{}))
	assert.Len(t, e.store.LeaveRequests(leave.Filter{}), 1)
}

func TestResetDiscardsInFlightInit(t *testing.T) {
	rec, url := newBackend(t)
	client, err := api.New(url)
	require.NoError(t, err)
	sess := session.New(storage.NewMemory(), client.Auth, session.WithEmployeeLister(client.Employees))
	client.SetTokenSource(sess)
	st := New(client, nil)
	ctx := context.Background()

	require.True(t, sess.Login(ctx, adminEmail, adminPassword).Success)
	admin, _ := sess.Identity()
	rec.delay.Store(int64(100 * time.Millisecond))
	adminDone := make(chan error, 1)
	go func() { adminDone <- st.Init(ctx, admin) }()
	require.Eventually(t, func() bool { return rec.count("GET /api/employees") == 1 }, 2*time.Second, time.Millisecond)

	sess.Logout(ctx)
	st.Reset()
	rec.delay.Store(0)
	require.True(t, sess.Login(ctx, janeEmail, sandbox.DefaultEmployeePassword).Success)
	jane, _ := sess.Identity()
	require.NoError(t, st.Init(ctx, jane))

	select {
	case err := <-adminDone:
		assert.ErrorIs(t, err, errSuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("admin init did not finish after reset")
	}
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, 2, st.InitRuns())
	assert.Equal(t, auth.RoleEmployee, st.Identity().User.Role)
	assert.Empty(t, st.Employees(employee.Filter{}))
	assert.Empty(t, st.Departments())
	requests := st.LeaveRequests(leave.Filter{})
	require.Len(t, requests, 1)
	assert.Equal(t, janeBiz, requests[0].EmployeeID)
	assert.Empty(t, st.Err())
}

func TestLoadAfterResetIsDiscarded(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	e.rec.delay.Store(int64(50 * time.Millisecond))

	done := make(chan Result, 1)
	go func() { done <- e.store.LoadEmployees(context.Background()) }()
	require.Eventually(t, func() bool { return e.rec.count("GET /api/employees") == 2 }, 2*time.Second, time.Millisecond)
	e.store.Reset()

	res := <-done
	assert.False(t, res.Success)
	assert.Empty(t, e.store.Employees(employee.Filter{}))
	assert.Empty(t, e.store.Err())
}

func TestStartWaitsForLogin(t *testing.T) {
	rec, url := newBackend(t)
	client, err := api.New(url)
	require.NoError(t, err)
	sess := session.New(storage.NewMemory(), client.Auth)
	client.SetTokenSource(sess)
	st := New(client, nil)

	done := make(chan error, 1)
	go func() { done <- st.Start(context.Background(), sess) }()

	time.Sleep(10 * time.Millisecond)
	assert.False(t, st.Initialized())
	assert.Zero(t, rec.count("GET /api/dashboard/stats"))

	require.True(t, sess.Login(context.Background(), adminEmail, adminPassword).Success)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("start did not finish after login")
	}
	assert.True(t, st.Initialized())
}

func newHire() employee.Input {
	return employee.Input{FirstName: "Ada", LastName: "Byron", Email: "ada@ems.local", Department: "Engineering", Position: "Analyst", Salary: 90000}
}

func TestCreateInsertsServerEntityOnce(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)

	res := e.store.AddEmployee(context.Background(), newHire())
	require.True(t, res.Success, res.Message)

	matches := e.store.Employees(employee.Filter{Query: "ada@ems.local"})
	require.Len(t, matches, 1)
	created := matches[0]
	assert.Equal(t, employee.StorageID(5), created.ID)
	assert.Equal(t, employee.BusinessID(1005), created.EmployeeID)
	assert.Equal(t, employee.StatusActive, created.Status)

	biz, ok := e.store.BusinessIDFor(created.ID)
	require.True(t, ok)
	assert.Equal(t, created.EmployeeID, biz)
	pk, ok := e.store.StorageIDFor(created.EmployeeID)
	require.True(t, ok)
	assert.Equal(t, created.ID, pk)
}

func TestDeleteRemovesEntity(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)

	require.True(t, e.store.DeleteEmployee(context.Background(), 2).Success)
	_, found := e.store.Employee(2)
	assert.False(t, found)

	res := e.store.DeleteEmployee(context.Background(), 2)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Employee not found", res.Message)
	assert.Equal(t, "Employee not found", e.store.Err())
}

func TestValidationBlocksNetworkCall(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)

	bad := newHire()
	bad.Salary = -5
	res := e.store.AddEmployee(context.Background(), bad)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "salary")
	assert.Zero(t, e.rec.count("POST /api/employees"))
	assert.Empty(t, e.store.Err())
}

func TestServerMessageAndFallback(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)

	dup := newHire()
	dup.Email = "jane.doe@ems.local"
	res := e.store.AddEmployee(context.Background(), dup)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Email already exists", res.Message)
	assert.JSONEq(t, `{"message":"Email already exists"}`, string(res.Body))

	e.rec.failMark.Store(true)
	require.True(t, e.store.LoadAttendance(context.Background()).Success)
	res = e.store.ToggleAttendance(context.Background(), janeBiz)
	assert.Equal(t, "Failed to update attendance", res.Message)
}

func TestUpdateUsesCachedVersion(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	in := employee.InputFrom(mustEmployee(t, e.store, 1))
	in.Position = "Staff Engineer"
	require.True(t, e.store.UpdateEmployee(context.Background(), 1, in).Success)
	updated := mustEmployee(t, e.store, 1)
	assert.Equal(t, "Staff Engineer", updated.Position)
	assert.Equal(t, int64(2), updated.Version)

	in.Position = "Principal Engineer"
	require.True(t, e.store.UpdateEmployee(context.Background(), 1, in).Success)
	assert.Equal(t, int64(3), mustEmployee(t, e.store, 1).Version)
}

func TestStaleWriteRejected(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)

	sess2, st2 := newClientSide(t, e.url)
	require.True(t, sess2.Login(context.Background(), adminEmail, adminPassword).Success)

	in := employee.InputFrom(mustEmployee(t, e.store, 1))
	in.Position = "Lead"
	require.True(t, e.store.UpdateEmployee(context.Background(), 1, in).Success)

	in.Position = "Manager"
	res := st2.UpdateEmployee(context.Background(), 1, in)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusPreconditionFailed, res.Status)
	assert.Equal(t, "Backend Engineer", mustEmployee(t, st2, 1).Position)
}

func mustEmployee(t *testing.T, st *Store, id employee.StorageID) employee.Employee {
	t.Helper()
	e, ok := st.Employee(id)
	require.True(t, ok)
	return e
}

func TestLeaveStatusIsMonotonic(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)

	require.True(t, e.store.ApproveLeave(context.Background(), 1).Success)
	req, _ := e.store.LeaveRequest(1)
	assert.Equal(t, leave.StatusApproved, req.Status)

	res := e.store.RejectLeave(context.Background(), 1)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Zero(t, e.rec.count("PUT /api/leave-requests/1/reject"))
	req, _ = e.store.LeaveRequest(1)
	assert.Equal(t, leave.StatusApproved, req.Status)

	// A second operator with a cache from before the approval.
	sess2, st2 := newClientSide(t, e.url)
	require.True(t, sess2.Login(context.Background(), adminEmail, adminPassword).Success)
	st2.mu.Lock()
	stale, _ := st2.leave.Get(1)
	stale.Status = leave.StatusPending
	stale.Version = 1
	st2.leave.Upsert(stale)
	st2.mu.Unlock()

	res = st2.RejectLeave(context.Background(), 1)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Leave request already approved", res.Message)
}

func TestPatchLeaveNeverReopens(t *testing.T) {
	st := New(nil, nil)
	st.leave.Upsert(leave.Request{ID: 9, Status: leave.StatusRejected})
	st.patchLeave(leave.Request{ID: 9, Status: leave.StatusPending, Reason: "echo"})
	got, _ := st.leave.Get(9)
	assert.Equal(t, leave.StatusRejected, got.Status)
	assert.Equal(t, "echo", got.Reason)
}

func TestCreateLeaveFillsOwnBusinessID(t *testing.T) {
	e := newEnv(t)
	e.login(t, janeEmail, sandbox.DefaultEmployeePassword)

	in := leave.Input{Type: leave.TypeSick, StartDate: "2024-03-01", EndDate: "2024-03-05", Reason: "flu"}
	res := e.store.CreateLeaveRequest(context.Background(), in)
	require.True(t, res.Success, res.Message)

	sick := e.store.LeaveRequests(leave.Filter{Type: leave.TypeSick})
	require.Len(t, sick, 1)
	assert.Equal(t, janeBiz, sick[0].EmployeeID)
	assert.Equal(t, 5, sick[0].Days)
	assert.Equal(t, leave.StatusPending, sick[0].Status)

	bad := in
	bad.EndDate = "2024-02-28"
	assert.False(t, e.store.CreateLeaveRequest(context.Background(), bad).Success)
}

func TestAttendanceToggleRollsBackOnFailure(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	require.True(t, e.store.LoadAttendance(context.Background()).Success)

	before, ok := e.store.AttendanceEntry(janeBiz)
	require.True(t, ok)
	assert.Equal(t, "Absent", before.Label())

	e.rec.failMark.Store(true)
	res := e.store.ToggleAttendance(context.Background(), janeBiz)
	assert.False(t, res.Success)
	after, _ := e.store.AttendanceEntry(janeBiz)
	assert.Equal(t, before.Status, after.Status)
	assert.False(t, after.Pending)

	e.rec.failMark.Store(false)
	require.True(t, e.store.ToggleAttendance(context.Background(), janeBiz).Success)
	after, _ = e.store.AttendanceEntry(janeBiz)
	assert.Equal(t, attendance.StatusPresent, after.Status)
	assert.Equal(t, "Present", after.Label())
}

func TestMarkAllAndCheckIn(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	require.True(t, e.store.LoadAttendance(context.Background()).Success)

	res := e.store.MarkAll(context.Background(), []attendance.Mark{
		{EmployeeID: 1001, Status: attendance.StatusPresent},
		{EmployeeID: 1002, Status: attendance.StatusLate},
	})
	require.True(t, res.Success, res.Message)
	late, _ := e.store.AttendanceEntry(1002)
	assert.Equal(t, attendance.StatusLate, late.Status)
	assert.False(t, e.store.MarkAll(context.Background(), nil).Success)

	assert.False(t, e.store.CheckIn(context.Background()).Success)

	emp := newEnv(t)
	emp.login(t, janeEmail, sandbox.DefaultEmployeePassword)
	res = emp.store.CheckIn(context.Background())
	require.True(t, res.Success, res.Message)
	assert.Contains(t, res.Message, "Check-in recorded for Jane Doe")
}

func TestMarkAllKeepsSavedEntriesOnPartialFailure(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	require.True(t, e.store.LoadAttendance(context.Background()).Success)
	before, _ := e.store.AttendanceEntry(1002)

	e.rec.failMarkFor.Store(1002)
	res := e.store.MarkAll(context.Background(), []attendance.Mark{
		{EmployeeID: 1001, Status: attendance.StatusPresent},
		{EmployeeID: 1002, Status: attendance.StatusLate},
	})
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusBadGateway, res.Status)
	assert.Equal(t, "Failed to save attendance", e.store.Err())

	saved, _ := e.store.AttendanceEntry(1001)
	assert.Equal(t, attendance.StatusPresent, saved.Status)
	assert.False(t, saved.Pending)
	failed, _ := e.store.AttendanceEntry(1002)
	assert.Equal(t, before.Status, failed.Status)

	require.True(t, e.store.LoadAttendance(context.Background()).Success)
	reloaded, _ := e.store.AttendanceEntry(1001)
	assert.Equal(t, saved.Status, reloaded.Status)
}

func TestMarkAllSettlesPendingToggle(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	require.True(t, e.store.LoadAttendance(context.Background()).Success)

	_, err := e.store.board.Begin(janeBiz)
	require.NoError(t, err)
	res := e.store.MarkAll(context.Background(), []attendance.Mark{{EmployeeID: janeBiz, Status: attendance.StatusLate}})
	require.True(t, res.Success, res.Message)

	entry, _ := e.store.AttendanceEntry(janeBiz)
	assert.False(t, entry.Pending)
	assert.Equal(t, attendance.StatusLate, entry.Status)
	assert.Equal(t, attendance.StatusLate, entry.Confirmed)
}

func TestMarkAllRejectsUnknownStatusLocally(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)

	res := e.store.MarkAll(context.Background(), []attendance.Mark{
		{EmployeeID: 1001, Status: attendance.StatusPresent},
		{EmployeeID: 1002, Status: "presnt"},
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "employee 1002: status must be one of")
	assert.Zero(t, e.rec.count("PUT /api/attendance/mark/1001"))
	assert.Zero(t, e.rec.count("PUT /api/attendance/mark/1002"))
	assert.Empty(t, e.store.Err())
}

func TestDecideWithoutEchoNeverInventsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL)
	require.NoError(t, err)
	st := New(client, nil)

	require.True(t, st.ApproveLeave(context.Background(), 7).Success)
	_, cached := st.LeaveRequest(7)
	assert.False(t, cached)

	st.leave.Upsert(leave.Request{ID: 8, EmployeeID: janeBiz, Status: leave.StatusPending, Reason: "trip"})
	require.True(t, st.RejectLeave(context.Background(), 8).Success)
	got, _ := st.LeaveRequest(8)
	assert.Equal(t, leave.StatusRejected, got.Status)
	assert.Equal(t, "trip", got.Reason)
}

func TestPayrollFlow(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	ctx := context.Background()

	require.True(t, e.store.LoadPayrolls(ctx).Success)
	require.Len(t, e.store.Payrolls(), 4)

	res := e.store.UpdatePayrollStatus(ctx, 1, payroll.StatusPaid)
	assert.False(t, res.Success)
	assert.Zero(t, e.rec.count("PUT /api/payrolls/1/status"))

	require.True(t, e.store.UpdatePayrollStatus(ctx, 1, payroll.StatusProcessed).Success)
	rec, _ := e.store.Payroll(1)
	assert.Equal(t, payroll.StatusProcessed, rec.Status)

	assert.False(t, e.store.GeneratePayroll(ctx, "2024-1").Success)
	res = e.store.GeneratePayroll(ctx, "2023-12")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Generated 4 payroll record(s) for 2023-12", res.Message)
	assert.Len(t, e.store.Payrolls(), 8)

	require.True(t, e.store.LoadPayrollsByStatus(ctx, payroll.StatusProcessed).Success)
	assert.Len(t, e.store.Payrolls(), 1)

	emp := newEnv(t)
	emp.login(t, janeEmail, sandbox.DefaultEmployeePassword)
	require.True(t, emp.store.LoadPayrolls(ctx).Success)
	own := emp.store.Payrolls()
	require.Len(t, own, 1)
	assert.Equal(t, janeBiz, own[0].EmployeeID)
}

func TestReviewLifecycle(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	ctx := context.Background()

	in := performance.Input{EmployeeID: janeBiz, Period: "Q1 2024", Scores: performance.Scores{Productivity: 5, Communication: 5, Teamwork: 4, Punctuality: 4}}
	require.True(t, e.store.AddReview(ctx, in).Success)
	reviews := e.store.Reviews()
	require.Len(t, reviews, 2)
	created := reviews[1]
	assert.Equal(t, 4.5, created.FinalScore)

	upd := performance.UpdateFrom(created)
	upd.Punctuality = 2
	require.True(t, e.store.UpdateReview(ctx, created.ID, upd).Success)
	got, _ := e.store.Review(created.ID)
	assert.Equal(t, 4.0, got.FinalScore)
	assert.Equal(t, "Q1 2024", got.Period)

	upd.Teamwork = 9
	assert.False(t, e.store.UpdateReview(ctx, created.ID, upd).Success)

	require.True(t, e.store.DeleteReview(ctx, created.ID).Success)
	_, found := e.store.Review(created.ID)
	assert.False(t, found)
}

func TestDepartmentsAndDashboard(t *testing.T) {
	e := newEnv(t)
	e.login(t, adminEmail, adminPassword)
	ctx := context.Background()

	deps := e.store.Departments()
	require.Len(t, deps, 3)
	assert.Equal(t, 2, deps[0].EmployeeCount)

	members, res := e.store.DepartmentEmployees(ctx, deps[0].ID)
	require.True(t, res.Success)
	assert.Len(t, members, 2)

	require.True(t, e.store.LoadRecentEmployees(ctx).Success)
	recent := e.store.RecentEmployees()
	require.NotEmpty(t, recent)
	assert.Equal(t, employee.StorageID(4), recent[0].ID)

	require.True(t, e.store.LoadActivities(ctx).Success)
	assert.NotEmpty(t, e.store.Activities())

	found, res := e.store.SearchEmployees(ctx, "priya")
	require.True(t, res.Success)
	require.Len(t, found, 1)
	assert.Equal(t, "Human Resources", found[0].Department)
}
