package sandbox

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
)

const (
	testSecret   = "sandbox-test-secret-0123"
	testAdmin    = "admin@ems.local"
	testPassword = "admin-password"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := New(Config{JWTSecret: testSecret, AdminEmail: testAdmin, AdminPassword: testPassword, Seed: true, Now: fixedNow}, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any, headers ...string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signin(t *testing.T, srv *httptest.Server, email, password string) auth.LoginResponse {
	t.Helper()
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signin", "", auth.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[auth.LoginResponse](t, resp)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(Config{JWTSecret: "short"}, nil)
	require.Error(t, err)
	_, err = New(Config{JWTSecret: testSecret, Seed: true}, nil)
	require.Error(t, err)
}

func TestSigninAdminAndEmployee(t *testing.T) {
	srv := newTestServer(t)

	admin := signin(t, srv, testAdmin, testPassword)
	assert.Equal(t, auth.RoleAdmin, admin.User().Role)
	assert.Nil(t, admin.EmployeeID)
	claims, err := auth.ParseToken(testSecret, admin.Token)
	require.NoError(t, err)
	assert.Equal(t, testAdmin, claims.Subject)

	emp := signin(t, srv, "JANE.DOE@ems.local", DefaultEmployeePassword)
	assert.Equal(t, auth.RoleEmployee, emp.User().Role)
	require.NotNil(t, emp.EmployeeID)
	assert.Equal(t, employee.BusinessID(firstBusinessID), *emp.EmployeeID)
	require.NotNil(t, emp.EmployeePK)
	assert.Equal(t, employee.StorageID(1), *emp.EmployeePK)
}

func TestSigninWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signin", "", auth.LoginRequest{Email: testAdmin, Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", decodeBody[messageBody](t, resp).Message)
}

func TestSigninRateLimited(t *testing.T) {
	s, err := New(Config{JWTSecret: testSecret, AdminEmail: testAdmin, AdminPassword: testPassword, Seed: true, LoginRateLimit: 2, Now: fixedNow}, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)

	for range 2 {
		resp := doJSON(t, srv, http.MethodPost, "/api/auth/signin", "", auth.LoginRequest{Email: testAdmin, Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signin", "", auth.LoginRequest{Email: strings.ToUpper(testAdmin), Password: testPassword})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	assert.Equal(t, "Too many login attempts, try again later", decodeBody[messageBody](t, resp).Message)

	signin(t, srv, "jane.doe@ems.local", DefaultEmployeePassword)
}

func TestSignupDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	body := map[string]string{"username": "newbie", "email": "new@ems.local", "password": "secret1"}
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthorization(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, srv, http.MethodGet, "/api/dashboard/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	emp := signin(t, srv, "jane.doe@ems.local", DefaultEmployeePassword)
	resp = doJSON(t, srv, http.MethodGet, "/api/leave-requests/leave", emp.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/leave-requests/1002", emp.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/leave-requests/1001", emp.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	own := decodeBody[[]leave.Request](t, resp)
	require.Len(t, own, 1)
	assert.Equal(t, 3, own[0].Days)
}

func TestLeaveDecisionIsTerminal(t *testing.T) {
	srv := newTestServer(t)
	admin := signin(t, srv, testAdmin, testPassword)

	resp := doJSON(t, srv, http.MethodPut, "/api/leave-requests/1/approve", admin.Token, nil, "If-Match", `"1"`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	approved := decodeBody[leave.Request](t, resp)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	assert.Equal(t, int64(2), approved.Version)

	resp = doJSON(t, srv, http.MethodPut, "/api/leave-requests/1/reject", admin.Token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Leave request already approved", decodeBody[messageBody](t, resp).Message)
}

func TestStaleWriteRejected(t *testing.T) {
	srv := newTestServer(t)
	admin := signin(t, srv, testAdmin, testPassword)
	in := employee.Input{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@ems.local", Department: "Engineering", Position: "Staff Engineer", Salary: 120000}

	resp := doJSON(t, srv, http.MethodPut, "/api/employees/1", admin.Token, in, "If-Match", `"1"`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPut, "/api/employees/1", admin.Token, in, "If-Match", `"1"`)
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
}

func TestEmployeeValidationAndConflict(t *testing.T) {
	srv := newTestServer(t)
	admin := signin(t, srv, testAdmin, testPassword)

	resp := doJSON(t, srv, http.MethodPost, "/api/employees", admin.Token, employee.Input{FirstName: "No", Salary: -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	dup := employee.Input{FirstName: "J", LastName: "D", Email: "jane.doe@ems.local", Department: "Sales", Position: "Rep"}
	resp = doJSON(t, srv, http.MethodPost, "/api/employees", admin.Token, dup)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	fresh := dup
	fresh.Email = "new.hire@ems.local"
	resp = doJSON(t, srv, http.MethodPost, "/api/employees", admin.Token, fresh)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[employee.Employee](t, resp)
	assert.Equal(t, employee.BusinessID(firstBusinessID+len(seedEmployees)), created.EmployeeID)
	assert.Equal(t, employee.StatusActive, created.Status)

	resp = doJSON(t, srv, http.MethodDelete, "/api/employees/"+strconv.FormatInt(int64(created.ID), 10), admin.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, srv, http.MethodGet, "/api/employees/"+strconv.FormatInt(int64(created.ID), 10), admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckInAndMark(t *testing.T) {
	srv := newTestServer(t)
	emp := signin(t, srv, "jane.doe@ems.local", DefaultEmployeePassword)

	resp := doJSON(t, srv, http.MethodPut, "/api/attendance/addcheckin/1001", emp.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var text bytes.Buffer
	_, _ = text.ReadFrom(resp.Body)
	assert.Equal(t, "Check-in recorded for Jane Doe at 09:15", text.String())

	resp = doJSON(t, srv, http.MethodPut, "/api/attendance/addcheckin/1001", emp.Token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	admin := signin(t, srv, testAdmin, testPassword)
	resp = doJSON(t, srv, http.MethodPut, "/api/attendance/mark/1002?status=bogus", admin.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = doJSON(t, srv, http.MethodPut, "/api/attendance/mark/1002?status=present", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/dashboard/stats", admin.Token, nil)
	stats := decodeBody[map[string]float64](t, resp)
	assert.Equal(t, 2.0, stats["presentToday"])
	assert.Equal(t, 1.0, stats["pendingLeaves"])
	assert.Equal(t, 4.0, stats["totalEmployees"])
}

func TestPayrollGenerateAndStatus(t *testing.T) {
	srv := newTestServer(t)
	admin := signin(t, srv, testAdmin, testPassword)

	resp := doJSON(t, srv, http.MethodPost, "/api/payrolls/generate", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decodeBody[payroll.GenerateSummary](t, resp)
	assert.Equal(t, "2024-03", sum.Period)
	assert.Equal(t, 0, sum.Generated)
	assert.Equal(t, len(seedEmployees), sum.Skipped)

	resp = doJSON(t, srv, http.MethodPost, "/api/payrolls/generate?ym=2024-13", admin.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPut, "/api/payrolls/1/status", admin.Token, map[string]string{"status": "paid"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPut, "/api/payrolls/1/status", admin.Token, map[string]string{"status": "processed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decodeBody[payroll.Record](t, resp)
	assert.Equal(t, payroll.StatusProcessed, rec.Status)
	assert.Equal(t, "March", rec.Month)
	assert.Equal(t, payroll.Net(rec.BasicSalary, rec.Allowances, rec.Deductions), rec.NetSalary)
}

func TestReviewFinalScoreComputed(t *testing.T) {
	srv := newTestServer(t)
	admin := signin(t, srv, testAdmin, testPassword)
	in := performance.Input{
		EmployeeID: 1001,
		Period:     "2024-02",
		Scores:     performance.Scores{Productivity: 5, Communication: 4, Teamwork: 4, Punctuality: 4},
	}
	resp := doJSON(t, srv, http.MethodPost, "/api/performance-reviews", admin.Token, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rv := decodeBody[performance.Review](t, resp)
	assert.Equal(t, 4.25, rv.FinalScore)

	resp = doJSON(t, srv, http.MethodPost, "/api/performance-reviews", admin.Token, in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	in.Period = "2024/02"
	resp = doJSON(t, srv, http.MethodPost, "/api/performance-reviews", admin.Token, in)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, srv, http.MethodGet, "/healthz", "", nil, "X-Request-ID", "abc")
	assert.Equal(t, "abc", resp.Header.Get("X-Request-ID"))
}
