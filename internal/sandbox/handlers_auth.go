package sandbox

import (
	"net/http"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
)

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	u, ok := s.db.userByEmail(req.Email)
	if !ok || auth.CheckPassword(u.PasswordHash, req.Password) != nil {
		fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	resp := auth.LoginResponse{
		Type:      "Bearer",
		ID:        u.ID,
		FirstName: u.Username,
		Email:     u.Email,
		Roles:     u.Roles,
	}
	claims := auth.Claims{UserID: u.ID, Email: u.Email, Roles: u.Roles}
	if e, ok := s.db.employeeByEmail(u.Email); ok {
		bizID, pk := e.EmployeeID, e.ID
		resp.EmployeeID = &bizID
		resp.EmployeePK = &pk
		resp.FirstName = e.FirstName
		resp.LastName = e.LastName
		claims.EmployeeID = int64(e.EmployeeID)
	}
	token, err := auth.GenerateToken(s.cfg.JWTSecret, claims, s.cfg.TokenTTL)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	resp.Token = token
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &payload) {
		return
	}
	req := auth.SignupRequest{Username: payload.Username, Email: payload.Email, Password: payload.Password, ConfirmPassword: payload.Password}
	if err := req.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	if _, taken := s.db.userByEmail(req.Email); taken {
		fail(w, http.StatusBadRequest, "Error: Email is already in use!")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	if _, err := s.db.addUser(user{Username: req.Username, Email: req.Email, PasswordHash: hash, Roles: []string{auth.AuthorityEmployee}}); err != nil {
		fail(w, http.StatusBadRequest, "Error: Email is already in use!")
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "User registered successfully!"})
}

// callerBusinessID returns the employee number carried by the token.
func callerBusinessID(r *http.Request) (employee.BusinessID, bool) {
	claims, ok := GetClaims(r.Context())
	if !ok || claims.EmployeeID == 0 {
		return 0, false
	}
	return employee.BusinessID(claims.EmployeeID), true
}

func isAdmin(r *http.Request) bool {
	claims, ok := GetClaims(r.Context())
	return ok && auth.RoleFromAuthorities(claims.Roles) == auth.RoleAdmin
}

// ownOrAdmin rejects non-admin callers reading another employee's data.
func ownOrAdmin(w http.ResponseWriter, r *http.Request, id employee.BusinessID) bool {
	if isAdmin(r) {
		return true
	}
	if own, ok := callerBusinessID(r); ok && own == id {
		return true
	}
	fail(w, http.StatusForbidden, "Access denied")
	return false
}
