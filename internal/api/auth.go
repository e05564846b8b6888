package api

import (
	"context"
	"encoding/json"
	"net/http"

	"ems/internal/domain/auth"
)

type AuthService struct{ c *Client }

func (s *AuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	var out auth.LoginResponse
	err := s.c.do(ctx, call{op: "auth.signin", method: http.MethodPost, path: "/auth/signin", body: req}, &out)
	return out, err
}

// Register creates an account and returns the backend's confirmation,
// which may be plain text or a {"message"} object.
func (s *AuthService) Register(ctx context.Context, req auth.SignupRequest) (string, error) {
	var text string
	if err := s.c.do(ctx, call{op: "auth.signup", method: http.MethodPost, path: "/auth/signup", body: req}, &text); err != nil {
		return "", err
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(text), &payload) == nil && payload.Message != "" {
		return payload.Message, nil
	}
	return text, nil
}
