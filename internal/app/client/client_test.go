package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/employee"
	"ems/internal/platform/config"
	"ems/internal/platform/storage"
	"ems/internal/sandbox"
	"ems/internal/session"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	sb, err := sandbox.New(sandbox.Config{JWTSecret: "app-client-secret-000", AdminEmail: "admin@ems.local", AdminPassword: "pw-admin", Seed: true}, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(sb.Router())
	t.Cleanup(srv.Close)

	return config.Config{
		API:     config.APIConfig{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second},
		Session: config.SessionConfig{Backend: config.SessionBackendMemory},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func TestLoginInitializesStore(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, testConfig(t), nil)
	require.NoError(t, err)
	defer app.Close()

	res := app.Session.Login(ctx, "admin@ems.local", "pw-admin")
	require.True(t, res.Success, res.Message)
	assert.True(t, app.Store.Initialized())
	assert.Len(t, app.Store.Employees(employee.Filter{}), 4)

	lines, err := app.Metrics.Snapshot()
	require.NoError(t, err)
	assert.NotEmpty(t, lines)

	app.Session.Logout(ctx)
	assert.False(t, app.Store.Initialized())
}

func TestRestoreFromSharedStorage(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	shared := storage.NewMemory()

	first, err := New(ctx, cfg, nil, WithStorage(shared), WithoutAutoInit())
	require.NoError(t, err)
	require.True(t, first.Session.Login(ctx, "jane.doe@ems.local", sandbox.DefaultEmployeePassword).Success)
	assert.False(t, first.Store.Initialized())

	second, err := New(ctx, cfg, nil, WithStorage(shared))
	require.NoError(t, err)
	assert.Equal(t, session.StateAuthenticated, second.Restore(ctx))
	assert.True(t, second.Store.Initialized())
	assert.Empty(t, second.Store.Employees(employee.Filter{}))
	biz, ok := second.Store.Identity().BusinessID()
	require.True(t, ok)
	assert.Equal(t, employee.BusinessID(1001), biz)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(context.Background(), config.Config{}, nil)
	require.Error(t, err)
}
