package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appclient "ems/internal/app/client"
	"ems/internal/domain/employee"
	"ems/internal/platform/config"
	"ems/internal/platform/logging"
	"ems/internal/session"
	"ems/internal/store"
)

var errNotLoggedIn = errors.New("not logged in; run 'emsctl login' first")

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if rootFlags.apiURL != "" {
		cfg.API.BaseURL = rootFlags.apiURL
	}
	if rootFlags.logLevel != "" {
		cfg.Log.Level = rootFlags.logLevel
	}
	return cfg, nil
}

func openApp(cmd *cobra.Command, opts ...appclient.Option) (*appclient.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return appclient.New(cmd.Context(), cfg, logging.New(cfg.Log.Level), opts...)
}

// openSession restores the stored session, which also runs the initial
// loads for the caller's role.
func openSession(cmd *cobra.Command) (*appclient.App, error) {
	app, err := openApp(cmd)
	if err != nil {
		return nil, err
	}
	if app.Restore(cmd.Context()) != session.StateAuthenticated {
		_ = app.Close()
		return nil, errNotLoggedIn
	}
	return app, nil
}

// check turns a failed store result into an error carrying its message.
func check(res store.Result) error {
	if res.Success {
		return nil
	}
	if res.Status != 0 {
		return fmt.Errorf("%s (HTTP %d)", res.Message, res.Status)
	}
	return errors.New(res.Message)
}

func done(cmd *cobra.Command, res store.Result, fallback string) error {
	if err := check(res); err != nil {
		return err
	}
	msg := res.Message
	if msg == "" {
		msg = fallback
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseInt64(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}

func parseBusinessID(arg string) (employee.BusinessID, error) {
	id, err := parseInt64(arg, "employee number")
	return employee.BusinessID(id), err
}

// storageIDFor maps an employee number to the record key the API uses
// for employee writes.
func storageIDFor(app *appclient.App, arg string) (employee.StorageID, error) {
	biz, err := parseBusinessID(arg)
	if err != nil {
		return 0, err
	}
	id, ok := app.Store.StorageIDFor(biz)
	if !ok {
		return 0, fmt.Errorf("employee #%d not found", biz)
	}
	return id, nil
}

// employeeName resolves a display name from the cached directory.
func employeeName(app *appclient.App, id employee.BusinessID) string {
	if sid, ok := app.Store.StorageIDFor(id); ok {
		if e, ok := app.Store.Employee(sid); ok {
			return e.FullName()
		}
	}
	identity := app.Store.Identity()
	if biz, ok := identity.BusinessID(); ok && biz == id {
		return identity.User.Name()
	}
	return fmt.Sprintf("#%d", id)
}
