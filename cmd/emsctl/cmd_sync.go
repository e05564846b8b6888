package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
)

var syncFlags struct {
	metrics bool
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Load everything for the signed-in role and summarize it",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncFlags.metrics, "metrics", false, "Print client request metrics afterwards")
}

func runSync(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	for _, load := range []func() error{
		func() error { return check(app.Store.LoadAttendance(ctx)) },
		func() error { return check(app.Store.LoadPayrolls(ctx)) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	identity := app.Store.Identity()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Signed in:   %s (%s)\n", identity.User.Email, identity.User.Role)
	fmt.Fprintf(out, "Init runs:   %d\n", app.Store.InitRuns())
	if identity.User.IsAdmin() {
		fmt.Fprintf(out, "Employees:   %d\n", len(app.Store.Employees(employee.Filter{})))
		fmt.Fprintf(out, "Departments: %d\n", len(app.Store.Departments()))
	}
	fmt.Fprintf(out, "Leave:       %d (%d pending)\n",
		len(app.Store.LeaveRequests(leave.Filter{})),
		len(app.Store.LeaveRequests(leave.Filter{Status: leave.StatusPending})))
	fmt.Fprintf(out, "Reviews:     %d\n", len(app.Store.Reviews()))
	fmt.Fprintf(out, "Payroll:     %d\n", len(app.Store.Payrolls()))
	fmt.Fprintf(out, "Attendance:  %d\n", len(app.Store.Attendance()))
	if msg := app.Store.Err(); msg != "" {
		fmt.Fprintf(out, "Last error:  %s\n", msg)
	}

	if syncFlags.metrics && app.Metrics != nil {
		lines, err := app.Metrics.Snapshot()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nMetrics:\n")
		w := newTable(cmd)
		for _, l := range lines {
			fmt.Fprintf(w, "  %s\t%s\t%g\n", l.Name, formatLabels(l.Labels), l.Value)
		}
		return w.Flush()
	}
	return nil
}

func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+labels[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}
