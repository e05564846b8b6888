package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Headline numbers, recent hires and activity",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	admin := app.Store.Identity().User.IsAdmin()
	if admin {
		if err := check(app.Store.LoadRecentEmployees(cmd.Context())); err != nil {
			return err
		}
		if err := check(app.Store.LoadActivities(cmd.Context())); err != nil {
			return err
		}
	}

	stats := app.Store.Stats()
	if rootFlags.json {
		return printJSON(cmd, map[string]any{
			"stats":           stats,
			"recentEmployees": app.Store.RecentEmployees(),
			"activities":      app.Store.Activities(),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Employees:       %d\n", stats.TotalEmployees)
	fmt.Fprintf(out, "Present today:   %d\n", stats.PresentToday)
	fmt.Fprintf(out, "Pending leave:   %d\n", stats.PendingLeaves)
	fmt.Fprintf(out, "Monthly payroll: %.2f\n", stats.MonthlyPayroll)
	if !admin {
		return nil
	}

	if recent := app.Store.RecentEmployees(); len(recent) > 0 {
		fmt.Fprintf(out, "\nRecent employees:\n")
		w := newTable(cmd)
		for _, e := range recent {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", e.EmployeeID, e.FullName(), e.Department, e.HireDate)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if activities := app.Store.Activities(); len(activities) > 0 {
		fmt.Fprintf(out, "\nActivity:\n")
		w := newTable(cmd)
		for _, a := range activities {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", a.Timestamp, a.Type, a.Message)
		}
		return w.Flush()
	}
	return nil
}
