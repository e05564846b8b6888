package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ems/internal/domain/attendance"
	"ems/internal/domain/employee"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Today's attendance",
}

var attendanceTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's attendance board",
	RunE:  runAttendanceToday,
}

var attendanceToggleCmd = &cobra.Command{
	Use:   "toggle <employee-number>",
	Short: "Flip an employee between present and absent",
	Args:  cobra.ExactArgs(1),
	RunE:  runAttendanceToggle,
}

var attendanceMarkAllFlags struct {
	status string
}

var attendanceMarkAllCmd = &cobra.Command{
	Use:   "mark-all",
	Short: "Mark every active employee with one status",
	RunE:  runAttendanceMarkAll,
}

var attendanceCheckInCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record your own check-in",
	RunE:  runAttendanceCheckIn,
}

func init() {
	attendanceMarkAllCmd.Flags().StringVar(&attendanceMarkAllFlags.status, "status", string(attendance.StatusPresent), "Status (present, absent, late, half-day)")

	attendanceCmd.AddCommand(attendanceTodayCmd, attendanceToggleCmd, attendanceMarkAllCmd, attendanceCheckInCmd)
}

func runAttendanceToday(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := check(app.Store.LoadAttendance(cmd.Context())); err != nil {
		return err
	}
	entries := app.Store.Attendance()
	if rootFlags.json {
		records := make([]attendance.Record, 0, len(entries))
		for _, e := range entries {
			records = append(records, e.Record)
		}
		return printJSON(cmd, records)
	}
	w := newTable(cmd)
	fmt.Fprintf(w, "No.\tName\tStatus\tCheck-in\tCheck-out\n")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.Record.EmployeeID, e.Record.EmployeeName, e.Label(), e.Record.CheckIn, e.Record.CheckOut)
	}
	return w.Flush()
}

func runAttendanceToggle(cmd *cobra.Command, args []string) error {
	biz, err := parseBusinessID(args[0])
	if err != nil {
		return err
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := check(app.Store.LoadAttendance(cmd.Context())); err != nil {
		return err
	}
	if err := check(app.Store.ToggleAttendance(cmd.Context(), biz)); err != nil {
		return err
	}
	entry, _ := app.Store.AttendanceEntry(biz)
	fmt.Fprintf(cmd.OutOrStdout(), "#%d is now %s\n", biz, entry.Label())
	return nil
}

func runAttendanceMarkAll(cmd *cobra.Command, _ []string) error {
	status := attendance.Status(attendanceMarkAllFlags.status)
	if !status.Valid() {
		return fmt.Errorf("unknown attendance status %q", status)
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	var marks []attendance.Mark
	for _, e := range app.Store.Employees(employee.Filter{Status: employee.StatusActive}) {
		marks = append(marks, attendance.Mark{EmployeeID: e.EmployeeID, Status: status})
	}
	if len(marks) == 0 {
		return fmt.Errorf("no active employees to mark")
	}
	return done(cmd, app.Store.MarkAll(cmd.Context(), marks), fmt.Sprintf("Marked %d employee(s) %s", len(marks), status))
}

func runAttendanceCheckIn(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	return done(cmd, app.Store.CheckIn(cmd.Context()), "Checked in")
}
