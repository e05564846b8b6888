package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ems/internal/domain/leave"
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Request and decide leave",
}

var leaveListFlags struct {
	status    string
	leaveType string
}

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leave requests (all for admins, your own otherwise)",
	RunE:  runLeaveList,
}

var leaveInput leave.Input

var leaveRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Submit a leave request for yourself",
	RunE:  runLeaveRequest,
}

var leaveApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLeaveDecision(cmd, args[0], leave.StatusApproved)
	},
}

var leaveRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLeaveDecision(cmd, args[0], leave.StatusRejected)
	},
}

func init() {
	f := leaveListCmd.Flags()
	f.StringVar(&leaveListFlags.status, "status", "", "Only this status (pending, approved, rejected)")
	f.StringVar(&leaveListFlags.leaveType, "type", "", "Only this leave type")

	f = leaveRequestCmd.Flags()
	f.StringVar((*string)(&leaveInput.Type), "type", string(leave.TypeVacation), "Leave type (vacation, sick, personal, maternity, emergency)")
	f.StringVar(&leaveInput.StartDate, "start", "", "First day (YYYY-MM-DD)")
	f.StringVar(&leaveInput.EndDate, "end", "", "Last day (YYYY-MM-DD)")
	f.StringVar(&leaveInput.Reason, "reason", "", "Reason")
	_ = leaveRequestCmd.MarkFlagRequired("start")
	_ = leaveRequestCmd.MarkFlagRequired("end")
	_ = leaveRequestCmd.MarkFlagRequired("reason")

	leaveCmd.AddCommand(leaveListCmd, leaveRequestCmd, leaveApproveCmd, leaveRejectCmd)
}

func runLeaveList(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	list := app.Store.LeaveRequests(leave.Filter{
		Status: leave.Status(leaveListFlags.status),
		Type:   leave.Type(leaveListFlags.leaveType),
	})
	if rootFlags.json {
		return printJSON(cmd, list)
	}
	w := newTable(cmd)
	fmt.Fprintf(w, "ID\tEmployee\tType\tFrom\tTo\tDays\tStatus\tReason\n")
	for _, r := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, employeeName(app, r.EmployeeID), r.Type, r.StartDate, r.EndDate, r.Days, r.Status, r.Reason)
	}
	return w.Flush()
}

func runLeaveRequest(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	in := leaveInput
	if days, err := leave.DaysBetween(in.StartDate, in.EndDate); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Requesting %d day(s)\n", days)
	}
	return done(cmd, app.Store.CreateLeaveRequest(cmd.Context(), in), "Leave request submitted")
}

func runLeaveDecision(cmd *cobra.Command, arg string, to leave.Status) error {
	id, err := parseInt64(arg, "leave request id")
	if err != nil {
		return err
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if to == leave.StatusApproved {
		return done(cmd, app.Store.ApproveLeave(cmd.Context(), id), fmt.Sprintf("Leave request %d approved", id))
	}
	return done(cmd, app.Store.RejectLeave(cmd.Context(), id), fmt.Sprintf("Leave request %d rejected", id))
}
