package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ems/internal/domain/payroll"
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Payroll records and payslips",
}

var payrollListFlags struct {
	status string
}

var payrollListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payroll records (all for admins, your own otherwise)",
	RunE:  runPayrollList,
}

var payrollStatusCmd = &cobra.Command{
	Use:   "status <id> <pending|processed|paid>",
	Short: "Move a payroll record forward",
	Args:  cobra.ExactArgs(2),
	RunE:  runPayrollStatus,
}

var payrollGenerateFlags struct {
	period string
}

var payrollGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate payroll for a month",
	RunE:  runPayrollGenerate,
}

var payslipFlags struct {
	output string
}

var payslipCmd = &cobra.Command{
	Use:   "payslip <id>",
	Short: "Write a PDF payslip",
	Args:  cobra.ExactArgs(1),
	RunE:  runPayslip,
}

func init() {
	payrollListCmd.Flags().StringVar(&payrollListFlags.status, "status", "", "Only this status (admins)")
	payrollGenerateCmd.Flags().StringVar(&payrollGenerateFlags.period, "period", "", "Month as YYYY-MM (default: current month)")
	payslipCmd.Flags().StringVarP(&payslipFlags.output, "output", "o", "", "Output file (default: payslip-<id>.pdf)")

	payrollCmd.AddCommand(payrollListCmd, payrollStatusCmd, payrollGenerateCmd, payslipCmd)
}

func runPayrollList(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if payrollListFlags.status != "" {
		err = check(app.Store.LoadPayrollsByStatus(cmd.Context(), payroll.Status(payrollListFlags.status)))
	} else {
		err = check(app.Store.LoadPayrolls(cmd.Context()))
	}
	if err != nil {
		return err
	}
	list := app.Store.Payrolls()
	if rootFlags.json {
		return printJSON(cmd, list)
	}
	w := newTable(cmd)
	fmt.Fprintf(w, "ID\tEmployee\tPeriod\tBasic\tAllowances\tDeductions\tNet\tStatus\n")
	for _, r := range list {
		name := r.EmployeeName
		if name == "" {
			name = employeeName(app, r.EmployeeID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			r.ID, name, r.Label(), r.BasicSalary, r.Allowances, r.Deductions, r.NetSalary, r.Status)
	}
	return w.Flush()
}

func runPayrollStatus(cmd *cobra.Command, args []string) error {
	id, err := parseInt64(args[0], "payroll id")
	if err != nil {
		return err
	}
	to := payroll.Status(args[1])
	if !payroll.ValidStatus(to) {
		return fmt.Errorf("invalid payroll status %q", args[1])
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := check(app.Store.LoadPayrolls(cmd.Context())); err != nil {
		return err
	}
	return done(cmd, app.Store.UpdatePayrollStatus(cmd.Context(), id, to), fmt.Sprintf("Payroll %d marked %s", id, to))
}

func runPayrollGenerate(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	return done(cmd, app.Store.GeneratePayroll(cmd.Context(), payrollGenerateFlags.period), "Payroll generated")
}

func runPayslip(cmd *cobra.Command, args []string) error {
	id, err := parseInt64(args[0], "payroll id")
	if err != nil {
		return err
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := check(app.Store.LoadPayrolls(cmd.Context())); err != nil {
		return err
	}
	record, ok := app.Store.Payroll(id)
	if !ok {
		return fmt.Errorf("payroll record %d not found", id)
	}
	name := record.EmployeeName
	if name == "" {
		name = employeeName(app, record.EmployeeID)
	}

	path := payslipFlags.output
	if path == "" {
		path = fmt.Sprintf("payslip-%d.pdf", id)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create payslip: %w", err)
	}
	if err := payroll.WritePayslip(f, record, name); err != nil {
		_ = f.Close()
		return fmt.Errorf("write payslip: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Payslip: %s\n", path)
	return nil
}
