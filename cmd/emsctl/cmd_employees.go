package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ems/internal/domain/employee"
)

var employeesCmd = &cobra.Command{
	Use:     "employees",
	Aliases: []string{"emp"},
	Short:   "List and manage employees",
}

var employeeListFlags struct {
	query      string
	department string
	status     string
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees from the directory",
	RunE:  runEmployeeList,
}

var employeeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search employees on the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmployeeSearch,
}

var employeeInput employee.Input

var employeeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee",
	RunE:  runEmployeeAdd,
}

var employeeUpdateCmd = &cobra.Command{
	Use:   "update <employee-number>",
	Short: "Change fields of an employee",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmployeeUpdate,
}

var employeeDeleteCmd = &cobra.Command{
	Use:   "delete <employee-number>",
	Short: "Delete an employee",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmployeeDelete,
}

func init() {
	f := employeeListCmd.Flags()
	f.StringVar(&employeeListFlags.query, "query", "", "Match name, email or position")
	f.StringVar(&employeeListFlags.department, "department", "", "Only this department")
	f.StringVar(&employeeListFlags.status, "status", "", "Only this status (active, inactive, terminated)")

	employeeInputFlags(employeeAddCmd.Flags())
	employeeInputFlags(employeeUpdateCmd.Flags())

	employeesCmd.AddCommand(employeeListCmd, employeeSearchCmd, employeeAddCmd, employeeUpdateCmd, employeeDeleteCmd)
}

func employeeInputFlags(f *pflag.FlagSet) {
	f.StringVar(&employeeInput.FirstName, "first-name", "", "First name")
	f.StringVar(&employeeInput.LastName, "last-name", "", "Last name")
	f.StringVar(&employeeInput.Email, "email", "", "Work email")
	f.StringVar(&employeeInput.Phone, "phone", "", "Phone number")
	f.StringVar(&employeeInput.Department, "department", "", "Department name")
	f.StringVar(&employeeInput.Position, "position", "", "Job title")
	f.Float64Var(&employeeInput.Salary, "salary", 0, "Annual salary")
	f.StringVar(&employeeInput.HireDate, "hire-date", "", "Hire date (YYYY-MM-DD)")
	f.StringVar((*string)(&employeeInput.Status), "status", "", "Status (active, inactive, terminated)")
}

func printEmployees(cmd *cobra.Command, list []employee.Employee) error {
	if rootFlags.json {
		return printJSON(cmd, list)
	}
	w := newTable(cmd)
	fmt.Fprintf(w, "No.\tName\tEmail\tDepartment\tPosition\tStatus\n")
	for _, e := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.EmployeeID, e.FullName(), e.Email, e.Department, e.Position, e.Status)
	}
	return w.Flush()
}

func runEmployeeList(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.Store.Identity().User.IsAdmin() {
		if err := check(app.Store.LoadEmployees(cmd.Context())); err != nil {
			return err
		}
	}
	return printEmployees(cmd, app.Store.Employees(employee.Filter{
		Query:      employeeListFlags.query,
		Department: employeeListFlags.department,
		Status:     employee.Status(employeeListFlags.status),
	}))
}

func runEmployeeSearch(cmd *cobra.Command, args []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	list, res := app.Store.SearchEmployees(cmd.Context(), args[0])
	if err := check(res); err != nil {
		return err
	}
	return printEmployees(cmd, list)
}

func runEmployeeAdd(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	in := employeeInput
	if in.Status == "" {
		in.Status = employee.StatusActive
	}
	return done(cmd, app.Store.AddEmployee(cmd.Context(), in), "Employee added")
}

func runEmployeeUpdate(cmd *cobra.Command, args []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	id, err := storageIDFor(app, args[0])
	if err != nil {
		return err
	}
	current, _ := app.Store.Employee(id)
	in := employee.InputFrom(current)
	f := cmd.Flags()
	if f.Changed("first-name") {
		in.FirstName = employeeInput.FirstName
	}
	if f.Changed("last-name") {
		in.LastName = employeeInput.LastName
	}
	if f.Changed("email") {
		in.Email = employeeInput.Email
	}
	if f.Changed("phone") {
		in.Phone = employeeInput.Phone
	}
	if f.Changed("department") {
		in.Department = employeeInput.Department
	}
	if f.Changed("position") {
		in.Position = employeeInput.Position
	}
	if f.Changed("salary") {
		in.Salary = employeeInput.Salary
	}
	if f.Changed("hire-date") {
		in.HireDate = employeeInput.HireDate
	}
	if f.Changed("status") {
		in.Status = employeeInput.Status
	}
	return done(cmd, app.Store.UpdateEmployee(cmd.Context(), id, in), "Employee updated")
}

func runEmployeeDelete(cmd *cobra.Command, args []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	id, err := storageIDFor(app, args[0])
	if err != nil {
		return err
	}
	return done(cmd, app.Store.DeleteEmployee(cmd.Context(), id), "Employee deleted")
}
