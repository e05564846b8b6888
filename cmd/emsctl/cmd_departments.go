package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ems/internal/domain/department"
)

var departmentsCmd = &cobra.Command{
	Use:     "departments",
	Aliases: []string{"dept"},
	Short:   "List and manage departments",
}

var departmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments",
	RunE:  runDepartmentList,
}

var departmentInput department.Input

var departmentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a department",
	RunE:  runDepartmentAdd,
}

var departmentUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename or describe a department",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepartmentUpdate,
}

var departmentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a department",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepartmentDelete,
}

var departmentEmployeesCmd = &cobra.Command{
	Use:   "employees <id>",
	Short: "List the employees of a department",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepartmentEmployees,
}

func init() {
	for _, c := range []*cobra.Command{departmentAddCmd, departmentUpdateCmd} {
		f := c.Flags()
		f.StringVar(&departmentInput.Name, "name", "", "Department name")
		f.StringVar(&departmentInput.Description, "description", "", "Description")
	}
	_ = departmentAddCmd.MarkFlagRequired("name")

	departmentsCmd.AddCommand(departmentListCmd, departmentAddCmd, departmentUpdateCmd, departmentDeleteCmd, departmentEmployeesCmd)
}

func runDepartmentList(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.Store.Identity().User.IsAdmin() {
		if err := check(app.Store.LoadDepartments(cmd.Context())); err != nil {
			return err
		}
	}
	list := app.Store.Departments()
	if rootFlags.json {
		return printJSON(cmd, list)
	}
	w := newTable(cmd)
	fmt.Fprintf(w, "ID\tName\tEmployees\tDescription\n")
	for _, d := range list {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", d.ID, d.Name, d.EmployeeCount, d.Description)
	}
	return w.Flush()
}

func runDepartmentAdd(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	return done(cmd, app.Store.AddDepartment(cmd.Context(), departmentInput), "Department added")
}

func runDepartmentUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseInt64(args[0], "department id")
	if err != nil {
		return err
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	var in department.Input
	for _, d := range app.Store.Departments() {
		if d.ID == id {
			in = department.InputFrom(d)
		}
	}
	if cmd.Flags().Changed("name") {
		in.Name = departmentInput.Name
	}
	if cmd.Flags().Changed("description") {
		in.Description = departmentInput.Description
	}
	return done(cmd, app.Store.UpdateDepartment(cmd.Context(), id, in), "Department updated")
}

func runDepartmentDelete(cmd *cobra.Command, args []string) error {
	id, err := parseInt64(args[0], "department id")
	if err != nil {
		return err
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	return done(cmd, app.Store.DeleteDepartment(cmd.Context(), id), "Department deleted")
}

func runDepartmentEmployees(cmd *cobra.Command, args []string) error {
	id, err := parseInt64(args[0], "department id")
	if err != nil {
		return err
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	list, res := app.Store.DepartmentEmployees(cmd.Context(), id)
	if err := check(res); err != nil {
		return err
	}
	return printEmployees(cmd, list)
}
