// emsctl is the command-line client for the employee management API.
//
// Usage:
//
//	emsctl login --email <email> --password <password>
//	emsctl employees list [--department <name>] [--status <status>]
//	emsctl leave request --type vacation --start 2024-03-11 --end 2024-03-13 --reason "trip"
//	emsctl payroll generate --period 2024-03
//	emsctl sync --metrics
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	apiURL     string
	logLevel   string
	json       bool
}

var rootCmd = &cobra.Command{
	Use:           "emsctl",
	Short:         "Manage employees, leave, attendance, payroll and reviews",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "Path to a YAML config file")
	f.StringVar(&rootFlags.apiURL, "api", "", "API base URL (overrides api.base_url)")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Log level (overrides log.level)")
	f.BoolVar(&rootFlags.json, "json", false, "Print results as JSON")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(employeesCmd)
	rootCmd.AddCommand(departmentsCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(attendanceCmd)
	rootCmd.AddCommand(payrollCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
