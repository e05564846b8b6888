package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	appclient "ems/internal/app/client"
	"ems/internal/domain/auth"
	"ems/internal/session"
)

var loginFlags struct {
	email    string
	password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runLogout,
}

var registerFlags struct {
	username string
	email    string
	password string
	confirm  string
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a user account",
	RunE:  runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	f := loginCmd.Flags()
	f.StringVar(&loginFlags.email, "email", "", "Account email (required)")
	f.StringVar(&loginFlags.password, "password", "", "Account password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	f = registerCmd.Flags()
	f.StringVar(&registerFlags.username, "username", "", "Username (required)")
	f.StringVar(&registerFlags.email, "email", "", "Account email (required)")
	f.StringVar(&registerFlags.password, "password", "", "Password (required)")
	f.StringVar(&registerFlags.confirm, "confirm-password", "", "Password again (required)")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("confirm-password")
}

func sessionErr(res session.Result) error {
	if res.Status != 0 {
		return fmt.Errorf("%s (HTTP %d)", res.Message, res.Status)
	}
	return errors.New(res.Message)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	app, err := openApp(cmd, appclient.WithoutAutoInit())
	if err != nil {
		return err
	}
	defer app.Close()

	res := app.Session.Login(cmd.Context(), loginFlags.email, loginFlags.password)
	if !res.Success {
		return sessionErr(res)
	}
	identity, _ := app.Session.Identity()
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", identity.User.Email, identity.User.Role)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	app, err := openApp(cmd, appclient.WithoutAutoInit())
	if err != nil {
		return err
	}
	defer app.Close()

	app.Restore(cmd.Context())
	app.Session.Logout(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	app, err := openApp(cmd, appclient.WithoutAutoInit())
	if err != nil {
		return err
	}
	defer app.Close()

	res := app.Session.Register(cmd.Context(), auth.SignupRequest{
		Username:        registerFlags.username,
		Email:           registerFlags.email,
		Password:        registerFlags.password,
		ConfirmPassword: registerFlags.confirm,
	})
	if !res.Success {
		return sessionErr(res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	app, err := openApp(cmd, appclient.WithoutAutoInit())
	if err != nil {
		return err
	}
	defer app.Close()

	if app.Restore(cmd.Context()) != session.StateAuthenticated {
		return errNotLoggedIn
	}
	identity, _ := app.Session.Identity()
	if rootFlags.json {
		return printJSON(cmd, map[string]any{
			"user":      identity.User,
			"employee":  identity.Employee,
			"expiresAt": identity.ExpiresAt,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "User:     %s <%s>\n", identity.User.Name(), identity.User.Email)
	fmt.Fprintf(out, "Role:     %s\n", identity.User.Role)
	if biz, ok := identity.BusinessID(); ok {
		fmt.Fprintf(out, "Employee: #%d\n", biz)
	} else {
		fmt.Fprintf(out, "Employee: not linked\n")
	}
	if identity.ExpiresAt != nil {
		fmt.Fprintf(out, "Expires:  %s\n", identity.ExpiresAt.Format("2006-01-02 15:04 MST"))
	}
	return nil
}
