package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FryoPie/Student-portal/internal/guard"
	"github.com/FryoPie/Student-portal/internal/validator"
)

func newLoginCommand(a *app) *cobra.Command {
	var studentID, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with your roll number and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.Login(cmd.Context(), studentID, password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", user.DisplayName(), user.Role)
			fmt.Printf("Landing page: %s\n", guard.Home(user.Role))
			return nil
		},
	}
	cmd.Flags().StringVar(&studentID, "student-id", "", "roll number, e.g. 2024CS001")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("student-id")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCommand(a *app) *cobra.Command {
	var req validator.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Registered and logged in as %s (%s)\n", user.DisplayName(), user.Role)
			fmt.Printf("Landing page: %s\n", guard.Home(user.Role))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.StudentID, "student-id", "", "roll number, e.g. 2024CS001")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (minimum 8 characters)")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm-password", "", "repeat the password")
	cmd.Flags().StringVar(&req.Role, "role", "student", "student or coordinator")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("student-id")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("confirm-password")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := a.shell.Logout()
			fmt.Printf("Logged out (redirected to %s)\n", target)
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session and navigation",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := a.auth.CurrentUser()
			if !ok {
				fmt.Println("Not logged in")
			} else {
				fmt.Printf("%s (%s) - %s\n", user.DisplayName(), user.StudentID, user.Role)
			}
			for _, link := range a.shell.NavLinks() {
				fmt.Printf("  %-22s %s\n", link.Label, link.Path)
			}
			return nil
		},
	}
}
