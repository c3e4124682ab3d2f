package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/api"
)

func newSignupCmd() *cobra.Command {
	var req api.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		Long:  "Registers a new account. The service emails a one-time code; confirm it with 'rf verify' to activate the account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd, req)
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")

	return cmd
}

func runSignup(cmd *cobra.Command, req api.SignupRequest) error {
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("--email and --password are required")
	}

	if err := newAPIClient().Signup(cmd.Context(), req); err != nil {
		return fmt.Errorf("signing up: %w", err)
	}

	fmt.Printf("Account created. A verification code was sent to %s.\n", req.Email)
	fmt.Printf("Run 'rf verify %s <code>' to activate it.\n", req.Email)
	return nil
}
