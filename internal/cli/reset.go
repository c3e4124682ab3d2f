package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var (
		otp      string
		password string
	)

	cmd := &cobra.Command{
		Use:   "reset <email>",
		Short: "Reset a forgotten password",
		Long:  "Without flags, requests a reset code by email. With --otp and --password, completes the reset.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]
			c := newAPIClient()

			if otp == "" {
				if err := c.ForgotPassword(cmd.Context(), email); err != nil {
					return fmt.Errorf("requesting reset: %w", err)
				}
				fmt.Printf("A reset code was sent to %s.\n", email)
				fmt.Printf("Run 'rf reset %s --otp <code> --password <new>' to finish.\n", email)
				return nil
			}

			if password == "" {
				return fmt.Errorf("--password is required with --otp")
			}
			if err := c.ResetPassword(cmd.Context(), email, otp, password); err != nil {
				return fmt.Errorf("resetting password: %w", err)
			}
			fmt.Println("Password reset. You can log in now.")
			return nil
		},
	}

	cmd.Flags().StringVar(&otp, "otp", "", "reset code from the email")
	cmd.Flags().StringVar(&password, "password", "", "new password")

	return cmd
}
