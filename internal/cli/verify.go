package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var resend bool

	cmd := &cobra.Command{
		Use:   "verify <email> [code]",
		Short: "Verify an account with the emailed code",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			if resend {
				if err := newAPIClient().ResendOTP(cmd.Context(), email); err != nil {
					return fmt.Errorf("resending code: %w", err)
				}
				fmt.Printf("A fresh code was sent to %s.\n", email)
				return nil
			}

			if len(args) < 2 {
				return fmt.Errorf("verification code required (or use --resend)")
			}

			if err := newAPIClient().VerifyOTP(cmd.Context(), email, args[1]); err != nil {
				return fmt.Errorf("verifying account: %w", err)
			}
			fmt.Println("Account verified. You can log in now.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&resend, "resend", false, "send a fresh verification code")

	return cmd
}
