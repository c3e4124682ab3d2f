package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/auth"
	"github.com/mkhalil/rent-finder/internal/property"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and auth status",
		Long:  "Tests the connection to the rental service and checks whether the stored token is still usable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	serverURL := getServerURL()
	token := getToken()

	fmt.Printf("Server:  %s\n", serverURL)

	switch {
	case token == "":
		fmt.Println("Login:   not logged in")
	case !auth.IsAuthenticated(token):
		fmt.Println("Login:   token expired")
	default:
		if userID, err := auth.UserID(token); err == nil {
			fmt.Printf("Login:   logged in (user %s)\n", userID)
		} else {
			fmt.Println("Login:   logged in")
		}
	}

	// A one-listing fetch is enough to prove the server is reachable.
	_, err := newAPIClient().ListProperties(cmd.Context(), property.Filters{Page: 1, PageSize: 1})
	if err != nil {
		fmt.Printf("Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	fmt.Println("Status:  ✓ connected")

	if token == "" {
		fmt.Println("\nRun 'rf login <email>' to authenticate.")
	}
	return nil
}
