package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := newAPIClient().UserProperties(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing your properties: %w", err)
			}

			if isJSON() {
				return printJSON(props)
			}
			return printListingTable(props)
		},
	}
}
