package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFavoritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List your favorite listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := newAPIClient().Favorites(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing favorites: %w", err)
			}

			cacheListings(props)

			if isJSON() {
				return printJSON(props)
			}
			return printListingTable(props)
		},
	}
}
