package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReviewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reviews <property-id>",
		Short: "List the reviews for a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			reviews, err := newAPIClient().Reviews(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("fetching reviews: %w", err)
			}

			if isJSON() {
				return printJSON(reviews)
			}
			printReviews(reviews)
			return nil
		},
	}
}
