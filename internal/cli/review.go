package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/auth"
)

func newReviewCmd() *cobra.Command {
	var (
		rating   int
		comment  string
		update   int64
		deleteID int64
	)

	cmd := &cobra.Command{
		Use:   "review <property-id>",
		Short: "Review a listing",
		Long:  "Leave a rating and comment on a listing, or update or delete one of your reviews.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runReview(cmd, propertyID, rating, comment, update, deleteID)
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "rating from 1 to 5")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "review comment")
	cmd.Flags().Int64Var(&update, "update", 0, "review id to update instead of creating")
	cmd.Flags().Int64Var(&deleteID, "delete", 0, "review id to delete")

	return cmd
}

func runReview(cmd *cobra.Command, propertyID int64, rating int, comment string, update, deleteID int64) error {
	userID, err := auth.UserID(getToken())
	if err != nil {
		return fmt.Errorf("reviews require login: %w", err)
	}

	ctx := cmd.Context()
	c := newAPIClient()

	if deleteID > 0 {
		if err := c.DeleteReview(ctx, userID, deleteID); err != nil {
			return fmt.Errorf("deleting review: %w", err)
		}
		fmt.Printf("Review %d deleted.\n", deleteID)
		return nil
	}

	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be 1-5, got %d", rating)
	}

	if update > 0 {
		if err := c.UpdateReview(ctx, userID, update, rating, comment); err != nil {
			return fmt.Errorf("updating review: %w", err)
		}
		fmt.Printf("Review %d updated.\n", update)
		return nil
	}

	if err := c.AddReview(ctx, userID, propertyID, rating, comment); err != nil {
		return fmt.Errorf("adding review: %w", err)
	}
	fmt.Printf("Review added to listing %d.\n", propertyID)
	return nil
}
