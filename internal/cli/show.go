package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/cache"
	"github.com/mkhalil/rent-finder/internal/property"
)

func newShowCmd() *cobra.Command {
	var withReviews bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a property listing",
		Long:  "Show the details of one listing. Falls back to the local cache when the server does not have the listing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runShow(cmd, id, withReviews)
		},
	}

	cmd.Flags().BoolVar(&withReviews, "reviews", false, "include reviews")

	return cmd
}

func runShow(cmd *cobra.Command, id int64, withReviews bool) error {
	ctx := cmd.Context()
	c := newAPIClient()

	p, err := c.GetProperty(ctx, id)
	if err != nil {
		if cached, cacheErr := showFromCache(id); cacheErr == nil {
			p = cached
		} else if errors.Is(cacheErr, cache.ErrNotFound) {
			return err
		} else {
			return fmt.Errorf("listing %d: %w (cache: %v)", id, err, cacheErr)
		}
	} else {
		annotateFavorites(ctx, []*property.Property{p})
		cacheListings([]*property.Property{p})
	}

	var reviews []*property.Review
	if withReviews {
		reviews, err = c.Reviews(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching reviews: %w", err)
		}
	}

	if isJSON() {
		if withReviews {
			return printJSON(struct {
				Listing *property.Property `json:"listing"`
				Reviews []*property.Review `json:"reviews"`
			}{p, reviews})
		}
		return printJSON(p)
	}

	printListingSummary(p)
	if withReviews {
		fmt.Println()
		printReviews(reviews)
	}
	return nil
}

func showFromCache(id int64) (*property.Property, error) {
	db, err := openCache()
	if err != nil {
		return nil, err
	}
	defer closeCache(db)

	return cache.NewStore(db).Get(id)
}

// parseID parses a numeric listing id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid listing id: %s", arg)
	}
	return id, nil
}
