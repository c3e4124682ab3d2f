package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/auth"
	"github.com/mkhalil/rent-finder/internal/cache"
	"github.com/mkhalil/rent-finder/internal/property"
)

func newListCmd() *cobra.Command {
	var (
		filters   property.Filters
		cached    bool
		favesOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rental properties",
		Long:  "List properties from the rental service, optionally filtered. Results are cached locally for offline browsing with --cached.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cached {
				return runListCached(filters, favesOnly)
			}
			return runList(cmd.Context(), filters)
		},
	}

	cmd.Flags().IntVar(&filters.Page, "page", 1, "result page to fetch")
	cmd.Flags().IntVar(&filters.PageSize, "page-size", 0, "results per page")
	cmd.Flags().StringVar(&filters.PropertyType, "type", "", "property type (e.g. Apartment, Villa)")
	cmd.Flags().StringVar(&filters.City, "city", "", "filter by city")
	cmd.Flags().StringVar(&filters.Governate, "governate", "", "filter by governate")
	cmd.Flags().IntVar(&filters.Bedrooms, "beds", 0, "minimum bedrooms")
	cmd.Flags().IntVar(&filters.Bathrooms, "baths", 0, "minimum bathrooms")
	cmd.Flags().Int64Var(&filters.Size, "size", 0, "minimum size in sqm")
	cmd.Flags().Int64Var(&filters.MinPrice, "min-price", 0, "minimum price")
	cmd.Flags().Int64Var(&filters.MaxPrice, "max-price", 0, "maximum price")
	cmd.Flags().StringVar(&filters.SortBy, "sort", "", "sort order")
	cmd.Flags().StringVar(&filters.Search, "search", "", "full-text search term")
	cmd.Flags().BoolVar(&cached, "cached", false, "browse the local cache instead of the server")
	cmd.Flags().BoolVar(&favesOnly, "favorites", false, "with --cached, show cached favorites only")

	return cmd
}

func runList(ctx context.Context, filters property.Filters) error {
	c := newAPIClient()

	page, err := c.ListProperties(ctx, filters)
	if err != nil {
		return fmt.Errorf("listing properties: %w", err)
	}

	annotateFavorites(ctx, page.Properties)
	cacheListings(page.Properties)

	if isJSON() {
		return printJSON(page)
	}
	return printListingTable(page.Properties)
}

func runListCached(filters property.Filters, favesOnly bool) error {
	db, err := openCache()
	if err != nil {
		return err
	}
	defer closeCache(db)

	props, err := cache.NewStore(db).List(cache.ListOptions{
		City:          filters.City,
		Governate:     filters.Governate,
		FavoritesOnly: favesOnly,
	})
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(props)
	}
	return printListingTable(props)
}

// annotateFavorites marks the user's favorites in a result set. Skipped
// silently when not logged in or when the favorites fetch fails; the
// listings themselves still render.
func annotateFavorites(ctx context.Context, props []*property.Property) {
	if !auth.IsAuthenticated(getToken()) {
		return
	}

	faves, err := newAPIClient().Favorites(ctx)
	if err != nil {
		slog.Debug("fetching favorites for annotation failed", "error", err)
		return
	}

	ids := make(map[int64]bool, len(faves))
	for _, f := range faves {
		ids[f.ID] = true
	}
	for _, p := range props {
		if ids[p.ID] {
			p.IsFavorite = true
		}
	}
}

// cacheListings stores fetched listings in the local cache, best effort.
func cacheListings(props []*property.Property) {
	db, err := openCache()
	if err != nil {
		slog.Debug("opening cache failed", "error", err)
		return
	}
	defer closeCache(db)

	if err := cache.NewStore(db).UpsertAll(props); err != nil {
		slog.Debug("caching listings failed", "error", err)
	}
}
