package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/cache"
	"github.com/mkhalil/rent-finder/internal/favorites"
	"github.com/mkhalil/rent-finder/internal/property"
)

func newFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle a listing as favorite",
		Long:  "Add the listing to your favorites, or remove it if it already is one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runFavorite(cmd, id)
		},
	}
}

func runFavorite(cmd *cobra.Command, id int64) error {
	ctx := cmd.Context()
	c := newAPIClient()
	store := favorites.NewStore(c)

	p := &property.Property{ID: id}
	if err := store.Refresh(ctx, p); err != nil {
		return fmt.Errorf("checking favorite state: %w", err)
	}

	if err := store.Toggle(ctx, p); err != nil {
		if errors.Is(err, favorites.ErrInFlight) {
			return err
		}
		return fmt.Errorf("toggling favorite: %w", err)
	}

	persistFavorite(id, p.IsFavorite)

	if p.IsFavorite {
		fmt.Printf("Listing %d added to favorites.\n", id)
	} else {
		fmt.Printf("Listing %d removed from favorites.\n", id)
	}
	return nil
}

// persistFavorite mirrors the toggle into the local cache, best effort.
func persistFavorite(id int64, favorite bool) {
	db, err := openCache()
	if err != nil {
		slog.Debug("opening cache failed", "error", err)
		return
	}
	defer closeCache(db)

	if err := cache.NewStore(db).SetFavorite(id, favorite); err != nil && !errors.Is(err, cache.ErrNotFound) {
		slog.Debug("caching favorite flag failed", "error", err)
	}
}
