package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/cache"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runRemove(cmd, id)
		},
	}
}

func runRemove(cmd *cobra.Command, id int64) error {
	if err := newAPIClient().DeleteProperty(cmd.Context(), id); err != nil {
		return fmt.Errorf("removing listing %d: %w", id, err)
	}

	if db, err := openCache(); err == nil {
		if err := cache.NewStore(db).Delete(id); err != nil {
			slog.Debug("evicting cached listing failed", "error", err)
		}
		closeCache(db)
	}

	fmt.Printf("Listing %d removed.\n", id)
	return nil
}
