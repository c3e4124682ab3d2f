// Package cli defines the cobra command tree for rent-finder.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/api"
	"github.com/mkhalil/rent-finder/internal/cache"
	"github.com/mkhalil/rent-finder/internal/logging"
)

var (
	flagFormat  string
	flagCache   string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rf",
		Short:         "Browse and list rental properties",
		Long:          "A client for the rental listings service. Browse and search listings, manage favorites and reviews, and publish paid listings from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flagVerbose)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagCache, "cache", "", "listings cache path (default: ~/.rent-finder/listings.db)")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newMineCmd(),
		newFavoriteCmd(),
		newFavoritesCmd(),
		newReviewCmd(),
		newReviewsCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newSignupCmd(),
		newVerifyCmd(),
		newResetCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates a client for the rental listings API using the
// configured server and stored token.
func newAPIClient() *api.Client {
	return api.New(getServerURL(), getToken())
}

// openCache opens the listings cache using the --cache flag or default
// path.
func openCache() (*sql.DB, error) {
	path := flagCache
	if path == "" {
		var err error
		path, err = cache.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return cache.Open(path)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeCache closes the cache database, logging any error to stderr.
func closeCache(db *sql.DB) {
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing cache: %v\n", err)
	}
}
