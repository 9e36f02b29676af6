// Command sitectl runs maintenance tasks against the site database and
// prints values operators need when setting the site up.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/energopraktiki/internal/config"
	"github.com/iliyamo/energopraktiki/internal/database"
)

// Overridden in tests.
var (
	loadConfig = config.Load
	openDB     = func(cfg config.Config) (*sql.DB, error) {
		return database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Maintenance commands for the facilitator directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newAdminCmd(),
		newHashPasswordCmd(),
		newSlugCmd(),
		newCodesCmd(),
		newBlocksCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
