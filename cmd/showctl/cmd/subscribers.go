package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/mcp-showcase/internal/export"
	"github.com/good-yellow-bee/mcp-showcase/internal/logging"
	"github.com/good-yellow-bee/mcp-showcase/internal/newsletter"
	"github.com/good-yellow-bee/mcp-showcase/internal/storage"
)

// defaultDBPath is the default database path, can be overridden via SHOWCASE_DB_PATH env var
var defaultDBPath = filepath.Join(xdg.DataHome, "mcp-showcase", "showcase.db")

func init() {
	if envPath := os.Getenv("SHOWCASE_DB_PATH"); envPath != "" {
		defaultDBPath = envPath
	}
}

var subscribersDBPath string

// subscribersCmd represents the subscribers command group
var subscribersCmd = &cobra.Command{
	Use:   "subscribers",
	Short: "Newsletter subscriber commands",
	Long: `Commands for managing newsletter subscribers.

These commands operate directly on the database file.

Examples:
  # List subscribers
  showctl subscribers list

  # Count subscribers in a specific database
  showctl subscribers count --db ./showcase.db

  # Add or remove an address by hand
  showctl subscribers add reader@example.com
  showctl subscribers remove reader@example.com`,
}

var subscribersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscribers, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openNewsletter(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		subs, err := svc.List(context.Background())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch output {
		case outputJSON, outputCSV:
			format, _ := export.ParseFormat(output)
			return export.NewExporter(format, w).Subscribers(subs)
		case outputPlain:
			for _, s := range subs {
				fmt.Fprintln(w, s.Email)
			}
			return nil
		}

		if len(subs) == 0 {
			fmt.Fprintln(w, "No subscribers found.")
			return nil
		}
		color := isTerminal(w)
		t := newTable(color, "EMAIL", "SOURCE", "SUBSCRIBED")
		for _, s := range subs {
			t.add(s.Email, s.Source, s.CreatedAt.Format("2006-01-02 15:04"))
		}
		t.render(w)
		footer(w, color, "Total: %d subscriber(s)", len(subs))
		return nil
	},
}

var subscribersCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count subscribers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openNewsletter(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		n, err := svc.Count(context.Background())
		if err != nil {
			return err
		}
		if output == outputJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]int64{"count": n})
		}
		fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatInt(n, 10))
		return nil
	},
}

var subscribersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Subscribe an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openNewsletter(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		sub, err := svc.Subscribe(context.Background(), args[0], newsletter.SourceCLI)
		if errors.Is(err, newsletter.ErrAlreadySubscribed) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already subscribed\n", args[0])
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Subscribed %s\n", sub.Email)
		return nil
	},
}

var subscribersRemoveCmd = &cobra.Command{
	Use:   "remove <email>",
	Short: "Unsubscribe an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openNewsletter(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := svc.Unsubscribe(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

// openNewsletter opens and migrates the subscriber database. The returned
// func closes it.
func openNewsletter(cmd *cobra.Command) (*newsletter.Service, func(), error) {
	printVerbose(cmd, "opening database %s", subscribersDBPath)
	store := storage.NewSQLiteStorage(subscribersDBPath)
	if err := store.Open(); err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	logger := logging.Discard()
	if verbose {
		logger = logging.Component("showctl")
	}
	return newsletter.NewService(store.Subscribers(), logger), func() { store.Close() }, nil
}

func init() {
	subscribersCmd.PersistentFlags().StringVar(&subscribersDBPath, "db", defaultDBPath, "subscriber database path")

	subscribersCmd.AddCommand(subscribersListCmd, subscribersCountCmd, subscribersAddCmd, subscribersRemoveCmd)
	rootCmd.AddCommand(subscribersCmd)
}
