// Package cmd contains the CLI commands for showctl.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputPlain = "plain"
	outputCSV   = "csv"
)

var (
	// Used for flags
	verbose     bool
	output      string
	catalogPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "showctl",
	Short: "showctl - browse the MCP Showcase from a terminal",
	Long: `showctl queries the MCP Showcase project catalog, the blog and the
newsletter subscriber database without running the server.

Examples:
  # List advanced projects tagged Python
  showctl list --level advanced --tag Python

  # Show a project with highlighted code
  showctl show 3

  # Check an edited catalog file before deploying it
  showctl validate ./projects.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch output {
		case outputTable, outputJSON, outputPlain, outputCSV:
			return nil
		default:
			return fmt.Errorf("invalid output format %q (want table, json, plain or csv)", output)
		}
	},
	// Run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		// Show help by default
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, plain; list commands also take csv)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", os.Getenv("SHOWCASE_CATALOG_PATH"), "catalog YAML file (default: embedded catalog)")
}

// loadCatalog opens the catalog selected by --catalog.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	if catalogPath == "" {
		printVerbose(cmd, "using embedded catalog")
		return catalog.Default()
	}
	printVerbose(cmd, "loading catalog from %s", catalogPath)
	c, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printVerbose prints a message to stderr only if verbose mode is enabled.
func printVerbose(cmd *cobra.Command, format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
