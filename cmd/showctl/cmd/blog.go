package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/mcp-showcase/internal/blog"
)

var blogCategory string

// blogCmd represents the blog command group
var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Blog commands",
	Long: `Commands for reading the showcase blog.

Examples:
  # List every post, newest first
  showctl blog list

  # Only security articles
  showctl blog list --category security

  # Read a post in the terminal
  showctl blog read getting-started-with-mcp`,
}

var blogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blog posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := blog.Default()
		if err != nil {
			return err
		}
		posts := idx.ByCategory(blogCategory)

		w := cmd.OutOrStdout()
		switch output {
		case outputJSON:
			return writeJSON(w, posts)
		case outputPlain:
			for _, p := range posts {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.PublishDate.Format("2006-01-02"), p.Slug, p.Title)
			}
			return nil
		}

		if len(posts) == 0 {
			fmt.Fprintln(w, "No posts found.")
			return nil
		}
		color := isTerminal(w)
		t := newTable(color, "DATE", "SLUG", "CATEGORY", "TITLE")
		for _, p := range posts {
			title := p.Title
			if p.Featured {
				title += " *"
			}
			t.add(p.PublishDate.Format("2006-01-02"), p.Slug, p.Category, truncate(title, 50))
		}
		t.render(w)
		footer(w, color, "Total: %d post(s)", len(posts))
		return nil
	},
}

var blogReadCmd = &cobra.Command{
	Use:   "read <slug>",
	Short: "Render a blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := blog.Default()
		if err != nil {
			return err
		}
		p, ok := idx.BySlug(args[0])
		if !ok {
			return fmt.Errorf("post not found: %s", args[0])
		}

		w := cmd.OutOrStdout()
		if output == outputJSON {
			return writeJSON(w, p)
		}
		if output == outputPlain {
			fmt.Fprint(w, p.Body)
			return nil
		}

		style := "notty"
		if isTerminal(w) {
			style = "dark"
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(showWidth),
		)
		if err != nil {
			return fmt.Errorf("create markdown renderer: %w", err)
		}
		out, err := renderer.Render(p.Body)
		if err != nil {
			return fmt.Errorf("render post: %w", err)
		}
		fmt.Fprint(w, out)
		return nil
	},
}

func init() {
	blogListCmd.Flags().StringVar(&blogCategory, "category", "", "only posts in this category")
	blogReadCmd.Flags().IntVar(&showWidth, "width", 100, "word wrap width")

	blogCmd.AddCommand(blogListCmd, blogReadCmd)
	rootCmd.AddCommand(blogCmd)
}
