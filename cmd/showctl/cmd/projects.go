package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/export"
	"github.com/good-yellow-bee/mcp-showcase/internal/highlight"
	"github.com/good-yellow-bee/mcp-showcase/internal/models"
	"github.com/good-yellow-bee/mcp-showcase/internal/query"
)

var (
	listLevel  string
	listTags   []string
	listSearch string
	listWhere  string
	exportOut  string
	showWidth  int
)

// listCmd lists catalog projects
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List catalog projects, optionally filtered.

Filters combine: a project must match the search text, the level and at
least one of the given tags.

Examples:
  showctl list
  showctl list --level intermediate --tag Python
  showctl list --search database -o json
  showctl list --where 'created >= date("2025-06-01") and len(tags) > 3'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		crit := catalog.Criteria{SearchText: listSearch, Tags: listTags}
		if listLevel != "" {
			level, err := models.ParseLevel(listLevel)
			if err != nil {
				return err
			}
			crit.Level = level
		}
		projects := c.Filter(crit)
		if listWhere != "" {
			q, err := query.Parse(listWhere)
			if err != nil {
				return fmt.Errorf("invalid --where: %w", err)
			}
			if projects, err = q.Select(projects); err != nil {
				return err
			}
		}

		w := cmd.OutOrStdout()
		switch output {
		case outputJSON, outputCSV:
			format, _ := export.ParseFormat(output)
			return export.NewExporter(format, w).Projects(projects)
		case outputPlain:
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Level, p.Title)
			}
			return nil
		}

		if len(projects) == 0 {
			fmt.Fprintln(w, "No projects found.")
			return nil
		}
		color := isTerminal(w)
		t := newTable(color, "ID", "TITLE", "LEVEL", "LANGUAGE", "TAGS")
		t.colorize = func(col int, value string) lipgloss.Style {
			if col == 2 {
				return levelStyle(value)
			}
			return lipgloss.NewStyle()
		}
		for _, p := range projects {
			t.add(p.ID, truncate(p.Title, 40), string(p.Level), p.Language, truncate(strings.Join(p.Tags, ", "), 40))
		}
		t.render(w)
		footer(w, color, "Total: %d project(s)", len(projects))
		return nil
	},
}

// showCmd shows project details
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show project details",
	Long: `Show a project's description and code snippet, rendered as markdown.

Example:
  showctl show 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		p, ok := c.LookupByID(args[0])
		if !ok {
			return fmt.Errorf("project not found: %s", args[0])
		}

		w := cmd.OutOrStdout()
		switch output {
		case outputJSON:
			return writeJSON(w, p)
		case outputPlain:
			fmt.Fprint(w, projectMarkdown(p, c.Related(p.ID, 3)))
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
		out, err := renderer.Render(projectMarkdown(p, c.Related(p.ID, 3)))
		if err != nil {
			return fmt.Errorf("render project: %w", err)
		}
		fmt.Fprint(w, out)
		return nil
	},
}

// snippetCmd prints a project's code snippet
var snippetCmd = &cobra.Command{
	Use:   "snippet <id>",
	Short: "Print a project's code snippet",
	Long: `Print the code snippet of a project. Output is syntax highlighted
when writing to a terminal, so it can also be piped into a file.

Example:
  showctl snippet 1 > server.py`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		p, ok := c.LookupByID(args[0])
		if !ok {
			return fmt.Errorf("project not found: %s", args[0])
		}

		w := cmd.OutOrStdout()
		if output != outputTable || !isTerminal(w) {
			fmt.Fprint(w, p.CodeSnippet)
			return nil
		}
		code, err := highlight.New(highlight.DefaultStyle, 0).Terminal(p.CodeSnippet, p.Language)
		if err != nil {
			return fmt.Errorf("highlight snippet: %w", err)
		}
		fmt.Fprint(w, code)
		return nil
	},
}

// projectMarkdown describes p and its related projects as a markdown document.
func projectMarkdown(p models.Project, related []models.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Level:** %s · **Language:** %s · **Created:** %s\n\n",
		p.Level.Label(), p.Language, p.CreatedAt.Format("January 2, 2006"))
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(p.Tags, ", "))
	}

	desc := p.FullDescription
	if desc == "" {
		desc = p.Description
	}
	fmt.Fprintf(&b, "%s\n\n", desc)

	if p.CodeSnippet != "" {
		fmt.Fprintf(&b, "## Code\n\n```%s\n%s\n```\n\n", strings.ToLower(p.Language), strings.TrimRight(p.CodeSnippet, "\n"))
	}

	var links []string
	if p.GitHubURL != "" {
		links = append(links, fmt.Sprintf("- GitHub: %s", p.GitHubURL))
	}
	if p.HasDownload() {
		links = append(links, fmt.Sprintf("- Download: %s", p.DownloadURL))
	}
	if len(links) > 0 {
		fmt.Fprintf(&b, "## Links\n\n%s\n\n", strings.Join(links, "\n"))
	}

	if len(related) > 0 {
		b.WriteString("## Related\n\n")
		for _, r := range related {
			fmt.Fprintf(&b, "- %s (%s, id %s)\n", r.Title, r.Level, r.ID)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// tagsCmd lists distinct tags
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		tags := c.Tags()

		w := cmd.OutOrStdout()
		if output == outputJSON {
			return writeJSON(w, tags)
		}
		if output == outputPlain {
			fmt.Fprintln(w, strings.Join(tags, "\n"))
			return nil
		}

		counts := make(map[string]int, len(tags))
		for _, p := range c.Projects() {
			for _, tag := range p.Tags {
				counts[tag]++
			}
		}
		t := newTable(isTerminal(w), "TAG", "PROJECTS")
		for _, tag := range tags {
			t.add(tag, strconv.Itoa(counts[tag]))
		}
		t.render(w)
		return nil
	},
}

// levelsCmd shows project counts per level
var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show project counts per level",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		stats := c.Stats()

		w := cmd.OutOrStdout()
		if output == outputJSON {
			type levelCount struct {
				Level   models.Level `json:"level"`
				Label   string       `json:"label"`
				Count   int          `json:"count"`
				Summary string       `json:"summary"`
			}
			out := make([]levelCount, 0, len(models.AllLevels()))
			for _, l := range models.AllLevels() {
				out = append(out, levelCount{l, l.Label(), stats.ByLevel[l], l.Summary()})
			}
			return writeJSON(w, out)
		}
		if output == outputPlain {
			for _, l := range models.AllLevels() {
				fmt.Fprintf(w, "%s\t%d\n", l, stats.ByLevel[l])
			}
			return nil
		}

		color := isTerminal(w)
		t := newTable(color, "LEVEL", "PROJECTS", "SUMMARY")
		t.colorize = func(col int, value string) lipgloss.Style {
			if col == 0 {
				return levelStyle(value)
			}
			return lipgloss.NewStyle()
		}
		for _, l := range models.AllLevels() {
			t.add(string(l), strconv.Itoa(stats.ByLevel[l]), l.Summary())
		}
		t.render(w)
		footer(w, color, "%d projects, %d tags, %d languages", stats.Projects, stats.Tags, stats.Languages)
		return nil
	},
}

// exportCmd writes a project as JSON
var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a project as JSON",
	Long: `Export a project record as indented JSON, the same document the
site offers as a download.

Examples:
  showctl export 1
  showctl export 1 --out project.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		p, ok := c.LookupByID(args[0])
		if !ok {
			return fmt.Errorf("project not found: %s", args[0])
		}
		data, err := catalog.MarshalProject(p)
		if err != nil {
			return fmt.Errorf("encode project: %w", err)
		}
		data = append(data, '\n')

		if exportOut == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", p.Title, exportOut)
		return nil
	},
}

// validateCmd checks a catalog file
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a catalog file",
	Long: `Load a catalog YAML file and report whether it is valid. Duplicate
project IDs and unknown levels are rejected.

Example:
  showctl validate ./projects.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("invalid catalog: %w", err)
		}
		stats := c.Stats()
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d projects, %d basic, %d intermediate, %d advanced)\n",
			args[0], stats.Projects,
			stats.ByLevel[models.LevelBasic], stats.ByLevel[models.LevelIntermediate], stats.ByLevel[models.LevelAdvanced])
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listLevel, "level", "l", "", "filter by level (basic, intermediate, advanced)")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "filter by tag (repeatable, any match)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "search titles, descriptions and tags")
	listCmd.Flags().StringVarP(&listWhere, "where", "w", "", "filter expression, e.g. 'level == \"basic\" and has_github'")

	showCmd.Flags().IntVar(&showWidth, "width", 100, "word wrap width")

	exportCmd.Flags().StringVar(&exportOut, "out", "", "write to file instead of stdout")

	rootCmd.AddCommand(listCmd, showCmd, snippetCmd, tagsCmd, levelsCmd, exportCmd, validateCmd)
}
