// Package export writes catalog and subscriber listings as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

// Format defines the output format for exports.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
)

// ParseFormat parses a string to Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, true
	case "csv":
		return CSV, true
	default:
		return "", false
	}
}

// Exporter writes listings in one format.
type Exporter struct {
	format Format
	writer io.Writer
}

// NewExporter creates an exporter for the given format.
func NewExporter(format Format, w io.Writer) *Exporter {
	return &Exporter{
		format: format,
		writer: w,
	}
}

// ProjectHeader is the CSV header row for projects.
var ProjectHeader = []string{"id", "title", "level", "language", "tags", "created_at", "github_url", "download_url"}

// Projects writes projects in the configured format. Tags are joined with
// ";" in CSV output.
func (e *Exporter) Projects(projects []models.Project) error {
	if e.format != CSV {
		return e.json(projects)
	}

	w := csv.NewWriter(e.writer)
	w.Write(ProjectHeader)
	for _, p := range projects {
		w.Write([]string{
			p.ID,
			p.Title,
			string(p.Level),
			p.Language,
			strings.Join(p.Tags, ";"),
			p.CreatedAt.Format(time.RFC3339),
			p.GitHubURL,
			p.DownloadURL,
		})
	}
	w.Flush()
	return w.Error()
}

// Subscribers writes newsletter subscribers in the configured format.
func (e *Exporter) Subscribers(subs []*models.Subscriber) error {
	if e.format != CSV {
		return e.json(subs)
	}

	w := csv.NewWriter(e.writer)
	w.Write([]string{"email", "source", "created_at"})
	for _, s := range subs {
		w.Write([]string{s.Email, s.Source, s.CreatedAt.Format(time.RFC3339)})
	}
	w.Flush()
	return w.Error()
}

func (e *Exporter) json(v any) error {
	encoder := json.NewEncoder(e.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
