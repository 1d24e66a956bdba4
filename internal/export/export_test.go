package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"json", JSON, true},
		{"CSV", CSV, true},
		{"xml", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExporter_ProjectsCSV(t *testing.T) {
	projects := []models.Project{{
		ID:        "1",
		Title:     "Server, with comma",
		Level:     models.LevelBasic,
		Language:  "python",
		Tags:      []string{"Python", "MCP"},
		CreatedAt: time.Date(2025, 7, 29, 10, 14, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	if err := NewExporter(CSV, &buf).Projects(projects); err != nil {
		t.Fatalf("Projects() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	row := records[1]
	if row[1] != "Server, with comma" {
		t.Errorf("title = %q", row[1])
	}
	if row[4] != "Python;MCP" {
		t.Errorf("tags = %q", row[4])
	}
	if row[5] != "2025-07-29T10:14:00Z" {
		t.Errorf("created_at = %q", row[5])
	}
}

func TestExporter_SubscribersJSON(t *testing.T) {
	subs := []*models.Subscriber{{Email: "reader@example.com", Source: "cli"}}

	var buf bytes.Buffer
	if err := NewExporter(JSON, &buf).Subscribers(subs); err != nil {
		t.Fatalf("Subscribers() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"email": "reader@example.com"`) {
		t.Errorf("unexpected output %s", buf.String())
	}
}
