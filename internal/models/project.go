// Package models defines the records served by the showcase.
package models

import (
	"strings"
	"time"
)

// Project is a single showcase entry. Projects are read-only once loaded into a catalog.
type Project struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	FullDescription string    `json:"fullDescription"`
	Level           Level     `json:"level"`
	Tags            []string  `json:"tags"`
	Language        string    `json:"language"`
	CreatedAt       time.Time `json:"createdAt"`
	CodeSnippet     string    `json:"codeSnippet"`
	DownloadURL     string    `json:"downloadUrl"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	GitHubURL       string    `json:"githubUrl,omitempty"`
}

// HasTag reports whether the project carries tag exactly.
func (p *Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasDownload reports whether the project ships a downloadable archive.
func (p *Project) HasDownload() bool {
	return strings.TrimSpace(p.DownloadURL) != ""
}

// Clone returns a deep copy so callers cannot alias catalog-owned slices.
func (p Project) Clone() Project {
	if p.Tags != nil {
		tags := make([]string, len(p.Tags))
		copy(tags, p.Tags)
		p.Tags = tags
	}
	return p
}
