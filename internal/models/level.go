package models

import (
	"fmt"
	"strings"
)

// Level is the skill level a showcase project targets.
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// AllLevels returns every level in display order.
func AllLevels() []Level {
	return []Level{LevelBasic, LevelIntermediate, LevelAdvanced}
}

// ParseLevel converts a string to a Level. Surrounding whitespace and case are ignored.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("invalid level %q: must be one of basic, intermediate, advanced", s)
	}
	return l, nil
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBasic, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}

// Label returns the human-readable name shown in filter badges.
func (l Level) Label() string {
	switch l {
	case LevelBasic:
		return "Basic"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	default:
		return string(l)
	}
}

// Summary is the one-line pitch for a level on the about page.
func (l Level) Summary() string {
	switch l {
	case LevelBasic:
		return "Learn MCP fundamentals with simple, well-documented examples"
	case LevelIntermediate:
		return "Build practical applications with real-world features"
	case LevelAdvanced:
		return "Production-ready solutions with advanced architecture"
	default:
		return ""
	}
}

func (l Level) String() string {
	return string(l)
}
