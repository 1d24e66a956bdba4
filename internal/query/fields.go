// Package query compiles filter expressions over catalog projects.
package query

// FieldType represents the data type of a queryable field.
type FieldType int

const (
	FieldTypeString FieldType = iota
	FieldTypeInt
	FieldTypeBool
	FieldTypeTime
	FieldTypeList
)

// FieldDef defines a queryable field with its allowed operators.
type FieldDef struct {
	Name      string    // expr field name
	Type      FieldType // data type
	Operators []string  // operators allowed with the field on the left
}

var boolOperators = []string{"==", "!=", "and", "or", "&&", "||"}

var textOperators = []string{"==", "!=", "in", "contains", "startsWith", "endsWith", "matches"}

// ProjectFields contains all queryable project fields.
var ProjectFields = map[string]FieldDef{
	"id": {
		Name:      "id",
		Type:      FieldTypeString,
		Operators: []string{"==", "!=", "in"},
	},
	"title": {
		Name:      "title",
		Type:      FieldTypeString,
		Operators: textOperators,
	},
	"description": {
		Name:      "description",
		Type:      FieldTypeString,
		Operators: textOperators,
	},
	"level": {
		Name:      "level",
		Type:      FieldTypeString,
		Operators: []string{"==", "!=", "in"},
	},
	"language": {
		Name:      "language",
		Type:      FieldTypeString,
		Operators: []string{"==", "!=", "in"},
	},

	// Tags are only usable as the right side of "in" or through builtins
	// such as len and any.
	"tags": {
		Name: "tags",
		Type: FieldTypeList,
	},

	"created": {
		Name:      "created",
		Type:      FieldTypeTime,
		Operators: []string{">=", "<=", ">", "<"},
	},
	"year": {
		Name:      "year",
		Type:      FieldTypeInt,
		Operators: []string{"==", "!=", ">=", "<=", ">", "<", "in"},
	},
	"has_download": {
		Name:      "has_download",
		Type:      FieldTypeBool,
		Operators: boolOperators,
	},
	"has_github": {
		Name:      "has_github",
		Type:      FieldTypeBool,
		Operators: boolOperators,
	},
}

// IsOperatorAllowed checks if an operator is valid for a field.
func (f FieldDef) IsOperatorAllowed(op string) bool {
	for _, allowed := range f.Operators {
		if allowed == op {
			return true
		}
	}
	return false
}

// AllowedFunctions lists functions allowed in expressions.
var AllowedFunctions = map[string]bool{
	"date": true,
}
