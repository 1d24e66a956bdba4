package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

// dateLayout is the argument format of the date() function.
const dateLayout = "2006-01-02"

// ParsedQuery holds a validated and compiled expression.
type ParsedQuery struct {
	program *vm.Program
	raw     string
}

// dsl compiles expressions against a set of field definitions.
type dsl struct {
	fields map[string]FieldDef
}

func newDSL(fields map[string]FieldDef) *dsl {
	return &dsl{fields: fields}
}

// Parse compiles an expression over ProjectFields.
func Parse(expression string) (*ParsedQuery, error) {
	return newDSL(ProjectFields).Parse(expression)
}

// Parse compiles and validates an expression string.
func (d *dsl) Parse(expression string) (*ParsedQuery, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty expression")
	}

	program, err := expr.Compile(
		expression,
		expr.Env(d.buildEnv()),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	node := program.Node()

	// Validate fields and operators
	if err := d.validateAST(&node); err != nil {
		return nil, err
	}

	return &ParsedQuery{program: program, raw: expression}, nil
}

// buildEnv creates the environment for expr compilation.
func (d *dsl) buildEnv() map[string]any {
	env := make(map[string]any)

	// Add fields as typed placeholders
	for name, field := range d.fields {
		switch field.Type {
		case FieldTypeString:
			env[name] = ""
		case FieldTypeInt:
			env[name] = 0
		case FieldTypeBool:
			env[name] = false
		case FieldTypeTime:
			env[name] = time.Time{}
		case FieldTypeList:
			env[name] = []string{}
		}
	}

	addFunctions(env)
	return env
}

func addFunctions(env map[string]any) {
	env["date"] = func(s string) time.Time {
		t, _ := time.Parse(dateLayout, s)
		return t
	}
}

// validateAST walks the AST to validate fields and operators.
func (d *dsl) validateAST(node *ast.Node) error {
	v := &validationVisitor{fields: d.fields}
	ast.Walk(node, v)
	return v.err
}

// validationVisitor checks fields and operators in the AST.
type validationVisitor struct {
	fields map[string]FieldDef
	err    error
}

func (v *validationVisitor) Visit(node *ast.Node) {
	if v.err != nil {
		return
	}

	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		// Check if identifier is a known field or function
		if _, ok := v.fields[n.Value]; !ok && !AllowedFunctions[n.Value] {
			v.err = fmt.Errorf("unknown field: %s", n.Value)
		}

	case *ast.BinaryNode:
		// Validate operator against field type
		if ident, ok := n.Left.(*ast.IdentifierNode); ok {
			if field, ok := v.fields[ident.Value]; ok {
				if !field.IsOperatorAllowed(n.Operator) {
					v.err = fmt.Errorf("operator %q not allowed for field %q", n.Operator, ident.Value)
				}
			}
		}

	case *ast.MemberNode:
		v.err = fmt.Errorf("member access is not supported")

	case *ast.CallNode:
		// Validate function calls
		if ident, ok := n.Callee.(*ast.IdentifierNode); ok {
			if !AllowedFunctions[ident.Value] {
				v.err = fmt.Errorf("function %q is not allowed", ident.Value)
				return
			}
			if ident.Value == "date" {
				v.err = checkDateArgs(n.Arguments)
			}
		}
	}
}

// checkDateArgs requires date() to take one YYYY-MM-DD string literal, since
// the function itself cannot report errors at run time.
func checkDateArgs(args []ast.Node) error {
	if len(args) != 1 {
		return fmt.Errorf("date() takes exactly one argument")
	}
	lit, ok := args[0].(*ast.StringNode)
	if !ok {
		return fmt.Errorf("date() argument must be a string literal")
	}
	if _, err := time.Parse(dateLayout, lit.Value); err != nil {
		return fmt.Errorf("date %q must use YYYY-MM-DD", lit.Value)
	}
	return nil
}

// Match reports whether p satisfies the query.
func (pq *ParsedQuery) Match(p models.Project) (bool, error) {
	out, err := expr.Run(pq.program, projectEnv(p))
	if err != nil {
		return false, fmt.Errorf("evaluate %q on project %s: %w", pq.raw, p.ID, err)
	}
	matched, _ := out.(bool)
	return matched, nil
}

// Select returns the projects matching the query, keeping their order.
func (pq *ParsedQuery) Select(projects []models.Project) ([]models.Project, error) {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		ok, err := pq.Match(p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func projectEnv(p models.Project) map[string]any {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	env := map[string]any{
		"id":           p.ID,
		"title":        p.Title,
		"description":  p.Description,
		"level":        string(p.Level),
		"language":     p.Language,
		"tags":         tags,
		"created":      p.CreatedAt,
		"year":         p.CreatedAt.Year(),
		"has_download": p.HasDownload(),
		"has_github":   p.GitHubURL != "",
	}
	addFunctions(env)
	return env
}
