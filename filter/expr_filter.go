package filter

import (
	"errors"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/hexwood/tagscout/guardian"
)

// TagFilter represents a compiled expr filter
type TagFilter struct {
	program *vm.Program
	expr    string
}

// Compile compiles an expr filter expression
func Compile(expression string) (*TagFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{
			Expression: expression,
			Err:        errors.New("empty filter expression"),
		}
	}

	// Compile against the static helper environment. Tag fields and tag
	// helpers resolve at evaluation time.
	program, err := expr.Compile(expression,
		expr.Env(staticEnv()),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Err:        err,
		}
	}

	return &TagFilter{
		program: program,
		expr:    expression,
	}, nil
}

// staticEnv returns the helper functions available to every expression
func staticEnv() map[string]interface{} {
	return map[string]interface{}{
		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// Evaluate evaluates the filter against a tag
func (f *TagFilter) Evaluate(tag guardian.Tag) bool {
	sectionID, sectionName := "", ""
	if tag.Section != nil {
		sectionID = tag.Section.ID
		sectionName = tag.Section.Name
	}

	// Create environment with tag data and helper functions
	env := map[string]interface{}{
		// Tag data
		"Tag": tag,

		// Section helpers
		"hasSection": func() bool {
			return tag.HasSection()
		},
		"inSection": func(section string) bool {
			if tag.Section == nil {
				return false
			}
			return strings.EqualFold(tag.Section.ID, section) ||
				strings.EqualFold(tag.Section.Name, section)
		},

		// Reference helpers
		"hasReference": func(refType string) bool {
			return tag.HasReference(refType)
		},

		// Contributor helpers
		"isContributor": func() bool {
			return tag.IsContributor()
		},
		"hasBio": func() bool {
			return tag.Bio != ""
		},

		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,

		// Direct tag properties for convenience
		"ID":          tag.ID,
		"Type":        tag.Type,
		"WebTitle":    tag.WebTitle,
		"WebURL":      tag.WebURL,
		"APIURL":      tag.APIURL,
		"SectionID":   sectionID,
		"SectionName": sectionName,
		"References":  tag.References,
		"Bio":         tag.Bio,
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		// Skip tags the expression cannot evaluate
		return false
	}

	// Convert result to boolean
	if boolResult, ok := result.(bool); ok {
		return boolResult
	}

	return false
}

// String returns the original expression
func (f *TagFilter) String() string {
	return f.expr
}
