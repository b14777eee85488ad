package filter

import (
	"strings"

	"github.com/hexwood/tagscout/guardian"
)

// CreateTagFilter creates a filter function from an expression
func CreateTagFilter(expression string) (func(guardian.Tag) bool, error) {
	filter, err := Compile(expression)
	if err != nil {
		return nil, err
	}

	return func(tag guardian.Tag) bool {
		return filter.Evaluate(tag)
	}, nil
}

// ParseAndCreateFilter parses a filter expression and returns a filter function
func ParseAndCreateFilter(expression string) (func(guardian.Tag) bool, error) {
	if strings.TrimSpace(expression) == "" {
		// Empty filter matches everything
		return func(guardian.Tag) bool { return true }, nil
	}

	return CreateTagFilter(expression)
}

// Apply returns the tags accepted by the match function
func Apply(tags []guardian.Tag, match func(guardian.Tag) bool) []guardian.Tag {
	if match == nil {
		return tags
	}

	filtered := make([]guardian.Tag, 0, len(tags))
	for _, tag := range tags {
		if match(tag) {
			filtered = append(filtered, tag)
		}
	}
	return filtered
}
