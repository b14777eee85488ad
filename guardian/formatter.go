package guardian

import (
	"fmt"
	"strings"
)

// ConsoleFormatter provides console output formatting for tag search results
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatOptions controls how much detail formatted output includes
type FormatOptions struct {
	ShowDetails    bool
	ShowReferences bool
}

// FormatSearchResult formats one page of search results for console display
func (f *ConsoleFormatter) FormatSearchResult(term string, result *SearchResult, options FormatOptions) string {
	if len(result.Results) == 0 {
		return fmt.Sprintf("No tags found for %q\n", term)
	}

	var sb strings.Builder

	// Header
	if result.Total == len(result.Results) {
		fmt.Fprintf(&sb, "\nTags matching %q (%d):\n\n", term, result.Total)
	} else {
		fmt.Fprintf(&sb, "\nTags matching %q (showing %d of %d):\n\n", term, len(result.Results), result.Total)
	}

	// Format each tag
	for i, tag := range result.Results {
		isLast := i == len(result.Results)-1
		f.formatTag(&sb, tag, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	if result.HasMorePages() {
		fmt.Fprintf(&sb, "\nPage %d of %d. Use a more specific term to narrow the results.\n", result.CurrentPage, result.Pages)
	}

	sb.WriteString("\n")
	return sb.String()
}

// formatTag formats a single tag entry
func (f *ConsoleFormatter) formatTag(sb *strings.Builder, tag Tag, isLast bool, options FormatOptions) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}

	fmt.Fprintf(sb, "%s── %s [%s]\n", prefix, tag.WebTitle, tag.Type)

	indent := "│   "
	if isLast {
		indent = "    "
	}

	fmt.Fprintf(sb, "%sID: %s\n", indent, tag.ID)

	if tag.HasSection() {
		fmt.Fprintf(sb, "%sSection: %s (%s)\n", indent, tag.Section.Name, tag.Section.ID)
	}

	if options.ShowDetails {
		fmt.Fprintf(sb, "%sWeb: %s\n", indent, tag.WebURL)
		fmt.Fprintf(sb, "%sAPI: %s\n", indent, tag.APIURL)

		if tag.Bio != "" {
			fmt.Fprintf(sb, "%sBio: %s\n", indent, flattenBio(tag.Bio))
		}
	}

	if options.ShowReferences && len(tag.References) > 0 {
		fmt.Fprintf(sb, "%sReferences:\n", indent)
		for _, ref := range tag.References {
			fmt.Fprintf(sb, "%s  - %s: %s\n", indent, ref.Type, ref.ID)
		}
	}
}

// flattenBio reduces an HTML contributor bio to a single plain-text line
func flattenBio(bio string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range bio {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			sb.WriteRune(' ')
		case !inTag:
			sb.WriteRune(r)
		}
	}

	line := strings.Join(strings.Fields(sb.String()), " ")
	if len(line) > 120 {
		line = line[:117] + "..."
	}
	return line
}
