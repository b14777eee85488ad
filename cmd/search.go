package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hexwood/tagscout/filter"
	"github.com/hexwood/tagscout/guardian"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search tags matching one or more terms",
	Long: `Search the tag directory for each given term and print the matching tags.

Results can be narrowed with a filter expression or a preset from the
config file, for example:

  tagscout search politics --filter 'Type == "keyword" && hasSection()'
  tagscout search sparrow --preset contributors
  tagscout search politics environment --format markdown`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	searchCmd.Flags().StringVarP(&presetName, "preset", "p", "", "use a preset filter from config")
	searchCmd.Flags().StringVar(&outputFormat, "format", "", "output format: tree, json, yaml or markdown")
	searchCmd.Flags().BoolVar(&showDetails, "details", false, "show URLs and contributor bios")
	searchCmd.Flags().BoolVar(&showReferences, "references", false, "show external reference identifiers")
}

// termResult pairs a search term with its outcome for ordered rendering
type termResult struct {
	Term   string                 `json:"term"`
	Result *guardian.SearchResult `json:"result"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Determine filter expression
	expr, err := getFilterExpression()
	if err != nil {
		return err
	}

	match, err := filter.ParseAndCreateFilter(expr)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	format := cfg.Output.Format
	if outputFormat != "" {
		format = outputFormat
	}
	switch format {
	case "tree", "json", "yaml", "markdown":
	default:
		return fmt.Errorf("unknown output format '%s'", format)
	}

	// Override configured detail level from the command line if specified
	details := cfg.Output.ShowDetails
	if cmd.Flags().Changed("details") {
		details = showDetails
	}

	logger.Info().Str("filter", expr).Int("terms", len(args)).Msg("Searching tags")

	ctx := context.Background()
	results, err := searchTerms(ctx, args)
	if err != nil {
		return err
	}

	// Apply the filter to each page of results
	for _, r := range results {
		r.Result.Results = filter.Apply(r.Result.Results, match)
	}

	return renderResults(os.Stdout, results, format, guardian.FormatOptions{
		ShowDetails:    details,
		ShowReferences: showReferences,
	})
}

// searchTerms searches every term, preserving the argument order
func searchTerms(ctx context.Context, terms []string) ([]termResult, error) {
	if len(terms) == 1 {
		result, err := client.SearchTags(ctx, guardian.Query{Term: terms[0]})
		if err != nil {
			return nil, err
		}
		return []termResult{{Term: terms[0], Result: result}}, nil
	}

	queries := make([]guardian.Query, 0, len(terms))
	for _, term := range terms {
		queries = append(queries, guardian.Query{Term: term})
	}

	byTerm, err := client.BatchSearchTags(ctx, queries)
	if err != nil {
		return nil, err
	}

	results := make([]termResult, 0, len(terms))
	for _, term := range terms {
		if result, ok := byTerm[term]; ok {
			results = append(results, termResult{Term: term, Result: result})
		}
	}
	return results, nil
}

func renderResults(w io.Writer, results []termResult, format string, options guardian.FormatOptions) error {
	switch format {
	case "json":
		return renderJSON(w, results)
	case "yaml":
		return renderYAML(w, results)
	case "markdown":
		return renderMarkdown(w, results)
	case "tree":
		renderTree(w, results, options)
		return nil
	default:
		return fmt.Errorf("unknown output format '%s'", format)
	}
}

func renderTree(w io.Writer, results []termResult, options guardian.FormatOptions) {
	formatter := guardian.NewConsoleFormatter()
	for _, r := range results {
		fmt.Fprint(w, formatter.FormatSearchResult(r.Term, r.Result, options))
	}
}

// renderJSON emits the bare result for a single term and the term/result
// pairs for several.
func renderJSON(w io.Writer, results []termResult) error {
	var doc any = results
	if len(results) == 1 {
		doc = results[0].Result
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func renderYAML(w io.Writer, results []termResult) error {
	var doc any = results
	if len(results) == 1 {
		doc = results[0].Result
	}

	// Round-trip through JSON so the YAML keys match the JSON field names.
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return err
	}
	return enc.Close()
}

func renderMarkdown(w io.Writer, results []termResult) error {
	md := markdown.NewMarkdown(w)

	md.H1("Tag Search Results")
	md.PlainText("")

	for _, r := range results {
		md.H2(fmt.Sprintf("%s (%d tags)", r.Term, r.Result.Total))
		md.PlainText("")

		if len(r.Result.Results) == 0 {
			md.PlainText("No tags found.")
			md.PlainText("")
			continue
		}

		rows := make([][]string, len(r.Result.Results))
		for i, tag := range r.Result.Results {
			section := "-"
			if tag.HasSection() {
				section = tag.Section.Name
			}
			rows[i] = []string{
				"`" + tag.ID + "`",
				tag.Type,
				tag.WebTitle,
				section,
				fmt.Sprintf("[web](%s)", tag.WebURL),
			}
		}

		md.Table(markdown.TableSet{
			Header: []string{"ID", "Type", "Title", "Section", "Link"},
			Rows:   rows,
		})
		md.PlainText("")

		if r.Result.HasMorePages() {
			md.PlainTextf("Page %d of %d.", r.Result.CurrentPage, r.Result.Pages)
			md.PlainText("")
		}
	}

	return md.Build()
}
