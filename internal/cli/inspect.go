package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/mithrel/notion2md/internal/frontmatter"
	"github.com/mithrel/notion2md/internal/present/format"
)

// Report summarizes a Markdown file.
type Report struct {
	Path        string         `json:"path"`
	Frontmatter []string       `json:"frontmatter"`
	Nodes       map[string]int `json:"nodes"`
}

func newInspectCmd() *cobra.Command {
	var outputMode string
	cmd := &cobra.Command{
		Use:   "inspect <file.md>",
		Short: "Summarize the frontmatter and structure of a Markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rep, err := inspectMarkdown(args[0], data)
			if err != nil {
				return err
			}
			switch strings.ToLower(outputMode) {
			case "json":
				return format.WriteJSON(cmd.OutOrStdout(), rep, true)
			case "plain", "":
				return writeReport(cmd.OutOrStdout(), rep)
			default:
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
		},
	}
	cmd.Flags().StringVar(&outputMode, "output", "plain", "output mode: plain|json")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

var inspectParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

func inspectMarkdown(path string, data []byte) (Report, error) {
	fields, body, err := frontmatter.Extract(data)
	if err != nil {
		return Report{}, fmt.Errorf("frontmatter: %w", err)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nodes := map[string]int{}
	doc := inspectParser.Parse(text.NewReader(body))
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindDocument, ast.KindText, ast.KindTextBlock, ast.KindParagraph:
			return ast.WalkContinue, nil
		case ast.KindHeading:
			nodes[fmt.Sprintf("Heading%d", n.(*ast.Heading).Level)]++
			return ast.WalkContinue, nil
		}
		nodes[n.Kind().String()]++
		return ast.WalkContinue, nil
	})
	if err != nil {
		return Report{}, err
	}
	return Report{Path: path, Frontmatter: keys, Nodes: nodes}, nil
}

func writeReport(w io.Writer, rep Report) error {
	_, _ = fmt.Fprintf(w, "File: %s\n", rep.Path)
	if len(rep.Frontmatter) == 0 {
		_, _ = fmt.Fprintln(w, "Frontmatter: (none)")
	} else {
		_, _ = fmt.Fprintf(w, "Frontmatter: %s\n", strings.Join(rep.Frontmatter, ", "))
	}
	kinds := make([]string, 0, len(rep.Nodes))
	for k := range rep.Nodes {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	_, err := fmt.Fprintln(w, "Nodes:")
	for _, k := range kinds {
		_, err = fmt.Fprintf(w, "  %s: %d\n", k, rep.Nodes[k])
	}
	return err
}
