package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tsawler/redline"
	"github.com/tsawler/redline/diff"
	"github.com/tsawler/redline/parse"
	"gopkg.in/yaml.v3"
)

var (
	factsPath string
	outDir    string
	threshold float64
	docTitle  string
	docAuthor string
)

var compareCmd = &cobra.Command{
	Use:   "compare [original] [corrected]",
	Short: "Compare two documents and write clean.docx and diff.docx",
	Long: `Compare extracts text from both files (the format is taken from the file
extension) and writes clean.docx and diff.docx into the output directory.

The facts file is a YAML or JSON list of fact changes:

  - original: "95"
    corrected: "92"
    context: "price"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := parse.New(parse.DefaultOptions())

		original, err := p.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		corrected, err := p.ParseFile(args[1])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[1], err)
		}

		var facts []redline.FactChange
		if factsPath != "" {
			if facts, err = loadFacts(factsPath); err != nil {
				return err
			}
		}

		clean, diffDoc, err := redline.Compare(original, corrected).
			Facts(facts...).
			Threshold(threshold).
			Title(docTitle).
			Author(docAuthor).
			Logger(slog.Default()).
			Generate()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		outputs := []struct {
			name string
			data []byte
		}{
			{"clean.docx", clean},
			{"diff.docx", diffDoc},
		}
		for _, out := range outputs {
			path := filepath.Join(outDir, out.name)
			if err := os.WriteFile(path, out.data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

// loadFacts reads a list of fact changes. JSON input is accepted because
// it is valid YAML.
func loadFacts(path string) ([]redline.FactChange, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading facts file: %w", err)
	}

	var facts []redline.FactChange
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("parsing facts file %s: %w", path, err)
	}
	return facts, nil
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVarP(&factsPath, "facts", "f", "", "YAML or JSON file listing fact changes")
	compareCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	compareCmd.Flags().Float64Var(&threshold, "threshold", diff.DefaultThreshold, "Similarity above which replaced words are diffed by character")
	compareCmd.Flags().StringVar(&docTitle, "title", "", "Title stored in the document properties")
	compareCmd.Flags().StringVar(&docAuthor, "author", "", "Author stored in the document properties")
}
