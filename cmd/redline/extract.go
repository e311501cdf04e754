package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tsawler/redline/parse"
)

var (
	extractType   string
	stripMarkdown bool
	ocrLanguage   string
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Print the text extracted from a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := parse.New(parse.Options{StripMarkdown: stripMarkdown, OCRLanguage: ocrLanguage})

		var (
			text string
			err  error
		)
		if extractType == "" {
			text, err = p.ParseFile(args[0])
		} else {
			var data []byte
			if data, err = os.ReadFile(args[0]); err == nil {
				text, err = p.Parse(data, extractType)
			}
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractType, "type", "t", "", "File type (defaults to the file extension, or the content when there is none)")
	extractCmd.Flags().BoolVar(&stripMarkdown, "strip-markdown", false, "Render Markdown to plain text")
	extractCmd.Flags().StringVar(&ocrLanguage, "lang", "eng", "OCR language for images")
}
