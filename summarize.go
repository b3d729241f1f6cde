package main

import (
	"errors"
	"fmt"
	"os"

	"resumidor/pdfprocessor"

	"github.com/spf13/cobra"
)

func newSummarizeCmd() *cobra.Command {
	var (
		sentences int
		opts      summaryOptions
	)

	cmd := &cobra.Command{
		Use:   "summarize <file.pdf>",
		Short: "Summarize a PDF and print the result",
		Long: `Extract the text of a PDF and print its extractive summary.

--mode picks a built-in mode (classic, balanced, strict) or a profile from
SUMMARY_PROFILES_FILE; without it SUMMARY_MODE applies.`,
		Example: `  resumidor summarize tese.pdf
  resumidor summarize tese.pdf -n 4 --mode strict
  resumidor summarize relatorio.pdf --bullets`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sentences < 0 {
				return fmt.Errorf("--sentences must not be negative, got %d", sentences)
			}
			return runSummarize(cmd, args[0], sentences, opts)
		},
	}

	cmd.Flags().IntVarP(&sentences, "sentences", "n", 0, "number of sentences (0 uses NUM_SENTENCAS or the mode default)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "summary mode or profile name")
	cmd.Flags().BoolVar(&opts.bullets, "bullets", false, "print one sentence per line")
	return cmd
}

func runSummarize(cmd *cobra.Command, path string, n int, opts summaryOptions) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	out := newPrinter(cmd.OutOrStdout())
	processor, err := a.newProcessor(opts, out.progress)
	if err != nil {
		return err
	}

	out.header(path)
	result, err := processor.Process(cmd.Context(), path, n)
	if err != nil {
		if pdfprocessor.IsExtractionError(err) {
			return fmt.Errorf("no text could be extracted from %s: %w", path, err)
		}
		return err
	}

	if result.Summary == "" {
		return errors.New("the document produced an empty summary")
	}
	out.result(result)
	return nil
}
