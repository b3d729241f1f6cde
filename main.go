// Command resumidor extracts the text of Portuguese PDF documents and writes
// an extractive summary, either through the web page or on the command line.
//
// Usage:
//
//	resumidor                         # same as "resumidor serve"
//	resumidor serve
//	resumidor summarize tese.pdf -n 4 --mode strict
//	resumidor service install
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"resumidor/core"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// exitStatus ends the process with a specific code and no error message,
// e.g. 130 after a clean shutdown on SIGINT.
type exitStatus int

func (s exitStatus) Error() string {
	return fmt.Sprintf("exit status %d (%s)", int(s), core.ExitCodeName(int(s)))
}

// execute runs the command line and maps the outcome to an exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return core.ExitCodeSuccess
	}

	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	newPrinter(stderr).failure(err)
	return core.ExitCodeForError(err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "resumidor",
		Short: "Resumo extrativo de PDFs em português",
		Long: `resumidor extracts the text layer of a PDF, cleans it and selects the most
representative sentences. Without a subcommand it starts the web interface.

Configuration comes from the environment and an optional .env file
(PORT, UPLOAD_DIR, SUMMARY_MODE, NUM_SENTENCAS, ...).`,
		Version:       core.GetVersionInfo(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("resumidor {{.Version}}\n")

	root.AddCommand(newServeCmd())
	root.AddCommand(newSummarizeCmd())
	root.AddCommand(newServiceCmd())
	return root
}
