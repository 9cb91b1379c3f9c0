package main

import (
	"fmt"
	"io"
	"os"

	"codebox/internal/app"

	"github.com/spf13/cobra"
)

// newRunCmd is the one-shot path for scripting: submit a file, print the
// status line and output, optionally ask the assistant about a compile
// failure. It drives the same controller as the editor.
func newRunCmd(configPath *string, debug, mock *bool) *cobra.Command {
	var (
		languageID int
		stdinPath  string
		suggest    bool
	)

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "submit a source file once and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApplication(*configPath, *debug, *mock, false)
			if err != nil {
				return err
			}
			defer application.Logger.Sync()

			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			stdin := ""
			if stdinPath != "" {
				data, err := os.ReadFile(stdinPath)
				if err != nil {
					return err
				}
				stdin = string(data)
			}
			if languageID == 0 {
				languageID = application.Config.LanguageID
			}

			presenter := &cliPresenter{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
			controller := app.NewSubmissionController(application.Exec, presenter, application.Logger)

			if err := controller.Start(app.SubmissionRequest{
				SourceCode:      string(source),
				Stdin:           stdin,
				LanguageID:      languageID,
				CompilerOptions: application.Config.CompilerOptions,
				CLIArguments:    application.Config.CLIArguments,
			}); err != nil {
				return err
			}

			res, err := controller.Submit(cmd.Context())
			if err != nil {
				controller.HandleTransportError(err)
				return err
			}
			controller.HandleResult(res)

			if suggest && presenter.compileOutput != "" {
				flow := application.NewSuggestion(presenter.compileOutput)
				reply, err := flow.Request(cmd.Context(), string(source),
					app.LanguageLabel(languageID), application.Config.Model)
				if err != nil {
					return fmt.Errorf("suggestion failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), reply)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&languageID, "language", "l", 0, "language id (see 'codebox languages')")
	cmd.Flags().StringVar(&stdinPath, "stdin-file", "", "file whose contents feed the program's stdin")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "on compile failure, ask the assistant for a fix")
	return cmd
}

// cliPresenter renders controller output as plain lines.
type cliPresenter struct {
	out    io.Writer
	errOut io.Writer

	compileOutput string
}

func (p *cliPresenter) ShowStatus(line string) {
	fmt.Fprintln(p.out, line)
}

func (p *cliPresenter) ShowOutput(text string) {
	if text != "" {
		fmt.Fprintln(p.out, text)
	}
}

func (p *cliPresenter) SetLoading(bool) {}

func (p *cliPresenter) ShowError(title, detail string) {
	fmt.Fprintf(p.errOut, "%s\n%s\n", title, detail)
}

func (p *cliPresenter) OfferSuggestion(compileOutput string) {
	p.compileOutput = compileOutput
}
