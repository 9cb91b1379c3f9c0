package main

import (
	"fmt"
	"os"
	"path/filepath"

	"codebox/internal/app"
	"codebox/internal/tui"

	"github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	var (
		configPath string
		debug      bool
		mock       bool
	)

	root := &cobra.Command{
		Use:     "codebox",
		Short:   "codebox - edit code, run it remotely, ask AI about it",
		Long:    "codebox is a terminal code editor that submits your code to a remote execution service and keeps an AI assistant next to the output.\n\nRun without arguments for the editor, or use 'run' for one-shot submissions.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApplication(configPath, debug, mock, true)
			if err != nil {
				return err
			}
			defer application.Logger.Sync()

			p := tea.NewProgram(tui.New(application), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: "+app.DefaultConfigPath()+")")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&mock, "mock", false, "answer AI calls locally, without a chat API key")

	root.AddCommand(newRunCmd(&configPath, &debug, &mock))
	root.AddCommand(newLanguagesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildApplication loads config and wires the application. In TUI mode the
// logger writes to a file: the program owns the terminal.
func buildApplication(configPath string, debug, mock, tuiMode bool) (*app.Application, error) {
	if configPath == "" {
		configPath = app.DefaultConfigPath()
	}
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}

	logFile := ""
	if tuiMode {
		if cache, err := os.UserCacheDir(); err == nil {
			dir := filepath.Join(cache, "codebox")
			if err := os.MkdirAll(dir, 0o755); err == nil {
				logFile = filepath.Join(dir, "codebox.log")
			}
		}
	}
	logger, err := app.NewLogger(cfg.Debug, logFile)
	if err != nil {
		return nil, err
	}

	if cfg.ChatAPIKey == "" {
		mock = true
	}
	return app.NewApplication(cfg, mock, logger), nil
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "list supported language ids",
		Run: func(cmd *cobra.Command, args []string) {
			for _, l := range app.Languages() {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", l.ID, l.Label)
			}
		},
	}
}
