package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chattolabs/chatto/internal/tui"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	Long: `Open the interactive terminal UI: chat list, uploads, analysis
results with charts, and the quiz editor.

Examples:
  chatto tui
  chatto tui --mode business`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()

	app := tui.NewApp(state.mgr, state.mode, state.logger)
	program := tea.NewProgram(tui.NewModel(app), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
