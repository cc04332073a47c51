package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quietbit/memoria/internal/games/memory"
	"github.com/quietbit/memoria/internal/platform/tui"
	"github.com/quietbit/memoria/internal/registry"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Continue the saved game",
	Long: `Load the save file and continue playing where you left off.

The board layout, card states, score and combo are restored exactly.
Saving again (Ctrl+S) overwrites the file; winning removes it.

Examples:
  memoria resume
  memoria resume --save ./my-save.yaml`,
	Args: cobra.NoArgs,
	Run:  runResume,
}

func runResume(_ *cobra.Command, _ []string) {
	saves := openSaveStore()
	if saves == nil {
		os.Exit(1)
	}

	data, found, err := saves.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading save file: %v\n", err)
		os.Exit(1)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "No saved game at %s\n", saves.Path())
		fmt.Fprintln(os.Stderr, "Start one with 'memoria play' and press Ctrl+S.")
		os.Exit(1)
	}

	memory.SetConfigPath(flagConfig)

	game, err := registry.Create("memory")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openScoreStore()
	runErr := tui.RunWithRestore(game, store, saves, runtimeConfig(), data)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
