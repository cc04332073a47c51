package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietbit/memoria/internal/games/memory"
	"github.com/quietbit/memoria/internal/platform/tui"
	"github.com/quietbit/memoria/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an interactive mode picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, then pick a
difficulty. When a save file exists, the menu offers to continue it.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  memoria menu
  memoria menu --fps 30
  memoria menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openScoreStore()
	saves := openSaveStore()
	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, saves, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		memory.ResetOptions()
		memory.SetConfigPath(flagConfig)

		var restoreData []byte
		if menuResult.Resume && saves != nil {
			data, found, readErr := saves.Read()
			if readErr != nil || !found {
				fmt.Fprintln(os.Stderr, "Warning: saved game could not be read")
				continue
			}
			restoreData = data
		} else {
			// Fresh game: pick difficulty and preview first.
			selection, selErr := tui.RunMemorySetup(cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			if selection == nil {
				continue // User backed out
			}
			memory.SetDifficultyPreset(string(selection.Preset))
			memory.SetPreviewEnabled(selection.Preview)
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Update seed for each game
		cfg.Seed = time.Now().UnixNano()

		gameSaves := saves
		if gameID == "memory_duel" {
			gameSaves = nil
		}

		if err := tui.RunWithRestore(game, store, gameSaves, cfg, restoreData); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
