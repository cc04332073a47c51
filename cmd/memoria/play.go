package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quietbit/memoria/internal/config"
	"github.com/quietbit/memoria/internal/core"
	"github.com/quietbit/memoria/internal/games/memory"
	"github.com/quietbit/memoria/internal/platform/tui"
	"github.com/quietbit/memoria/internal/registry"
	"github.com/quietbit/memoria/internal/savefile"
	"github.com/quietbit/memoria/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRows       int
	flagCols       int
	flagGroupSize  int
	flagNoPreview  bool
	flagDuel       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Deal a board and play",
	Long: `Deal a shuffled board and start playing.

Controls:
  Arrows/WASD  - Move the cursor
  Space/F      - Flip the card under the cursor
  P            - Pause
  Ctrl+S       - Save the game (solo only)
  R            - Restart (after winning)
  Q/Ctrl+C     - Quit

Difficulty presets:
  easy   - 3x4 board, pairs
  normal - 4x4 board, pairs
  hard   - 6x6 board, pairs
  expert - 6x6 board, triplets

Examples:
  memoria play
  memoria play --difficulty expert
  memoria play --rows 6 --cols 4
  memoria play --group-size 3 --no-preview
  memoria play --duel
  memoria play --config ./my-memory.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, expert")
	playCmd.Flags().IntVar(&flagRows, "rows", 0, "Board rows (0 = from config)")
	playCmd.Flags().IntVar(&flagCols, "cols", 0, "Board columns (0 = from config)")
	playCmd.Flags().IntVar(&flagGroupSize, "group-size", 0, "Cards per match group (0 = from config)")
	playCmd.Flags().BoolVar(&flagNoPreview, "no-preview", false, "Skip the memorization preview")
	playCmd.Flags().BoolVar(&flagDuel, "duel", false, "Two-player hot-seat mode")
}

// runtimeConfig builds the shared runtime config from the terminal size and
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openScoreStore opens the scores database, or returns nil when it cannot
// be opened (the game still works without it).
func openScoreStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// openSaveStore resolves the save file location. Duel games never save.
func openSaveStore() *savefile.Store {
	saves, err := savefile.NewStore(flagSavePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not resolve save path: %v\n", err)
		return nil
	}
	return saves
}

func runPlay(cmd *cobra.Command, args []string) {
	if !config.ValidPreset(flagDifficulty) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (use one of: easy, normal, hard, expert)\n", flagDifficulty)
		os.Exit(1)
	}

	memory.SetConfigPath(flagConfig)
	memory.SetDifficultyPreset(flagDifficulty)
	memory.SetBoard(flagRows, flagCols, flagGroupSize)
	if flagNoPreview {
		memory.SetPreviewEnabled(false)
	}

	gameID := "memory"
	if flagDuel {
		gameID = "memory_duel"
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openScoreStore()
	var saves *savefile.Store
	if !flagDuel {
		saves = openSaveStore()
	}

	runErr := tui.Run(game, store, saves, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
