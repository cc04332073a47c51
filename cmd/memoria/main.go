// memoria is a terminal memory-matching card game.
//
// Usage:
//
//	memoria play             - Deal a board and play
//	memoria menu             - Interactive mode picker
//	memoria resume           - Continue the saved game
//	memoria list             - List available modes
//	memoria scores <mode>    - Show high scores for a mode
//	memoria serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible deals
//	--db <path>     - Set database path (default: ~/.memoria/scores.db)
//	--save <path>   - Set save file path (default: ~/.memoria/save.yaml)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game package to register its modes
	_ "github.com/quietbit/memoria/internal/games/memory"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagSavePath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memoria",
	Short: "Memoria - memory matching in your terminal",
	Long: `Memoria is a terminal memory-matching card game: flip cards,
find the groups, chain combos for a higher score.

Available commands:
  play     - Deal a board and play directly
  menu     - Interactive mode picker
  resume   - Continue the saved game
  list     - Show available modes
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  memoria play
  memoria play --difficulty expert
  memoria play --rows 6 --cols 6 --group-size 3
  memoria resume
  memoria serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.memoria/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagSavePath, "save", "~/.memoria/save.yaml", "Path to the save file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
