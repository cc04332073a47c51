package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietbit/memoria/internal/core"
	"github.com/quietbit/memoria/internal/registry"
	"github.com/quietbit/memoria/internal/savefile"
	"github.com/quietbit/memoria/internal/storage"
)

// statusFlasher is implemented by games that can show a short status
// message, used to confirm saves from the platform layer.
type statusFlasher interface {
	Flash(msg string)
}

// boardReporter is implemented by games that can describe their board for
// the completed-games record. Zero rows means nothing was dealt.
type boardReporter interface {
	BoardStats() (rows, cols, groupSize, bestCombo int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	saves      *savefile.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	startedAt  time.Time

	// pendingRestore holds save data to load right after the first Reset,
	// for the resume flow.
	pendingRestore []byte
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, saves *savefile.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		saves:      saves,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		startedAt:  time.Now(),
	}
}

// WithRestore queues saved session data to be loaded when the model starts.
func (m Model) WithRestore(data []byte) Model {
	m.pendingRestore = data
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	if len(m.pendingRestore) > 0 {
		if p, ok := m.game.(registry.Persistable); ok {
			// A bad save file falls back to the fresh game, with the
			// failure shown where the game shows its save confirmations.
			if err := p.RestoreSession(m.pendingRestore); err != nil {
				m.flash("Load failed: " + err.Error())
			}
		}
	}

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if !m.gameState.GameOver {
			m.recordCompleted(false)
		}
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveSession()
		return m, nil
	case "b", "esc":
		// Back to menu from a paused or finished game (session flow).
		if m.gameState.GameOver || m.gameState.Paused {
			if !m.gameState.GameOver {
				m.recordCompleted(false)
			}
			m.backToMenu = true
			return m, nil
		}
	}

	km := NewKeyMapper()
	km.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// handleResize processes window resize events. The game keeps its state;
// it lays itself out against the new screen size on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Run game simulation
	result := m.game.Step(m.inputFrame)
	prevOver := m.gameState.GameOver
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.scoreSaved = false
	}
	if prevOver && !m.gameState.GameOver {
		// Restarted into a fresh board.
		m.startedAt = time.Now()
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.store != nil {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		m.recordCompleted(true)
		m.scoreSaved = true
	}

	// A finished game makes its save file stale.
	if m.gameState.GameOver && !prevOver && m.saves != nil {
		//nolint:errcheck // Best-effort cleanup
		m.saves.Remove()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// recordCompleted writes the completed-games row feeding the stats views.
// Abandoned games count as losses; games that never dealt a board are
// skipped.
func (m *Model) recordCompleted(won bool) {
	if m.store == nil {
		return
	}
	br, ok := m.game.(boardReporter)
	if !ok {
		return
	}
	rows, cols, groupSize, bestCombo := br.BoardStats()
	if rows <= 0 {
		return
	}

	//nolint:errcheck // Best-effort record, game continues regardless
	m.store.SaveCompletedGame(storage.CompletedGame{
		GameID:    m.game.ID(),
		Rows:      rows,
		Cols:      cols,
		GroupSize: groupSize,
		Score:     m.gameState.Score,
		BestCombo: bestCombo,
		Won:       won,
		Duration:  int(time.Since(m.startedAt).Seconds()),
	})
}

// flash forwards a status message to the game when it can display one.
func (m Model) flash(msg string) {
	if f, ok := m.game.(statusFlasher); ok {
		f.Flash(msg)
	}
}

// saveSession snapshots the running game to the save file.
func (m *Model) saveSession() {
	p, ok := m.game.(registry.Persistable)
	if !ok {
		return
	}
	if m.saves == nil {
		// Duel games and remote sessions have no save file.
		m.flash("Saving is not available here")
		return
	}

	data, err := p.CaptureSession()
	if err != nil {
		m.flash("Cannot save: " + err.Error())
		return
	}
	if err := m.saves.Write(data); err != nil {
		m.flash("Save failed: " + err.Error())
		return
	}
	m.flash("Game saved")
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, saves *savefile.Store, cfg core.RuntimeConfig) error {
	return runModel(NewModel(game, store, saves, cfg))
}

// RunWithRestore starts the program and loads the given save data once the
// game is initialized.
func RunWithRestore(game registry.Game, store *storage.Store, saves *savefile.Store, cfg core.RuntimeConfig, data []byte) error {
	return runModel(NewModel(game, store, saves, cfg).WithRestore(data))
}

func runModel(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
