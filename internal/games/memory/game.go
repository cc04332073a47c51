package memory

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/quietbit/memoria/internal/config"
	"github.com/quietbit/memoria/internal/core"
	"github.com/quietbit/memoria/internal/registry"
	"github.com/quietbit/memoria/internal/savefile"
)

// Mode represents the game mode.
type Mode string

const (
	ModeSolo Mode = "solo"
	ModeDuel Mode = "duel" // hot-seat: two players alternate turns
)

// ErrDuelNotSaved is returned when trying to save a duel session; the
// snapshot schema records a single score and cannot hold per-player state.
var ErrDuelNotSaved = errors.New("memory: duel sessions cannot be saved")

// Card box footprint on screen.
const (
	cardW     = 5
	cardH     = 3
	cardGapX  = 1
	hudHeight = 2
)

// Package-level knobs set by the CLI / menu before the game is created
// (same pattern as the per-game selectors feeding Reset).
var (
	configPath        string
	difficultyPreset  string
	overrideRows      int
	overrideCols      int
	overrideGroupSize int
	previewOverride   int // -1 unset, 0 force off, 1 force on
)

// SetConfigPath sets the config file path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used on the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetBoard overrides the configured board shape. Zero values keep the
// configured/preset value for that field.
func SetBoard(rows, cols, groupSize int) {
	overrideRows = rows
	overrideCols = cols
	overrideGroupSize = groupSize
}

// SetPreviewEnabled forces the memorization preview on or off.
func SetPreviewEnabled(on bool) {
	if on {
		previewOverride = 1
	} else {
		previewOverride = 0
	}
}

// ResetOptions restores every package-level knob to its default, so the
// next Reset reads the config file untouched.
func ResetOptions() {
	configPath = ""
	difficultyPreset = ""
	overrideRows = 0
	overrideCols = 0
	overrideGroupSize = 0
	previewOverride = -1
}

func init() {
	previewOverride = -1
	registry.Register("memory", func() registry.Game {
		return New()
	})
	registry.Register("memory_duel", func() registry.Game {
		return NewDuel()
	})
}

// Game adapts a Session to the platform: cursor navigation, input gating,
// rendering, and (for solo games) snapshot save/restore. It is also the
// session's Events sink, turning match/mismatch notifications into status
// flashes and duel turn changes.
type Game struct {
	mode     Mode
	session  *Session
	rng      *rand.Rand
	tickRate int
	cfgErr   error // rejected board/config, surfaced as an overlay

	cursor int
	paused bool

	status      string
	statusTicks int

	// Duel state: the active player keeps the turn on a match and hands
	// it over on a mismatch; the session's combo streak is always the
	// active player's streak.
	turn       int
	duelScores [2]int
}

// New creates a solo memory game.
func New() *Game {
	return &Game{mode: ModeSolo}
}

// NewDuel creates a two-player hot-seat memory game.
func NewDuel() *Game {
	return &Game{mode: ModeDuel}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeDuel {
		return "memory_duel"
	}
	return "memory"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeDuel {
		return "Memory (Duel)"
	}
	return "Memory"
}

// Reset initializes/restarts the game with a fresh shuffled grid.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))

	g.cursor = 0
	g.paused = false
	g.status = ""
	g.statusTicks = 0
	g.turn = 0
	g.duelScores = [2]int{}
	g.session = nil
	g.cfgErr = nil

	mc, err := config.LoadMemory(configPath)
	if err != nil {
		g.cfgErr = err
		return
	}
	config.ApplyMemoryPreset(&mc, config.DifficultyPreset(difficultyPreset))

	if overrideRows > 0 {
		mc.Board.Rows = overrideRows
	}
	if overrideCols > 0 {
		mc.Board.Cols = overrideCols
	}
	if overrideGroupSize > 0 {
		mc.Board.GroupSize = overrideGroupSize
	}
	if previewOverride >= 0 {
		mc.Preview.Enabled = previewOverride == 1
	}

	rules := Rules{
		Rows:               mc.Board.Rows,
		Cols:               mc.Board.Cols,
		GroupSize:          mc.Board.GroupSize,
		PreviewEnabled:     mc.Preview.Enabled,
		PreviewTicks:       g.ticksFor(mc.Preview.DurationSeconds),
		MismatchDelayTicks: g.ticksFor(mc.Timing.MismatchDelaySeconds),
		SettleTicks:        g.ticksFor(mc.Timing.SettleDelaySeconds),
		BaseScore:          mc.Scoring.BaseScore,
	}

	session, err := NewSession(rules, g.rng, g)
	if err != nil {
		g.cfgErr = err
		return
	}
	if err := session.Start(true); err != nil {
		g.cfgErr = err
		return
	}
	g.session = session
}

// ticksFor converts a duration in seconds to simulation ticks.
func (g *Game) ticksFor(seconds float64) int {
	return int(seconds * float64(g.tickRate))
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	over := g.session != nil && g.session.Phase() == SessionEnded

	if input.Has(core.ActionRestart) && over {
		seed := g.rng.Int63()
		g.Reset(core.RuntimeConfig{Seed: seed, TickRate: g.tickRate})
		return core.StepResult{State: g.State()}
	}

	if g.cfgErr != nil || g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if g.paused || over {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(input)

	if input.Has(core.ActionFlip) {
		g.tryFlip()
	}

	g.session.Advance()

	if g.statusTicks > 0 {
		g.statusTicks--
		if g.statusTicks == 0 {
			g.status = ""
		}
	}

	return core.StepResult{State: g.State()}
}

// moveCursor applies directional input, clamped to the grid.
func (g *Game) moveCursor(input core.InputFrame) {
	rows, cols := g.session.Rows(), g.session.Cols()
	row, col := g.cursor/cols, g.cursor%cols

	switch {
	case input.Has(core.ActionUp):
		row--
	case input.Has(core.ActionDown):
		row++
	case input.Has(core.ActionLeft):
		col--
	case input.Has(core.ActionRight):
		col++
	}

	row = core.Clamp(row, 0, rows-1)
	col = core.Clamp(col, 0, cols-1)
	g.cursor = row*cols + col
}

// tryFlip forwards the cursor cell to the session. In duel mode a player
// may not start queueing the next group while one is still being compared.
func (g *Game) tryFlip() {
	if g.mode == ModeDuel && g.session.PendingCompares() >= g.session.GroupSize() {
		return
	}
	g.session.Flip(g.cursor)
}

// --- Events sink (presentation notifications from the session) ---

// ScoreChanged is part of the Events interface; the HUD reads the session
// directly, so nothing to do here.
func (g *Game) ScoreChanged(score, combo int) {}

// GroupResolved flashes the result and, in duel mode, applies turn rules:
// a match scores for the active player and keeps the turn, a mismatch
// passes it.
func (g *Game) GroupResolved(matched bool, points int) {
	if matched {
		g.flash(fmt.Sprintf("Match! +%d", points))
	} else {
		g.flash("No match")
	}

	if g.mode != ModeDuel {
		return
	}
	if matched {
		g.duelScores[g.turn] += points
	} else {
		g.turn = 1 - g.turn
	}
}

// GameWon is part of the Events interface; the win overlay renders from
// session phase.
func (g *Game) GameWon(finalScore int) {}

// flash shows a short-lived status message (~1.5s).
func (g *Game) flash(msg string) {
	g.status = msg
	g.statusTicks = g.tickRate + g.tickRate/2
}

// Flash shows a short-lived status message supplied by the platform layer
// (e.g. save succeeded/failed).
func (g *Game) Flash(msg string) {
	g.flash(msg)
}

// --- Persistence (registry.Persistable) ---

// CaptureSession serializes the current solo session.
func (g *Game) CaptureSession() ([]byte, error) {
	if g.mode == ModeDuel {
		return nil, ErrDuelNotSaved
	}
	if g.session == nil {
		return nil, ErrNotStarted
	}
	snap, err := g.session.Capture()
	if err != nil {
		return nil, err
	}
	return savefile.Encode(snap)
}

// RestoreSession replaces the current session with a saved one. The live
// session is untouched when decoding or reconciliation fails.
func (g *Game) RestoreSession(data []byte) error {
	if g.mode == ModeDuel {
		return ErrDuelNotSaved
	}
	if g.session == nil {
		return ErrNotStarted
	}
	snap, err := savefile.Decode(data)
	if err != nil {
		return err
	}
	if err := g.session.Restore(snap); err != nil {
		return err
	}
	g.cursor = 0
	g.flash("Game restored")
	return nil
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	state := core.GameState{Paused: g.paused}
	if g.session == nil {
		return state
	}
	state.GameOver = g.session.Phase() == SessionEnded
	if g.mode == ModeDuel {
		state.Score = core.Max(g.duelScores[0], g.duelScores[1])
	} else {
		state.Score = g.session.Score()
	}
	return state
}

// --- Rendering ---

// Render draws the HUD, the card grid, and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.cfgErr != nil {
		g.renderOverlay(dst, "Invalid board", g.cfgErr.Error())
		return
	}
	if g.session == nil {
		return
	}

	g.renderHUD(dst)

	gridW := g.session.Cols()*(cardW+cardGapX) - cardGapX
	gridH := g.session.Rows() * cardH
	if dst.Width() < gridW+2 || dst.Height() < gridH+hudHeight+2 {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	offsetX := (dst.Width() - gridW) / 2
	offsetY := hudHeight + (dst.Height()-hudHeight-1-gridH)/2

	for i := 0; i < g.session.CardCount(); i++ {
		g.renderCard(dst, i, offsetX, offsetY)
	}

	if g.status != "" {
		dst.DrawTextCentered(dst.Height()-1, g.status)
	}

	switch {
	case g.session.Phase() == SessionEnded:
		g.renderGameOver(dst)
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar and separator.
func (g *Game) renderHUD(dst *core.Screen) {
	var hud string
	switch {
	case g.mode == ModeDuel:
		hud = fmt.Sprintf(" Memory Duel | P1: %d  P2: %d  Turn: P%d  Groups: %d/%d",
			g.duelScores[0], g.duelScores[1], g.turn+1,
			g.session.MatchedGroups(), g.session.TotalGroups())
	case g.session.Phase() == SessionPreviewing:
		secs := float64(g.session.PreviewRemaining()) / float64(g.tickRate)
		hud = fmt.Sprintf(" Memory | Memorize! %.1fs", secs)
	default:
		hud = fmt.Sprintf(" Memory | Score: %d  Combo: x%d  Groups: %d/%d",
			g.session.Score(), g.session.Combo(),
			g.session.MatchedGroups(), g.session.TotalGroups())
	}

	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderCard draws one card box with its face or back.
func (g *Game) renderCard(dst *core.Screen, index, offsetX, offsetY int) {
	cols := g.session.Cols()
	x := offsetX + (index%cols)*(cardW+cardGapX)
	y := offsetY + (index/cols)*cardH

	groupID, phase := g.session.Card(index)

	var boxColor core.Color
	var face rune
	var faceColor core.Color

	switch phase {
	case CardHidden:
		boxColor = core.ColorGray
		face = '·'
		faceColor = core.ColorGray
	case CardRevealed:
		boxColor = core.ColorCyan
		face = groupSymbol(groupID)
		faceColor = core.ColorBrightWhite
	case CardMatched:
		boxColor = core.ColorGreen
		face = groupSymbol(groupID)
		faceColor = core.ColorBrightGreen
	}

	if index == g.cursor && g.session.Phase() == SessionActive {
		boxColor = core.ColorBrightYellow
	}

	dst.DrawBoxColored(core.NewRect(x, y, cardW, cardH), boxColor)
	dst.SetColored(x+cardW/2, y+cardH/2, face, faceColor)
}

// renderGameOver draws the win overlay.
func (g *Game) renderGameOver(dst *core.Screen) {
	if g.mode == ModeDuel {
		var result string
		switch {
		case g.duelScores[0] > g.duelScores[1]:
			result = fmt.Sprintf("Player 1 wins! %d : %d", g.duelScores[0], g.duelScores[1])
		case g.duelScores[1] > g.duelScores[0]:
			result = fmt.Sprintf("Player 2 wins! %d : %d", g.duelScores[1], g.duelScores[0])
		default:
			result = fmt.Sprintf("Draw! %d : %d", g.duelScores[0], g.duelScores[1])
		}
		g.renderOverlay(dst, result, "Press R to rematch")
		return
	}
	g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d - Press R to restart", g.session.Score()))
}

// renderOverlay draws a centered boxed message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()

	boxW := core.Max(len(line1), len(line2)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY + 1; y < boxY+boxH-1; y++ {
		for x := boxX + 1; x < boxX+boxW-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}

// groupSymbol maps a group id to a display rune: A-Z, then 0-9, then a-z.
func groupSymbol(id int) rune {
	switch {
	case id < 26:
		return rune('A' + id)
	case id < 36:
		return rune('0' + id - 26)
	case id < 62:
		return rune('a' + id - 36)
	default:
		return '#'
	}
}

// Cursor returns the current cursor cell (exported for the platform HUD).
func (g *Game) Cursor() int {
	return g.cursor
}

// BoardStats reports the board shape and the best combo reached, for the
// platform's completed-game record. Zero rows means no board was dealt.
func (g *Game) BoardStats() (rows, cols, groupSize, bestCombo int) {
	if g.session == nil {
		return 0, 0, 0, 0
	}
	return g.session.Rows(), g.session.Cols(), g.session.GroupSize(), g.session.BestCombo()
}
