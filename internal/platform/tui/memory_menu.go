package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietbit/memoria/internal/config"
	"github.com/quietbit/memoria/internal/core"
)

// MemorySelection holds the user's choices from the memory setup menu.
type MemorySelection struct {
	Preset  config.DifficultyPreset
	Preview bool
}

// difficultyOption pairs a preset with the label shown in the menu.
type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy    (3x4 pairs)"},
	{config.DifficultyNormal, "Normal  (4x4 pairs)"},
	{config.DifficultyHard, "Hard    (6x6 pairs)"},
	{config.DifficultyExpert, "Expert  (6x6 triplets)"},
}

// MemorySetupModel lets users pick a difficulty and toggle the preview
// before a board is dealt.
type MemorySetupModel struct {
	cursor    int
	preview   bool
	width     int
	height    int
	keyMapper *KeyMapper
	selection MemorySelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewMemorySetupModel creates a new setup model.
func NewMemorySetupModel(width, height int) MemorySetupModel {
	return MemorySetupModel{
		cursor:    1, // Normal
		preview:   true,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m MemorySetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MemorySetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MemorySetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// "v" toggles the preview; everything else is list navigation.
	if msg.String() == "v" {
		m.preview = !m.preview
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = MemorySelection{
			Preset:  difficultyOptions[m.cursor].preset,
			Preview: m.preview,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the setup menu.
func (m MemorySetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("M E M O R Y", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, opt.label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	previewState := "on"
	if !m.preview {
		previewState = "off"
	}
	b.WriteString(centerText(fmt.Sprintf("Preview: %s (press V to toggle)", previewState), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter: Start  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m MemorySetupModel) Selected() *MemorySelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m MemorySetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m MemorySetupModel) WantsBack() bool {
	return m.back
}

// RunMemorySetup runs the setup menu and returns the selection, or nil when
// the user backed out.
func RunMemorySetup(cfg core.RuntimeConfig) (*MemorySelection, error) {
	model := NewMemorySetupModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(MemorySetupModel)
	if !ok {
		return nil, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
