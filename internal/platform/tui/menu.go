package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuPlay
	MenuContinue
	MenuScores
	MenuQuit
)

// MenuItem is one selectable line of the main menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

// MenuKeyMap holds the menu bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	}
}

// MenuModel is the Bubble Tea model of the main menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	chosen   MenuChoice
	quitting bool
}

// NewMenuModel creates the main menu. A continue entry is offered when
// the player has reached a level past the first.
func NewMenuModel(highestLevel, width, height int) MenuModel {
	items := []MenuItem{{Title: "New game", Choice: MenuPlay}}
	if highestLevel > 1 {
		items = append(items, MenuItem{Title: fmt.Sprintf("Continue from level %d", highestLevel), Choice: MenuContinue})
	}
	items = append(items,
		MenuItem{Title: "High scores", Choice: MenuScores},
		MenuItem{Title: "Quit", Choice: MenuQuit},
	)

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.chosen = m.items[m.cursor].Choice
			if m.chosen == MenuQuit {
				m.quitting = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("D E A D   P I X E L"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("find what does not belong"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = activeStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Chosen returns the selected entry, or MenuNone.
func (m MenuModel) Chosen() MenuChoice {
	return m.chosen
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
