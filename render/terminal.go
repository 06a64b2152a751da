// Package render draws game snapshots on a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"monopoly/game"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	boardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD"))

	playersStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true)

	bankruptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	diceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

var groupColors = map[string]lipgloss.Color{
	"brown":      lipgloss.Color("#8B4513"),
	"light_blue": lipgloss.Color("#87CEEB"),
	"pink":       lipgloss.Color("#FF69B4"),
	"orange":     lipgloss.Color("#FFA500"),
	"red":        lipgloss.Color("#FF3333"),
	"yellow":     lipgloss.Color("#FFD700"),
	"green":      lipgloss.Color("#2E8B57"),
	"dark_blue":  lipgloss.Color("#4169E1"),
}

// Terminal redraws the whole board on every board update.
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	board game.BoardView
	dice  game.Dice
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) UpdateBoard(v game.BoardView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.board = v
	fmt.Fprintln(t.out, t.view())
}

func (t *Terminal) UpdateDice(d game.Dice) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dice = d
}

// View returns the last drawn frame.
func (t *Terminal) View() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view()
}

func (t *Terminal) view() string {
	title := titleStyle.Render(fmt.Sprintf("Turn %d", t.board.Turn))
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		boardStyle.Render(t.renderFields()),
		playersStyle.Render(t.renderPlayers()),
	)
	dice := diceStyle.Render(fmt.Sprintf("Dice: %d + %d", t.dice.First, t.dice.Second))
	return lipgloss.JoinVertical(lipgloss.Left, title, main, dice)
}

func (t *Terminal) renderFields() string {
	var b strings.Builder
	for _, f := range t.board.Fields {
		name := f.Name
		if c, ok := groupColors[f.Color]; ok {
			name = lipgloss.NewStyle().Foreground(c).Render(name)
		}
		fmt.Fprintf(&b, "%2d %s", f.ID, name)
		if f.Owner != game.NoOwner {
			fmt.Fprintf(&b, " [P%d]", f.Owner)
		}
		if f.Level > 0 {
			fmt.Fprintf(&b, " %s", levelMark(f.Level))
		}
		if f.Mortgaged {
			b.WriteString(" (mortgaged)")
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func levelMark(level int) string {
	if level == game.MaxLevel {
		return "H"
	}
	return strings.Repeat("h", level)
}

func (t *Terminal) renderPlayers() string {
	lines := []string{}
	for _, p := range t.board.Players {
		line := fmt.Sprintf("P%d  cash %5d  at %2d", p.ID, p.Cash, p.Position)
		if p.JailTurns > 0 {
			line += fmt.Sprintf("  jail %d", p.JailTurns)
		}
		switch {
		case p.Bankrupt:
			line = bankruptStyle.Render(line + "  bankrupt")
		case p.ID == t.board.Current:
			line = currentStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
