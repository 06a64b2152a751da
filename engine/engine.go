package engine

import (
	"context"

	"monopoly/game"
)

// Result is the outcome of an episode. Winner is game.NoOwner when the turn
// limit stopped the game first.
type Result struct {
	Winner int
	Turns  int
}

type Engine interface {
	// Run plays turns until one player remains or the turn limit is reached.
	Run(ctx context.Context) (Result, error)
}

// Renderer receives read-only snapshots of the game.
type Renderer interface {
	UpdateBoard(v game.BoardView)
	UpdateDice(d game.Dice)
}

type noRenderer struct{}

func (noRenderer) UpdateBoard(game.BoardView) {}
func (noRenderer) UpdateDice(game.Dice)       {}
