package reversi

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/reversi/internal/apperror"
)

// Size is the width and height of the board.
const Size = 8

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrNoCapture    = errors.New("move captures nothing")
)

// Owner is the state of a single cell.
type Owner uint8

const (
	None Owner = iota
	// White is player A and always moves first.
	White
	// Black is player B.
	Black
)

// Other - returns the opponent of the owner. None has no opponent.
func (that Owner) Other() Owner {
	switch that {
	case White:
		return Black
	case Black:
		return White
	default:
		return None
	}
}

func (that Owner) String() string {
	switch that {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Cell is a board position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Cell) step(dir Direction) Cell {
	dRow, dCol := dir.Delta()

	return Cell{Row: that.Row + dRow, Col: that.Col + dCol}
}

// Board is the fixed 8x8 grid.
type Board struct {
	cells [Size][Size]Owner
}

// NewBoard - returns a board in the opening position.
func NewBoard() *Board {
	board := &Board{}
	board.Reset()

	return board
}

// Reset - clears the board and places the four center discs.
func (that *Board) Reset() {
	that.cells = [Size][Size]Owner{}

	that.cells[3][3] = White
	that.cells[4][4] = White
	that.cells[3][4] = Black
	that.cells[4][3] = Black
}

// Owner returns None for cells outside the board.
func (that *Board) Owner(cell Cell) Owner {
	if !cell.InBounds() {
		return None
	}

	return that.cells[cell.Row][cell.Col]
}

// IsLegalMove - reports whether player may place a disc on cell.
func (that *Board) IsLegalMove(cell Cell, player Owner) bool {
	if player == None || !cell.InBounds() || that.cells[cell.Row][cell.Col] != None {
		return false
	}

	for _, dir := range Directions {
		if that.bracketed(cell, player, dir) > 0 {
			return true
		}
	}

	return false
}

// ApplyMove - places a disc for player on cell and flips every bracketed line.
// An illegal move leaves the board untouched.
func (that *Board) ApplyMove(cell Cell, player Owner) ([]Cell, error) {
	if !cell.InBounds() {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrOutOfBounds)
	}

	if that.cells[cell.Row][cell.Col] != None {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrCellOccupied)
	}

	if player == None {
		return nil, fmt.Errorf("%w: no player to move", apperror.ErrIllegalMove)
	}

	var runs [len(Directions)]int

	captured := 0
	for i, dir := range Directions {
		runs[i] = that.bracketed(cell, player, dir)
		captured += runs[i]
	}

	if captured == 0 {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrNoCapture)
	}

	flipped := make([]Cell, 0, captured)
	for i, dir := range Directions {
		probe := cell
		for range runs[i] {
			probe = probe.step(dir)
			that.cells[probe.Row][probe.Col] = player
			flipped = append(flipped, probe)
		}
	}

	that.cells[cell.Row][cell.Col] = player

	return flipped, nil
}

// bracketed returns how many opponent discs lie between cell and the nearest
// player disc in dir. Zero means the direction captures nothing: the run hit
// the edge, an empty cell, or a player disc with no opponent discs before it.
func (that *Board) bracketed(cell Cell, player Owner, dir Direction) int {
	opponent := player.Other()
	count := 0

	for probe := cell.step(dir); probe.InBounds(); probe = probe.step(dir) {
		switch that.cells[probe.Row][probe.Col] {
		case opponent:
			count++
		case player:
			return count
		default:
			return 0
		}
	}

	return 0
}

// HasAnyLegalMove - reports whether player can move anywhere on the board.
func (that *Board) HasAnyLegalMove(player Owner) bool {
	for row := range Size {
		for col := range Size {
			if that.IsLegalMove(Cell{Row: row, Col: col}, player) {
				return true
			}
		}
	}

	return false
}

// LegalMoves - returns every legal cell for player in row-major order.
func (that *Board) LegalMoves(player Owner) []Cell {
	var moves []Cell

	for row := range Size {
		for col := range Size {
			cell := Cell{Row: row, Col: col}
			if that.IsLegalMove(cell, player) {
				moves = append(moves, cell)
			}
		}
	}

	return moves
}

func (that *Board) Count(player Owner) int {
	count := 0

	for row := range Size {
		for col := range Size {
			if that.cells[row][col] == player {
				count++
			}
		}
	}

	return count
}

// Counts - returns the number of white and black discs.
func (that *Board) Counts() (int, int) {
	return that.Count(White), that.Count(Black)
}

func (that *Board) Snapshot() [Size][Size]Owner {
	return that.cells
}
