package reversi

import (
	"fmt"

	"github.com/rocketscienceinc/reversi/internal/apperror"
)

// State is the controller's position in the game lifecycle.
type State int

const (
	StateAwaitingMove State = iota
	StateGameOver
)

// Status tells the caller whether the game goes on after a move.
type Status int

const (
	StatusContinue Status = iota
	StatusGameOver
)

// Outcome is the result of a finished game.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWhiteWins
	OutcomeBlackWins
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeWhiteWins:
		return "white"
	case OutcomeBlackWins:
		return "black"
	case OutcomeDraw:
		return "draw"
	default:
		return ""
	}
}

// MoveResult describes a successful move.
type MoveResult struct {
	Status  Status
	Outcome Outcome
	Player  Owner
	Cell    Cell
	Flipped []Cell
	White   int
	Black   int
}

// CountsListener receives the disc counts whenever they change.
type CountsListener func(white, black int)

type Option func(controller *GameController)

// WithCountsListener - sets the callback fired after every successful move and reset.
func WithCountsListener(listener CountsListener) Option {
	return func(controller *GameController) {
		if listener != nil {
			controller.onCounts = listener
		}
	}
}

// GameController owns the board and the turn. It is not safe for concurrent use.
type GameController struct {
	board    *Board
	current  Owner
	state    State
	outcome  Outcome
	moves    int
	onCounts CountsListener
}

// NewGameController - creates a controller in the opening position with White to move.
// The counts listener is not fired on construction.
func NewGameController(opts ...Option) *GameController {
	controller := &GameController{
		board:   NewBoard(),
		current: White,
		state:   StateAwaitingMove,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// AttemptMove - places a disc for the player to move at (row, col).
// On any error the game is left unchanged.
func (that *GameController) AttemptMove(row, col int) (MoveResult, error) {
	cell := Cell{Row: row, Col: col}

	if err := that.validateMove(cell); err != nil {
		return MoveResult{}, fmt.Errorf("invalid move at %d,%d: %w", row, col, err)
	}

	player := that.current

	flipped, err := that.board.ApplyMove(cell, player)
	if err != nil {
		return MoveResult{}, fmt.Errorf("invalid move at %d,%d: %w", row, col, err)
	}

	that.moves++
	that.current = player.Other()
	that.updateGameStatus()

	white, black := that.board.Counts()
	that.notifyCounts(white, black)

	result := MoveResult{
		Status:  StatusContinue,
		Player:  player,
		Cell:    cell,
		Flipped: flipped,
		White:   white,
		Black:   black,
	}

	if that.state == StateGameOver {
		result.Status = StatusGameOver
		result.Outcome = that.outcome
	}

	return result, nil
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(cell Cell) error {
	if !cell.InBounds() {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrOutOfBounds)
	}

	if that.state == StateGameOver {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrGameFinished)
	}

	if that.board.Owner(cell) != None {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrCellOccupied)
	}

	if !that.board.IsLegalMove(cell, that.current) {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrNoCapture)
	}

	return nil
}

// updateGameStatus - checks the game status after a move. The turn has
// already passed, so the game ends when the player now to move is blocked.
// There is no forced pass: a blocked player ends the game even if the other
// player could still move.
func (that *GameController) updateGameStatus() {
	if that.board.HasAnyLegalMove(that.current) {
		return
	}

	that.state = StateGameOver
	that.outcome = decideOutcome(that.board.Counts())
}

func decideOutcome(white, black int) Outcome {
	switch {
	case white > black:
		return OutcomeWhiteWins
	case black > white:
		return OutcomeBlackWins
	default:
		return OutcomeDraw
	}
}

// Reset - restores the opening position with White to move.
func (that *GameController) Reset() {
	that.board.Reset()
	that.current = White
	that.state = StateAwaitingMove
	that.outcome = OutcomeNone
	that.moves = 0

	that.notifyCounts(that.board.Counts())
}

func (that *GameController) notifyCounts(white, black int) {
	if that.onCounts != nil {
		that.onCounts(white, black)
	}
}

// Counts - returns the white and black disc counts, derived from the board.
func (that *GameController) Counts() (int, int) {
	return that.board.Counts()
}

// CellOwner - returns the owner of (row, col) for rendering.
func (that *GameController) CellOwner(row, col int) (Owner, error) {
	cell := Cell{Row: row, Col: col}
	if !cell.InBounds() {
		return None, fmt.Errorf("%w: %d,%d", apperror.ErrOutOfBounds, row, col)
	}

	return that.board.Owner(cell), nil
}

// Current returns the player to move. After the game ends it is the blocked player.
func (that *GameController) Current() Owner {
	return that.current
}

func (that *GameController) State() State {
	return that.state
}

func (that *GameController) Outcome() Outcome {
	return that.outcome
}

// Moves returns the number of successful moves since the last reset.
func (that *GameController) Moves() int {
	return that.moves
}

// LegalMoves - returns the legal cells for the player to move. It is empty once the game is over.
func (that *GameController) LegalMoves() []Cell {
	if that.state == StateGameOver {
		return nil
	}

	return that.board.LegalMoves(that.current)
}

func (that *GameController) Snapshot() [Size][Size]Owner {
	return that.board.Snapshot()
}
