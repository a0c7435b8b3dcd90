package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/reversi/internal/apperror"
	"github.com/rocketscienceinc/reversi/internal/entity"
	"github.com/rocketscienceinc/reversi/internal/reversi"
	"github.com/rocketscienceinc/reversi/internal/usecase"
)

const helpText = `Commands:
  e3        place a disc (column a-h, row 1-8)
  2 4       place a disc by 0-based row and column
  new       start a new game
  board     show the board
  moves     list legal moves
  stats     show standings
  recent    show recent results
  help      show this help
  quit      leave
`

type matchManager interface {
	NewMatch(ctx context.Context) string
	Play(ctx context.Context, row, col int) (reversi.MoveResult, error)
	Standings(ctx context.Context) (*entity.Standings, error)
	RecentResults(ctx context.Context, limit int) ([]*entity.Result, error)
}

type boardView interface {
	Snapshot() [reversi.Size][reversi.Size]reversi.Owner
	Current() reversi.Owner
	State() reversi.State
	LegalMoves() []reversi.Cell
}

type Options struct {
	HideHints  bool
	ShowRecent int
}

// Console is the text front end: it reads commands, asks the match manager to
// play them and prints the board. It never decides game rules itself.
type Console struct {
	logger  *slog.Logger
	in      io.Reader
	out     io.Writer
	manager matchManager
	view    boardView
	opts    Options
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, manager matchManager, view boardView, opts Options) *Console {
	return &Console{
		logger:  logger.With("component", "console"),
		in:      in,
		out:     out,
		manager: manager,
		view:    view,
		opts:    opts,
	}
}

// Run - processes commands until quit, end of input or cancellation.
func (that *Console) Run(ctx context.Context) error {
	that.printf("Reversi. White moves first. Type 'help' for commands.\n")
	that.showBoard()

	scanner := bufio.NewScanner(that.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		that.printf("%s> ", playerName(that.view.Current()))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}

			that.printf("\n")

			return nil
		}

		cmd, err := ParseCommand(scanner.Text())
		if errors.Is(err, ErrEmptyCommand) {
			continue
		}

		if err != nil {
			that.printf("%s. Type 'help' for commands.\n", strings.TrimSpace(err.Error()))
			continue
		}

		if cmd.Kind == CommandQuit {
			return nil
		}

		that.handle(ctx, cmd)
	}
}

func (that *Console) handle(ctx context.Context, cmd Command) {
	switch cmd.Kind {
	case CommandMove:
		that.handleMove(ctx, cmd)
	case CommandNew:
		that.manager.NewMatch(ctx)
		that.showBoard()
	case CommandBoard:
		that.showBoard()
	case CommandMoves:
		that.handleMoves()
	case CommandStats:
		that.handleStats(ctx)
	case CommandRecent:
		that.handleRecent(ctx)
	case CommandHelp:
		that.printf("%s", helpText)
	}
}

func (that *Console) handleMove(ctx context.Context, cmd Command) {
	cell := reversi.Cell{Row: cmd.Row, Col: cmd.Col}

	result, err := that.manager.Play(ctx, cmd.Row, cmd.Col)
	switch {
	case errors.Is(err, apperror.ErrOutOfBounds):
		that.printf("%s is off the board.\n", Coordinate(cell))
		return
	case errors.Is(err, apperror.ErrGameFinished):
		that.printf("The game is over. Type 'new' to play again.\n")
		return
	case errors.Is(err, apperror.ErrIllegalMove):
		that.printf("Illegal move at %s.\n", Coordinate(cell))
		return
	case err != nil:
		that.logger.Error("failed to play move", "error", err)
		that.printf("Could not play %s.\n", Coordinate(cell))
		return
	}

	that.showBoard()

	if result.Status == reversi.StatusGameOver {
		that.printf("%s\n", outcomeMessage(result))
		return
	}

	that.printf("%s to move.\n", playerName(that.view.Current()))
}

func (that *Console) handleMoves() {
	if that.view.State() == reversi.StateGameOver {
		that.printf("The game is over. Type 'new' to play again.\n")
		return
	}

	moves := that.view.LegalMoves()
	names := make([]string, 0, len(moves))
	for _, cell := range moves {
		names = append(names, Coordinate(cell))
	}

	that.printf("Legal moves for %s: %s\n", playerName(that.view.Current()), strings.Join(names, " "))
}

func (that *Console) handleStats(ctx context.Context) {
	standings, err := that.manager.Standings(ctx)
	if err != nil {
		that.reportLedgerError(err)
		return
	}

	that.printf("Games: %d, White wins: %d, Black wins: %d, Draws: %d\n",
		standings.Total(), standings.WhiteWins, standings.BlackWins, standings.Draws)
}

func (that *Console) handleRecent(ctx context.Context) {
	results, err := that.manager.RecentResults(ctx, that.opts.ShowRecent)
	if err != nil {
		that.reportLedgerError(err)
		return
	}

	if len(results) == 0 {
		that.printf("No finished games yet.\n")
		return
	}

	for _, result := range results {
		that.printf("%s  %-5s  %2d-%-2d  %d moves\n",
			result.FinishedAt.Format("2006-01-02 15:04"), result.Winner, result.White, result.Black, result.Moves)
	}
}

func (that *Console) reportLedgerError(err error) {
	if errors.Is(err, usecase.ErrLedgerDisabled) {
		that.printf("The result ledger is disabled.\n")
		return
	}

	that.logger.Error("failed to read result ledger", "error", err)
	that.printf("Could not read the result ledger.\n")
}

func (that *Console) showBoard() {
	var hints []reversi.Cell
	if !that.opts.HideHints && that.view.State() == reversi.StateAwaitingMove {
		hints = that.view.LegalMoves()
	}

	if err := RenderBoard(that.out, that.view.Snapshot(), hints); err != nil {
		that.logger.Error("failed to render board", "error", err)
	}
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
