package console

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/reversi/internal/reversi"
)

const header = "  a b c d e f g h"

func ownerMark(owner reversi.Owner) byte {
	switch owner {
	case reversi.White:
		return 'W'
	case reversi.Black:
		return 'B'
	default:
		return '.'
	}
}

// RenderBoard - writes the grid with column letters and row numbers. Hint cells are marked with '*'.
func RenderBoard(out io.Writer, cells [reversi.Size][reversi.Size]reversi.Owner, hints []reversi.Cell) error {
	marked := make(map[reversi.Cell]bool, len(hints))
	for _, cell := range hints {
		marked[cell] = true
	}

	var sb strings.Builder

	sb.WriteString(header)
	sb.WriteByte('\n')

	for row := range reversi.Size {
		fmt.Fprintf(&sb, "%d", row+1)

		for col := range reversi.Size {
			mark := ownerMark(cells[row][col])
			if marked[reversi.Cell{Row: row, Col: col}] {
				mark = '*'
			}

			sb.WriteByte(' ')
			sb.WriteByte(mark)
		}

		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(out, sb.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

// StatusLine prints the disc counts whenever the controller reports a change.
type StatusLine struct {
	logger *slog.Logger
	out    io.Writer
}

func NewStatusLine(logger *slog.Logger, out io.Writer) *StatusLine {
	return &StatusLine{
		logger: logger.With("component", "status"),
		out:    out,
	}
}

// Update matches reversi.CountsListener.
func (that *StatusLine) Update(white, black int) {
	if _, err := fmt.Fprintf(that.out, "White: %d vs Black: %d\n", white, black); err != nil {
		that.logger.Error("failed to write status line", "error", err, "white", white, "black", black)
	}
}

func outcomeMessage(result reversi.MoveResult) string {
	switch result.Outcome {
	case reversi.OutcomeWhiteWins:
		return fmt.Sprintf("Game over. White wins %d to %d.", result.White, result.Black)
	case reversi.OutcomeBlackWins:
		return fmt.Sprintf("Game over. Black wins %d to %d.", result.Black, result.White)
	default:
		return fmt.Sprintf("Game over. Draw, both players have %d discs.", result.White)
	}
}

func playerName(owner reversi.Owner) string {
	switch owner {
	case reversi.White:
		return "White"
	case reversi.Black:
		return "Black"
	default:
		return "Nobody"
	}
}
