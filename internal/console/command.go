package console

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/reversi/internal/reversi"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")

	coordinatePattern = regexp.MustCompile(`^([a-z])([0-9]+)$`)
)

type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandNew
	CommandBoard
	CommandMoves
	CommandStats
	CommandRecent
	CommandHelp
	CommandQuit
)

// Command is one parsed line of input. Row and Col are set for moves only and
// are not range checked; the controller rejects cells off the board.
type Command struct {
	Kind CommandKind
	Row  int
	Col  int
}

var keywords = map[string]CommandKind{
	"new":    CommandNew,
	"board":  CommandBoard,
	"moves":  CommandMoves,
	"hint":   CommandMoves,
	"stats":  CommandStats,
	"recent": CommandRecent,
	"help":   CommandHelp,
	"?":      CommandHelp,
	"quit":   CommandQuit,
	"exit":   CommandQuit,
}

// ParseCommand - parses a keyword, a coordinate such as "e3" or a 0-based "row col" pair.
func ParseCommand(line string) (Command, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return Command{}, ErrEmptyCommand
	}

	if kind, ok := keywords[line]; ok {
		return Command{Kind: kind}, nil
	}

	if match := coordinatePattern.FindStringSubmatch(line); match != nil {
		number, err := strconv.Atoi(match[2])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
		}

		return Command{Kind: CommandMove, Row: number - 1, Col: int(match[1][0] - 'a')}, nil
	}

	fields := strings.Fields(line)
	if len(fields) == 2 {
		row, rowErr := strconv.Atoi(fields[0])
		col, colErr := strconv.Atoi(fields[1])

		if rowErr == nil && colErr == nil {
			return Command{Kind: CommandMove, Row: row, Col: col}, nil
		}
	}

	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}

// Coordinate - formats a cell the way players type it, e.g. (2,4) is "e3".
func Coordinate(cell reversi.Cell) string {
	if cell.Col < 0 || cell.Col >= 26 {
		return fmt.Sprintf("%d,%d", cell.Row, cell.Col)
	}

	return fmt.Sprintf("%c%d", 'a'+cell.Col, cell.Row+1)
}
