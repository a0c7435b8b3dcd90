package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/reversi/internal/entity"
	"github.com/rocketscienceinc/reversi/internal/reversi"
)

var ErrLedgerDisabled = errors.New("result ledger is disabled")

type resultRepoDep interface {
	Save(ctx context.Context, result *entity.Result) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Result, error)
	Standings(ctx context.Context) (*entity.Standings, error)
}

type gameController interface {
	AttemptMove(row, col int) (reversi.MoveResult, error)
	Reset()
	Moves() int
}

// MatchManager runs one match at a time and records finished matches in the
// result ledger when one is configured.
type MatchManager struct {
	logger     *slog.Logger
	controller gameController
	results    resultRepoDep

	matchID   string
	startedAt time.Time
	now       func() time.Time
}

// NewMatchManager - creates a manager around a controller in its opening
// position. results may be nil to play without a ledger.
func NewMatchManager(logger *slog.Logger, controller gameController, results resultRepoDep) *MatchManager {
	manager := &MatchManager{
		logger:     logger.With("component", "match"),
		controller: controller,
		results:    results,
		now:        time.Now,
	}

	manager.begin()

	return manager
}

// NewMatch - resets the board and starts a match with a fresh ID.
func (that *MatchManager) NewMatch(ctx context.Context) string {
	that.controller.Reset()
	that.begin()

	that.logger.InfoContext(ctx, "match started", "match_id", that.matchID)

	return that.matchID
}

func (that *MatchManager) begin() {
	that.matchID = uuid.NewString()
	that.startedAt = that.now()
}

func (that *MatchManager) MatchID() string {
	return that.matchID
}

func (that *MatchManager) LedgerEnabled() bool {
	return that.results != nil
}

// Play - makes a move for the player to move and records the match when it ends.
func (that *MatchManager) Play(ctx context.Context, row, col int) (reversi.MoveResult, error) {
	log := that.logger.With("method", "Play", "match_id", that.matchID)

	result, err := that.controller.AttemptMove(row, col)
	if err != nil {
		log.DebugContext(ctx, "move rejected", "row", row, "col", col, "error", err)

		return reversi.MoveResult{}, fmt.Errorf("failed make move: %w", err)
	}

	log.DebugContext(ctx, "move played",
		"player", result.Player.String(),
		"row", row,
		"col", col,
		"flipped", len(result.Flipped),
	)

	if result.Status == reversi.StatusGameOver {
		that.recordResult(ctx, result)
	}

	return result, nil
}

// recordResult - stores the finished match. Ledger failures are logged, the game itself is already final.
func (that *MatchManager) recordResult(ctx context.Context, move reversi.MoveResult) {
	log := that.logger.With("method", "recordResult", "match_id", that.matchID)

	log.InfoContext(ctx, "match finished",
		"winner", move.Outcome.String(),
		"white", move.White,
		"black", move.Black,
	)

	if that.results == nil {
		return
	}

	result := &entity.Result{
		ID:         that.matchID,
		Winner:     winnerOf(move.Outcome),
		White:      move.White,
		Black:      move.Black,
		Moves:      that.controller.Moves(),
		StartedAt:  that.startedAt,
		FinishedAt: that.now(),
	}

	if err := that.results.Save(ctx, result); err != nil {
		log.ErrorContext(ctx, "failed to save result", "error", err)
	}
}

func winnerOf(outcome reversi.Outcome) string {
	switch outcome {
	case reversi.OutcomeWhiteWins:
		return entity.WinnerWhite
	case reversi.OutcomeBlackWins:
		return entity.WinnerBlack
	default:
		return entity.WinnerDraw
	}
}

func (that *MatchManager) Standings(ctx context.Context) (*entity.Standings, error) {
	if that.results == nil {
		return nil, ErrLedgerDisabled
	}

	standings, err := that.results.Standings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	return standings, nil
}

func (that *MatchManager) RecentResults(ctx context.Context, limit int) ([]*entity.Result, error) {
	if that.results == nil {
		return nil, ErrLedgerDisabled
	}

	results, err := that.results.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent results: %w", err)
	}

	return results, nil
}
