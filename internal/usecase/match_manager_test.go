package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi/internal/apperror"
	"github.com/rocketscienceinc/reversi/internal/entity"
	"github.com/rocketscienceinc/reversi/internal/reversi"
	mockedUseCase "github.com/rocketscienceinc/reversi/mocks/usecase"
)

var (
	errRedisDown = errors.New("redis down")
	fixedStart   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func newTestManager(t *testing.T, results resultRepoDep) (*MatchManager, *reversi.GameController) {
	t.Helper()

	return newTestManagerWithLogs(t, results, io.Discard)
}

func newTestManagerWithLogs(t *testing.T, results resultRepoDep, logs io.Writer) (*MatchManager, *reversi.GameController) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(logs, nil))
	controller := reversi.NewGameController()
	manager := NewMatchManager(logger, controller, results)
	manager.now = func() time.Time { return fixedStart }
	manager.NewMatch(context.Background())

	return manager, controller
}

// playToEnd - plays the first legal move until the game is over and returns the final move.
func playToEnd(t *testing.T, manager *MatchManager, controller *reversi.GameController) reversi.MoveResult {
	t.Helper()

	ctx := context.Background()

	var last reversi.MoveResult
	for controller.State() == reversi.StateAwaitingMove {
		moves := controller.LegalMoves()
		require.NotEmpty(t, moves)

		result, err := manager.Play(ctx, moves[0].Row, moves[0].Col)
		require.NoError(t, err)

		last = result
	}

	return last
}

func TestMatchManager_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Records the finished match once", func(t *testing.T) {
		// Given: a manager with a ledger
		repo := mockedUseCase.NewMockresultRepoDep(t)
		manager, controller := newTestManager(t, repo)

		var saved *entity.Result
		repo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Result")).
			Run(func(_ context.Context, result *entity.Result) {
				saved = result
			}).
			Return(nil).
			Once()

		// When: the match is played to the end
		last := playToEnd(t, manager, controller)

		// Then: exactly one result matching the final position was saved
		require.NotNil(t, saved)

		expected := &entity.Result{
			ID:         manager.MatchID(),
			Winner:     winnerOf(last.Outcome),
			White:      last.White,
			Black:      last.Black,
			Moves:      controller.Moves(),
			StartedAt:  fixedStart,
			FinishedAt: fixedStart,
		}
		require.Equal(t, expected, saved)
		assert.Equal(t, reversi.StatusGameOver, last.Status)
	})

	t.Run("Ledger failure is logged and the final move still succeeds", func(t *testing.T) {
		// Given: a ledger that is down
		repo := mockedUseCase.NewMockresultRepoDep(t)
		logs := &bytes.Buffer{}
		manager, controller := newTestManagerWithLogs(t, repo, logs)

		repo.EXPECT().
			Save(mock.Anything, mock.Anything).
			Return(errRedisDown).
			Once()

		// When: the match is played to the end, every move returning no error
		last := playToEnd(t, manager, controller)

		// Then: the final result is returned, the game is over and the failure is in the log
		assert.Equal(t, reversi.StatusGameOver, last.Status)
		white, black := controller.Counts()
		assert.Equal(t, white, last.White)
		assert.Equal(t, black, last.Black)
		assert.Equal(t, reversi.StateGameOver, controller.State())
		assert.Contains(t, logs.String(), "level=ERROR")
		assert.Contains(t, logs.String(), "failed to save result")
		assert.Contains(t, logs.String(), errRedisDown.Error())
	})

	t.Run("Illegal move", func(t *testing.T) {
		// Given: a new match
		repo := mockedUseCase.NewMockresultRepoDep(t)
		manager, _ := newTestManager(t, repo)

		// When: a move that captures nothing is played
		_, err := manager.Play(ctx, 0, 0)

		// Then: it is rejected and nothing is recorded
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Without a ledger", func(t *testing.T) {
		// Given: a manager with no ledger
		manager, controller := newTestManager(t, nil)

		// When: the match is played to the end
		last := playToEnd(t, manager, controller)

		// Then: the match still finishes
		assert.Equal(t, reversi.StatusGameOver, last.Status)
		assert.False(t, manager.LedgerEnabled())
	})
}

func TestMatchManager_NewMatch(t *testing.T) {
	// Given: a match in progress
	manager, controller := newTestManager(t, nil)
	firstID := manager.MatchID()

	_, err := manager.Play(context.Background(), 2, 4)
	require.NoError(t, err)

	// When: a new match is started
	secondID := manager.NewMatch(context.Background())

	// Then: the board is back to the opening and the ID changed
	assert.NotEmpty(t, secondID)
	assert.NotEqual(t, firstID, secondID)
	assert.Equal(t, secondID, manager.MatchID())
	assert.Zero(t, controller.Moves())
	assert.Equal(t, reversi.NewBoard().Snapshot(), controller.Snapshot())
}

func TestMatchManager_Standings(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the ledger standings", func(t *testing.T) {
		repo := mockedUseCase.NewMockresultRepoDep(t)
		manager, _ := newTestManager(t, repo)

		expected := &entity.Standings{WhiteWins: 2, BlackWins: 1}
		repo.EXPECT().
			Standings(mock.Anything).
			Return(expected, nil).
			Once()

		standings, err := manager.Standings(ctx)

		require.NoError(t, err)
		assert.Equal(t, expected, standings)
	})

	t.Run("Wraps ledger errors", func(t *testing.T) {
		repo := mockedUseCase.NewMockresultRepoDep(t)
		manager, _ := newTestManager(t, repo)

		repo.EXPECT().
			Standings(mock.Anything).
			Return(nil, errRedisDown).
			Once()

		standings, err := manager.Standings(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, standings)
	})

	t.Run("Ledger disabled", func(t *testing.T) {
		manager, _ := newTestManager(t, nil)

		_, err := manager.Standings(ctx)
		require.ErrorIs(t, err, ErrLedgerDisabled)

		_, err = manager.RecentResults(ctx, 5)
		require.ErrorIs(t, err, ErrLedgerDisabled)
	})
}

func TestMatchManager_RecentResults(t *testing.T) {
	repo := mockedUseCase.NewMockresultRepoDep(t)
	manager, _ := newTestManager(t, repo)

	expected := []*entity.Result{{ID: "b", Winner: entity.WinnerDraw}, {ID: "a", Winner: entity.WinnerWhite}}
	repo.EXPECT().
		ListRecent(mock.Anything, 5).
		Return(expected, nil).
		Once()

	results, err := manager.RecentResults(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, expected, results)
}
