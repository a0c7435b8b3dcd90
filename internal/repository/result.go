package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/reversi/internal/entity"
)

const (
	recentKey    = "results"
	standingsKey = "standings"

	defaultRecentLimit = 100
)

var (
	ErrResultNotFound = errors.New("result not found")
	ErrInvalidResult  = errors.New("invalid result")
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, id string) (*entity.Result, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Result, error)
	Standings(ctx context.Context) (*entity.Standings, error)
}

type dbResult struct {
	client      *redis.Client
	recentLimit int64
}

// NewResultRepository - creates the match ledger. recentLimit caps the list of
// recent match IDs; stored results themselves are never trimmed.
func NewResultRepository(client *redis.Client, recentLimit int) ResultRepository {
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}

	return &dbResult{
		client:      client,
		recentLimit: int64(recentLimit),
	}
}

func resultKey(id string) string {
	return "result:" + id
}

// Save - stores the result, pushes it onto the recent list and bumps the standings in one transaction.
func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	if result.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidResult)
	}

	switch result.Winner {
	case entity.WinnerWhite, entity.WinnerBlack, entity.WinnerDraw:
	default:
		return fmt.Errorf("%w: unknown winner %q", ErrInvalidResult, result.Winner)
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKey(result.ID), resultJSON, 0)
		pipe.LPush(ctx, recentKey, result.ID)
		pipe.LTrim(ctx, recentKey, 0, that.recentLimit-1)
		pipe.HIncrBy(ctx, standingsKey, result.Winner, 1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.Result, error) {
	response, err := that.client.Get(ctx, resultKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var result entity.Result
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// ListRecent - returns up to limit results, newest first.
func (that *dbResult) ListRecent(ctx context.Context, limit int) ([]*entity.Result, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := that.client.LRange(ctx, recentKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent results: %w", err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, resultKey(id))
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	results := make([]*entity.Result, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var result entity.Result
		if err = json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		results = append(results, &result)
	}

	return results, nil
}

func (that *dbResult) Standings(ctx context.Context) (*entity.Standings, error) {
	tally, err := that.client.HGetAll(ctx, standingsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	standings := &entity.Standings{}

	for winner, raw := range tally {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse standings for %s: %w", winner, err)
		}

		switch winner {
		case entity.WinnerWhite:
			standings.WhiteWins = count
		case entity.WinnerBlack:
			standings.BlackWins = count
		case entity.WinnerDraw:
			standings.Draws = count
		}
	}

	return standings, nil
}
