package rounds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"guess-the-guild/internal/core/domain"
	"guess-the-guild/internal/core/ports"
	"guess-the-guild/internal/metrics"

	"github.com/google/uuid"
)

const (
	PoolSize      = 4
	SortByMembers = "members"
)

var ErrFetchRound = errors.New("fetch round")

type Options struct {
	RetryAttempts int
	RetryBackoff  time.Duration
	// Rand is used for offsets, target, order and mode. A time seeded source is used when nil.
	Rand *rand.Rand
}

type Generator struct {
	fetcher ports.GuildFetcher
	opts    Options

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGenerator(fetcher ports.GuildFetcher, opts Options) *Generator {
	rnd := opts.Rand
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if opts.RetryAttempts < 0 {
		opts.RetryAttempts = 0
	}
	return &Generator{fetcher: fetcher, opts: opts, rnd: rnd}
}

// Next fetches a fresh pool for the difficulty. Failed fetches are retried
// RetryAttempts times before ErrFetchRound is returned.
func (g *Generator) Next(ctx context.Context, difficulty domain.Difficulty) (*domain.Round, error) {
	params := ports.ListGuildsParams{
		Limit:  PoolSize,
		Offset: g.intN(difficulty.MaxOffset()),
	}

	var lastErr error
	for attempt := 0; attempt <= g.opts.RetryAttempts; attempt++ {
		if attempt > 0 {
			slog.Warn("Retrying round fetch", "attempt", attempt, "offset", params.Offset, "error", lastErr)
			if err := sleep(ctx, g.opts.RetryBackoff); err != nil {
				lastErr = err
				break
			}
		}

		pool, err := g.fetcher.ListGuilds(ctx, params)
		if err != nil {
			lastErr = err
			continue
		}
		if len(pool) == 0 {
			lastErr = errors.New("guild listing returned no guilds")
			continue
		}
		return g.build(pool, difficulty), nil
	}

	metrics.RoundFetchFailures.Inc()
	return nil, fmt.Errorf("%w: %w", ErrFetchRound, lastErr)
}

// Initial builds the first round shown to a new player from the most popular
// guilds. Fetch errors yield an empty round.
func (g *Generator) Initial(ctx context.Context) *domain.Round {
	params := ports.ListGuildsParams{
		Limit:  PoolSize,
		Offset: g.intN(domain.DifficultyEasy.MaxOffset()),
		Sort:   SortByMembers,
	}

	pool, err := g.fetcher.ListGuilds(ctx, params)
	if err != nil {
		slog.Warn("Failed to fetch initial guilds", "offset", params.Offset, "error", err)
		pool = nil
	}
	return g.build(pool, domain.DifficultyEasy)
}

func (g *Generator) build(pool []domain.GuildSummary, difficulty domain.Difficulty) *domain.Round {
	if len(pool) > PoolSize {
		pool = pool[:PoolSize]
	}

	round := &domain.Round{
		ID:         uuid.NewString(),
		Difficulty: difficulty,
		Pool:       pool,
	}
	if len(pool) == 0 {
		round.Mode = domain.ModeLogo
		return round
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	round.Target = pool[g.rnd.IntN(len(pool))]

	presentation := make([]domain.GuildSummary, len(pool))
	copy(presentation, pool)
	g.rnd.Shuffle(len(presentation), func(i, j int) {
		presentation[i], presentation[j] = presentation[j], presentation[i]
	})
	round.Presentation = presentation

	if g.rnd.Float64() < 0.5 {
		round.Mode = domain.ModeLogo
	} else {
		round.Mode = domain.ModePair
	}
	return round
}

func (g *Generator) intN(n int) int {
	if n <= 0 {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.IntN(n)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
