package creature

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-logr/logr"

	"github.com/samdwyer/creatures/internal/tiles"
)

// DefaultMaxAttempts bounds how many walks a Generator tries per creature.
const DefaultMaxAttempts = 16

// ErrEmptyRepository is returned when the generator has no tiles to place.
var ErrEmptyRepository = errors.New("tile repository is empty")

// Generator produces creatures, restarting a walk from a new random start
// position when it places no tile.
type Generator struct {
	repo        *tiles.Repository
	maxAttempts uint
	logger      logr.Logger
	opts        []Option
}

// NewGenerator creates a generator over repo. A maxAttempts of zero or less
// selects DefaultMaxAttempts.
func NewGenerator(repo *tiles.Repository, maxAttempts int, logger logr.Logger, opts ...Option) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{
		repo:        repo,
		maxAttempts: uint(maxAttempts),
		logger:      logger,
		opts:        opts,
	}
}

// Generate walks until a creature with at least one tile is produced. All
// attempts consume the same random stream, so the result depends only on the
// stream's seed.
func (g *Generator) Generate(ctx context.Context, rng *rand.Rand) (*Placement, error) {
	if g.repo == nil || g.repo.Count() == 0 {
		return nil, ErrEmptyRepository
	}

	walker := NewWalker(g.repo, rng, g.opts...)
	attempt := 0
	placement, err := backoff.Retry(ctx,
		func() (*Placement, error) {
			attempt++
			p, err := walker.Walk(ctx)
			if err != nil && !errors.Is(err, ErrNoPlacement) {
				return nil, backoff.Permanent(err)
			}
			return p, err
		},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(g.maxAttempts),
		backoff.WithNotify(func(err error, _ time.Duration) {
			g.logger.V(1).Info("retrying creature walk", "attempt", attempt, "reason", err.Error())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("no creature after %d attempts: %w", attempt, err)
	}
	return placement, nil
}
