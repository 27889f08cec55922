// Package maze produces densely obstructed hex grids that are guaranteed to
// keep the goal reachable from the start.
//
// Generation carves a corridor from start to goal with a goal-biased random
// walk, then promotes open cells to obstacles in small batches, flood-filling
// after each batch and rolling back any batch that would disconnect the two
// markers.
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gravitas-015/hexpath/pkg/grid"
	"github.com/gravitas-015/hexpath/pkg/hex"
)

// ErrGenerationFailed reports that the density target could not be met
// within the retry budget. The last connectivity-verified grid is still
// returned alongside it so callers can fall back.
var ErrGenerationFailed = errors.New("maze: generation failed to meet density target")

// Config tunes the generator.
type Config struct {
	// Radius of the hex disk. Minimum 2.
	Radius int

	// Density is the fraction of carvable open cells promoted to obstacles.
	// The interesting band for contrasting search strategies is 0.35-0.55.
	Density float64

	// Seed for the random source. Zero means time-based (non-reproducible).
	Seed int64

	// MaxRetries bounds how many obstacle batches may be rejected for
	// disconnecting start from goal before generation gives up.
	MaxRetries int

	// BatchSize is the number of promotions between connectivity checks.
	BatchSize int
}

const (
	defaultDensity    = 0.45
	defaultMaxRetries = 64
	defaultBatchSize  = 8

	// walkBias is the probability that each corridor step moves toward the
	// goal rather than wandering. Keeps the corridor from degenerating into
	// a straight line without letting the walk run forever.
	walkBias = 0.7
)

func (c *Config) applyDefaults() {
	if c.Density == 0 {
		c.Density = defaultDensity
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.BatchSize == 0 {
		c.BatchSize = defaultBatchSize
	}
}

// Generate builds a maze grid for the given config. Start sits on the west
// edge of the disk and goal on the east edge.
//
// On success the returned grid meets the density target and the goal is
// reachable from the start. When the retry budget runs out the last
// connectivity-verified grid is returned together with ErrGenerationFailed.
func Generate(cfg Config) (*grid.Grid, error) {
	cfg.applyDefaults()
	if cfg.Radius < 2 {
		return nil, fmt.Errorf("maze: radius must be >= 2, got %d", cfg.Radius)
	}
	if cfg.Density < 0 || cfg.Density >= 1 {
		return nil, fmt.Errorf("maze: density must be in [0, 1), got %g", cfg.Density)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := hex.Axial{Q: -cfg.Radius, R: 0}
	goal := hex.Axial{Q: cfg.Radius, R: 0}
	g, err := grid.New(cfg.Radius, start, goal)
	if err != nil {
		return nil, err
	}

	corridor := carveCorridor(g, rng)

	// Off-corridor cells are promoted first and cannot disconnect the
	// markers while the corridor stands. Corridor cells go to the back of
	// the pool, reached only when the density target needs them; from that
	// point on the connectivity check does the real gatekeeping.
	var outer, inner []hex.Axial
	for _, c := range g.All() {
		if cell, _ := g.Classify(c); cell != grid.Open {
			continue
		}
		if corridor[c] {
			inner = append(inner, c)
		} else {
			outer = append(outer, c)
		}
	}
	shuffle := func(cells []hex.Axial) {
		rng.Shuffle(len(cells), func(i, j int) {
			cells[i], cells[j] = cells[j], cells[i]
		})
	}
	shuffle(outer)
	shuffle(inner)
	candidates := append(outer, inner...)

	target := int(cfg.Density * float64(len(candidates)))
	placed := 0
	rejects := 0
	next := 0
	for placed < target && next < len(candidates) {
		batch := cfg.BatchSize
		if remaining := target - placed; batch > remaining {
			batch = remaining
		}
		if avail := len(candidates) - next; batch > avail {
			batch = avail
		}
		cells := candidates[next : next+batch]
		next += batch

		for _, c := range cells {
			if err := g.Set(c, grid.Obstacle); err != nil {
				return nil, err
			}
		}
		if g.Reachable(start, goal) {
			placed += batch
			continue
		}
		// Batch disconnected the maze: roll it back, spend a retry, then
		// salvage the batch one cell at a time so only the cells that
		// actually sever the corridor are discarded.
		for _, c := range cells {
			if err := g.Set(c, grid.Open); err != nil {
				return nil, err
			}
		}
		rejects++
		if rejects > cfg.MaxRetries {
			return g, fmt.Errorf("maze: placed %d of %d obstacles after %d rejected batches: %w",
				placed, target, rejects, ErrGenerationFailed)
		}
		for _, c := range cells {
			if placed >= target {
				break
			}
			if err := g.Set(c, grid.Obstacle); err != nil {
				return nil, err
			}
			if g.Reachable(start, goal) {
				placed++
				continue
			}
			if err := g.Set(c, grid.Open); err != nil {
				return nil, err
			}
		}
	}
	if placed < target {
		return g, fmt.Errorf("maze: candidates exhausted at %d of %d obstacles: %w",
			placed, target, ErrGenerationFailed)
	}
	return g, nil
}

// carveCorridor walks from start to goal, biased toward the goal, and
// returns the set of visited cells. Keeping the corridor out of the early
// promotion rounds guarantees a traversable path at moderate densities and
// keeps that path from degenerating into a straight line.
func carveCorridor(g *grid.Grid, rng *rand.Rand) map[hex.Axial]bool {
	start, goal := g.Start(), g.Goal()
	corridor := map[hex.Axial]bool{start: true}
	cur := start
	for cur != goal {
		inBounds := make([]hex.Axial, 0, 6)
		closer := make([]hex.Axial, 0, 6)
		best := hex.Distance(cur, goal)
		for _, n := range cur.Neighbors() {
			if !g.Contains(n) {
				continue
			}
			inBounds = append(inBounds, n)
			if d := hex.Distance(n, goal); d < best {
				closer = append(closer, n)
			}
		}
		var step hex.Axial
		if len(closer) > 0 && rng.Float64() < walkBias {
			step = closer[rng.Intn(len(closer))]
		} else {
			step = inBounds[rng.Intn(len(inBounds))]
		}
		corridor[step] = true
		cur = step
	}
	return corridor
}

// DemoGrid returns the fixed demonstration layout: a radius-15 disk with a
// vertical obstacle wall at q=3 and a couple of stray obstacles, start at
// (-5,0) and goal at (8,-2). Useful for reproducible demos and tests.
func DemoGrid() (*grid.Grid, error) {
	g, err := grid.New(15, hex.Axial{Q: -5, R: 0}, hex.Axial{Q: 8, R: -2})
	if err != nil {
		return nil, err
	}
	for r := -5; r <= 5; r++ {
		if err := g.Set(hex.Axial{Q: 3, R: r}, grid.Obstacle); err != nil {
			return nil, err
		}
	}
	for _, c := range []hex.Axial{{Q: 4, R: -5}, {Q: 2, R: 5}} {
		if err := g.Set(c, grid.Obstacle); err != nil {
			return nil, err
		}
	}
	return g, nil
}
