package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/vortsim/internal/config"
	"github.com/san-kum/vortsim/internal/experiment"
)

// GridSearch tries every combination of the given parameter values on a
// base configuration and keeps the one that minimises a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Size is the number of combinations Search runs.
func (g *GridSearch) Size() int {
	if len(g.ranges) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search returns the best parameter set and its metric value. Combinations
// that fail to validate or run are skipped, as are NaN metric values.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("optim: no combination produced %s", metricName)
	}

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := base.Clone()
		for k, v := range current {
			if err := cfg.Set(k, v); err != nil {
				return err
			}
		}

		result, err := experiment.New(cfg).Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: unknown metric %q", metricName)
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
