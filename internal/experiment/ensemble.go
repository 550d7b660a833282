package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/vortsim/internal/config"
)

// RunAll runs one experiment per configuration concurrently and returns the
// results in input order. The first error wins and no results are returned.
func RunAll(ctx context.Context, cfgs []*config.Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, cfg *config.Config) {
			defer wg.Done()
			results[idx], errs[idx] = New(cfg).Run(ctx)
		}(i, cfg)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
