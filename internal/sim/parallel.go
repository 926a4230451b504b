package sim

import (
	"context"
	"sync"
)

// RunAll executes several independent runners concurrently with the
// same config, one goroutine each. Every runner must own its own
// BalanceModel; models are never shared across goroutines.
func RunAll(ctx context.Context, runners []*Runner, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(runners))
	errs := make([]error, len(runners))

	var wg sync.WaitGroup
	for i, r := range runners {
		wg.Add(1)
		go func(idx int, runner *Runner) {
			defer wg.Done()
			results[idx], errs[idx] = runner.Run(ctx, cfg)
		}(i, r)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
