package ctcnet

import (
	"context"
	"fmt"

	"github.com/gitrdm/ctcnet/internal/parallel"
)

// ContractAll contracts independent networks concurrently, one goroutine
// per network at most, using up to workers goroutines (0 means one per
// CPU). Each network runs as ContractContext would. Results are returned
// in the order of nets.
//
// The networks must not share domains: domains are not synchronized and a
// network is never contracted by two goroutines at once. Passing the same
// network twice is an error.
func ContractAll(ctx context.Context, workers int, nets ...*Network) ([]Result, error) {
	seen := make(map[*Network]bool, len(nets))
	for i, n := range nets {
		if n == nil {
			return nil, fmt.Errorf("contract all: network %d is nil", i)
		}
		if seen[n] {
			return nil, fmt.Errorf("contract all: network %d listed twice", i)
		}
		seen[n] = true
	}

	results := make([]Result, len(nets))
	errs := make([]error, len(nets))

	pool := parallel.NewWorkerPool(workers)
	defer pool.Shutdown()

	for i, n := range nets {
		i, n := i, n
		if err := pool.Submit(ctx, func() {
			results[i], errs[i] = n.ContractContext(ctx)
		}); err != nil {
			pool.Wait()
			return results, err
		}
	}
	pool.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
