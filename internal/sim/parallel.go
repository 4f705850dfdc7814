package sim

import (
	"context"
	"sync"

	"github.com/san-kum/wheelspin/internal/wheel"
)

// Sweep runs one flick per velocity concurrently, each on its own engine.
// Results are returned in the order of velocities. Observers added with
// AddObserver see frames from every run and must be safe for concurrent use.
func (s *Simulator) Sweep(ctx context.Context, velocities []float64, direction wheel.Direction, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(velocities))
	errs := make([]error, len(velocities))

	var wg sync.WaitGroup
	for i, v := range velocities {
		wg.Add(1)
		go func(idx int, velocity float64) {
			defer wg.Done()
			results[idx], errs[idx] = s.RunFlick(ctx, velocity, direction, cfg)
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
