// Package optimize searches for the desired retention that minimizes
// review cost per memorized card.
//
// A Sampler averages a small batch of concurrent deck simulations into a
// noisy scalar objective. Brent minimizes any Objective over a bounded
// interval and knows nothing about simulation, so tests can drive it with
// a deterministic function. OptimalRetention wires the two together.
//
// # Usage
//
//	cfg := sim.DefaultSimulatorConfig()
//	r, err := optimize.OptimalRetention(ctx, cfg, nil, func(p optimize.ItemProgress) bool {
//		return true
//	})
//	if errors.Is(err, optimize.ErrOptimumNotFound) {
//		r = 0.9
//	}
package optimize
