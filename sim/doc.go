// Package sim provides the day-stepped deck simulation engine.
//
// # Reading Guide
//
//   - config.go: SimulatorConfig, defaults and validation
//   - deck.go: the column-oriented card store and per-card day status
//   - simulator.go: Simulate and the per-day state transition
//   - rng.go: per-run RNG streams partitioned by subsystem
//
// # Architecture
//
// The memory model lives in sim/memory; the Monte Carlo sampler and the
// retention search that drive this package live in sim/optimize. Optional
// per-day admission traces are recorded through sim/trace.
//
// A run is a pure function of (config, parameters, desired retention,
// seed, existing cards). Config and parameters are never mutated, so
// concurrent runs may share them.
package sim
