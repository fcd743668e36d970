package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same key and identical inputs produce bit-identical
// results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemRecall drives the per-card forget/recall draws.
	// Uses the master seed directly.
	SubsystemRecall = "recall"
	// SubsystemReviewRating drives Hard/Good/Easy sampling for recalled cards.
	SubsystemReviewRating = "review-rating"
	// SubsystemFirstRating drives first-review ratings for new cards.
	SubsystemFirstRating = "first-rating"
)

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem.
//
// Derivation formula:
//   - SubsystemRecall: masterSeed
//   - all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Not thread-safe. Each simulation run owns its own PartitionedRNG.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the cached stream for name, creating it on first use.
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := int64(p.key)
	if name != SubsystemRecall {
		derivedSeed ^= fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
