package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/deck-sim/deck-sim/sim"
)

// DeckFile represents the full deck YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type DeckFile struct {
	Simulator     SimulatorSection `yaml:"simulator"`
	Parameters    []float64        `yaml:"parameters"`
	ExistingCards []CardEntry      `yaml:"existing_cards"`
}

// SimulatorSection overlays sim.DefaultSimulatorConfig. Fields left out of
// the file keep their default.
type SimulatorSection struct {
	DeckSize         *int        `yaml:"deck_size"`
	LearnSpan        *int        `yaml:"learn_span"`
	MaxCostPerDay    *float64    `yaml:"max_cost_per_day"` // .inf for no cap
	MaxInterval      *int        `yaml:"max_interval"`
	RecallCosts      *[3]float64 `yaml:"recall_costs"`
	ForgetCost       *float64    `yaml:"forget_cost"`
	LearnCost        *float64    `yaml:"learn_cost"`
	FirstRatingProb  *[4]float64 `yaml:"first_rating_prob"`
	ReviewRatingProb *[3]float64 `yaml:"review_rating_prob"`
	LossAversion     *float64    `yaml:"loss_aversion"`
	LearnLimit       *int        `yaml:"learn_limit"`
	ReviewLimit      *int        `yaml:"review_limit"`
}

// CardEntry is a card already in the learner's collection.
type CardEntry struct {
	Difficulty float64 `yaml:"difficulty"`
	Stability  float64 `yaml:"stability"`
	LastReview int     `yaml:"last_review"` // day index, usually negative
	Due        int     `yaml:"due"`
}

// loadDeckFile parses a deck file with strict field checking. An empty
// path yields an empty DeckFile, i.e. all defaults.
func loadDeckFile(path string) (*DeckFile, error) {
	var df DeckFile
	if path == "" {
		return &df, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&df); err != nil {
		return nil, fmt.Errorf("parsing deck file %s: %w", path, err)
	}
	return &df, nil
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// SimulatorConfig returns the defaults with every field set in the file
// applied on top.
func (df *DeckFile) SimulatorConfig() sim.SimulatorConfig {
	cfg := sim.DefaultSimulatorConfig()
	s := &df.Simulator
	overlay(&cfg.DeckSize, s.DeckSize)
	overlay(&cfg.LearnSpan, s.LearnSpan)
	overlay(&cfg.MaxCostPerDay, s.MaxCostPerDay)
	overlay(&cfg.MaxInterval, s.MaxInterval)
	overlay(&cfg.RecallCosts, s.RecallCosts)
	overlay(&cfg.ForgetCost, s.ForgetCost)
	overlay(&cfg.LearnCost, s.LearnCost)
	overlay(&cfg.FirstRatingProb, s.FirstRatingProb)
	overlay(&cfg.ReviewRatingProb, s.ReviewRatingProb)
	overlay(&cfg.LossAversion, s.LossAversion)
	overlay(&cfg.LearnLimit, s.LearnLimit)
	overlay(&cfg.ReviewLimit, s.ReviewLimit)
	return cfg
}

// Cards converts the existing_cards section.
func (df *DeckFile) Cards() []sim.Card {
	if len(df.ExistingCards) == 0 {
		return nil
	}
	cards := make([]sim.Card, len(df.ExistingCards))
	for i, c := range df.ExistingCards {
		cards[i] = sim.Card{
			Difficulty: c.Difficulty,
			Stability:  c.Stability,
			LastReview: c.LastReview,
			Due:        c.Due,
		}
	}
	return cards
}
