package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/game"
	"github.com/pthm-cable/swamp/telemetry"
)

// FitnessEvaluator runs simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	snails     int
	duration   int
	seeds      []int64
	baseConfig *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestSummary telemetry.Summary
	lastMean    float64 // mean population from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, snails, duration int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		snails:      snails,
		duration:    duration,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestSummary returns the summary of the best seed of the best evaluation.
func (fe *FitnessEvaluator) BestSummary() telemetry.Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSummary
}

// LastMean returns the mean population from the most recent evaluation.
func (fe *FitnessEvaluator) LastMean() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMean
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	summary telemetry.Summary
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	trial := fe.params.Decode(fe.baseConfig, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			res, err := game.RunOnce(trial.Config, game.Params{
				Snails:    fe.snails,
				Duration:  fe.duration,
				ReproProb: trial.ReproProb,
				PredProb:  trial.PredProb,
				Seed:      s,
			})
			if err != nil {
				slog.Warn("evaluation failed", "seed", s, "error", err)
				results[idx] = seedResult{fitness: 0}
				return
			}
			results[idx] = seedResult{
				fitness: computeFitness(res.Summary, fe.duration),
				summary: res.Summary,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalMean float64
	bestSeedFitness := math.Inf(1)
	var bestSeedSummary telemetry.Summary

	for _, r := range results {
		totalFitness += r.fitness
		totalMean += r.summary.MeanPop
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedSummary = r.summary
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	// Update best tracking
	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestSummary = bestSeedSummary
	}
	fe.lastMean = totalMean / n
	fe.mu.Unlock()

	return avgFitness
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(meanPop × survivedFraction)
// A population that dies out early is scaled down by how long it lasted.
func computeFitness(s telemetry.Summary, duration int) float64 {
	survived := 1.0
	if s.ExtinctAt >= 0 && duration > 0 {
		survived = float64(s.ExtinctAt) / float64(duration)
	}
	return -(s.MeanPop * survived)
}
