// Package main provides CMA-ES optimization for finding the reproduction and
// predation settings that keep the snail population largest.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/game"
)

// evalRow is one line of optimize_log.csv.
type evalRow struct {
	Eval         int     `csv:"eval"`
	Fitness      float64 `csv:"fitness"`
	MeanPop      float64 `csv:"mean_pop"`
	ReproProb    int     `csv:"repro_prob"`
	PredProb     int     `csv:"pred_prob"`
	MaturityAge  int     `csv:"maturity_age"`
	MaxOffspring int     `csv:"max_offspring"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", config.DefaultPath, "Base JSON config file")
	snails := flag.Int("snails", 100, "Initial snails per run")
	duration := flag.Int("duration", 500, "Ticks per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if !game.CheckSnails(*snails) || !game.CheckDuration(*duration) {
		log.Fatalf("snails must be in (%d, %d) and duration in (%d, %d)",
			game.MinSnails, game.MaxSnails, game.MinDuration, game.MaxDuration)
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg)

	// Generate seeds for evaluation
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *snails, *duration, evalSeeds, baseCfg)

	// Set up CMA-ES
	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation; seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	// Open log file
	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestTrial game.Params
	var bestCfg *config.Config
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		trial := params.Decode(baseCfg, params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestTrial = game.Params{ReproProb: trial.ReproProb, PredProb: trial.PredProb}
			bestCfg = trial.Apply()
		}

		row := []evalRow{{
			Eval:         evalCount,
			Fitness:      fitness,
			MeanPop:      evaluator.LastMean(),
			ReproProb:    trial.ReproProb,
			PredProb:     trial.PredProb,
			MaturityAge:  trial.Config.MaturityAge,
			MaxOffspring: trial.Config.MaxOffspring,
		}}
		if evalCount == 1 {
			err = gocsv.Marshal(row, logFile)
		} else {
			err = gocsv.MarshalWithoutHeaders(row, logFile)
		}
		if err != nil {
			log.Printf("failed to log evaluation %d: %v", evalCount, err)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: repro=%d pred=%d mean_pop=%.1f (best=%.1f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, trial.ReproProb, trial.PredProb, evaluator.LastMean(), -bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, snails: %d, ticks per run: %d\n", *seeds, *snails, *duration)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use the best evaluation seen, which may not be the final one
	if bestCfg == nil && result != nil {
		trial := params.Decode(baseCfg, params.Denormalize(result.X))
		bestTrial = game.Params{ReproProb: trial.ReproProb, PredProb: trial.PredProb}
		bestCfg = trial.Apply()
	}
	if bestCfg == nil {
		log.Fatal("no evaluations completed")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best fitness: %.2f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	fmt.Printf("  repro_prob: %d\n  pred_prob: %d\n  maturity_age: %d\n  max_offspring: %d\n",
		bestTrial.ReproProb, bestTrial.PredProb, bestCfg.MaturityAge, bestCfg.MaxOffspring)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	summaryPath := filepath.Join(*outputDir, "best_summary.json")
	data, err := json.MarshalIndent(evaluator.BestSummary(), "", "  ")
	if err != nil {
		log.Printf("failed to marshal summary: %v", err)
	} else if err := os.WriteFile(summaryPath, data, 0644); err != nil {
		log.Printf("failed to write summary: %v", err)
	} else {
		fmt.Printf("Best run summary saved to: %s\n", summaryPath)
	}
}
