// Package main provides a throughput benchmark for the geometric
// feature extractor. It generates a deterministic synthetic point
// cloud, builds exact neighbor lists (standing in for the external
// k-NN producer), and times feature extraction with and without the
// adaptive neighborhood-size search.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/banshee-data/pointgeom/internal/geom"
	"github.com/banshee-data/pointgeom/internal/testutil"
	"github.com/banshee-data/pointgeom/internal/version"
)

// Config holds the benchmark configuration.
type Config struct {
	Points     int
	K          int
	KMin       int
	KStep      int
	KMinSearch int
	Workers    int
	Seed       int64
	Verbose    bool
}

func parseFlags() Config {
	var cfg Config
	flag.IntVar(&cfg.Points, "points", 20000, "Number of synthetic points")
	flag.IntVar(&cfg.K, "k", 50, "Neighbors per point in the generated neighbor list")
	flag.IntVar(&cfg.KMin, "k-min", 1, "Minimum neighbors required to compute features")
	flag.IntVar(&cfg.KStep, "k-step", 5, "Neighborhood search stride for the search run")
	flag.IntVar(&cfg.KMinSearch, "k-min-search", 10, "Smallest searched neighborhood size")
	flag.IntVar(&cfg.Workers, "workers", 0, "Worker count (0 = all CPUs)")
	flag.Int64Var(&cfg.Seed, "seed", 1, "RNG seed for the synthetic cloud")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable extractor progress logging")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	log.Printf("[GeomBench] version=%s sha=%s cpus=%d points=%d k=%d",
		version.Version, version.GitSHA, runtime.NumCPU(), cfg.Points, cfg.K)

	rng := rand.New(rand.NewSource(cfg.Seed))
	coords := testutil.BallCloud(cfg.Points, 50.0, rng)

	// Exact k-NN is quadratic; it is the fixture, not the benchmark.
	knnStart := time.Now()
	nn := testutil.BruteForceKNN(coords, cfg.K)
	log.Printf("[GeomBench] neighbor lists built in %s", time.Since(knnStart).Round(time.Millisecond))

	if err := nn.Validate(cfg.Points, len(coords)); err != nil {
		log.Fatalf("[GeomBench] generated neighbor list invalid: %v", err)
	}

	runs := []struct {
		name   string
		params geom.Params
	}{
		{
			name: "no-search",
			params: geom.Params{
				KMin:    cfg.KMin,
				KStep:   0,
				Workers: cfg.Workers,
				Verbose: cfg.Verbose,
			},
		},
		{
			name: "search",
			params: geom.Params{
				KMin:       cfg.KMin,
				KStep:      cfg.KStep,
				KMinSearch: cfg.KMinSearch,
				Workers:    cfg.Workers,
				Verbose:    cfg.Verbose,
			},
		},
	}

	dst := make([]float32, geom.FeatureCount*cfg.Points)
	fmt.Printf("%-12s %12s %16s\n", "run", "elapsed", "points/sec")
	for _, run := range runs {
		start := time.Now()
		geom.ComputeFeaturesInto(dst, coords, nn, run.params)
		elapsed := time.Since(start)
		rate := float64(cfg.Points) / elapsed.Seconds()
		fmt.Printf("%-12s %12s %16.0f\n", run.name, elapsed.Round(time.Microsecond), rate)
	}
}
