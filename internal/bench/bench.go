// Package bench times batches of ordered set operations across universe sizes.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/AlexWan0/go-veb/internal/orderedset"
)

// Operations timed for every implementation, in run order.
var Operations = []string{"insert", "contains", "successor", "predecessor", "remove"}

// Config controls a benchmark run.
type Config struct {
	// Universes are 1<<MinBits ... 1<<MaxBits.
	MinBits int
	MaxBits int
	// Ops is the batch size per operation.
	Ops   int
	Impls []string
	Seed  uint64
	// MaxEagerBits caps the universe for implementations that allocate
	// their whole universe up front; larger universes skip them.
	// Zero means DefaultMaxEagerBits.
	MaxEagerBits int
}

// DefaultMaxEagerBits keeps an eager tree around a hundred MiB.
const DefaultMaxEagerBits = 20

// maxBits bounds the universe range of a run.
const maxBits = 30

// DefaultConfig returns the settings used by the bench command.
func DefaultConfig() Config {
	return Config{
		MinBits: 2,
		MaxBits: 20,
		Ops:     10000,
		Impls:   orderedset.Names(),
		Seed:    1,

		MaxEagerBits: DefaultMaxEagerBits,
	}
}

// Result is the average latency of one operation batch.
type Result struct {
	Impl     string  `codec:"impl" json:"impl"`
	Universe int     `codec:"universe" json:"universe"`
	Op       string  `codec:"op" json:"op"`
	Ops      int     `codec:"ops" json:"ops"`
	AvgNanos float64 `codec:"avg_ns" json:"avg_ns"`
}

// Runner executes benchmark runs.
type Runner struct {
	Config Config
	Logger *slog.Logger
}

// Run times every operation for every configured implementation and universe.
// It checks ctx between batches.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	cfg := r.Config
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.MinBits < 1 || cfg.MaxBits < cfg.MinBits || cfg.MaxBits > maxBits {
		return nil, fmt.Errorf("invalid universe range 2^%d..2^%d", cfg.MinBits, cfg.MaxBits)
	}
	if cfg.Ops <= 0 {
		return nil, fmt.Errorf("invalid batch size %d", cfg.Ops)
	}
	if cfg.MaxEagerBits < 0 {
		return nil, fmt.Errorf("invalid eager universe cap 2^%d", cfg.MaxEagerBits)
	}
	if cfg.MaxEagerBits == 0 {
		cfg.MaxEagerBits = DefaultMaxEagerBits
	}
	factories := make([]orderedset.Factory, len(cfg.Impls))
	for i, name := range cfg.Impls {
		f, err := orderedset.Lookup(name)
		if err != nil {
			return nil, err
		}
		factories[i] = f
	}

	var results []Result
	for bits := cfg.MinBits; bits <= cfg.MaxBits; bits++ {
		universe := 1 << bits
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(bits)))
		vals := make([]int, cfg.Ops)
		for i := range vals {
			vals[i] = rng.IntN(universe)
		}
		for i, f := range factories {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			if bits > cfg.MaxEagerBits && orderedset.Eager(cfg.Impls[i]) {
				log.Warn("skipping eager set above cap", "impl", cfg.Impls[i], "universe", universe, "max_eager_bits", cfg.MaxEagerBits)
				continue
			}
			start := time.Now()
			set := f(universe)
			log.Debug("built set", "impl", cfg.Impls[i], "universe", universe, "took", time.Since(start))
			batch := timeBatches(set, vals)
			for _, op := range Operations {
				results = append(results, Result{
					Impl:     cfg.Impls[i],
					Universe: universe,
					Op:       op,
					Ops:      len(vals),
					AvgNanos: float64(batch[op].Nanoseconds()) / float64(len(vals)),
				})
			}
			log.Info("benchmarked", "impl", cfg.Impls[i], "universe", universe,
				"insert_ns", results[len(results)-len(Operations)].AvgNanos)
		}
	}
	return results, nil
}

// timeBatches runs every operation over vals once and returns the total time per operation.
// Removal runs last so the queries see the filled set.
func timeBatches(set orderedset.OrderedSet, vals []int) map[string]time.Duration {
	took := make(map[string]time.Duration, len(Operations))
	start := time.Now()
	for _, v := range vals {
		set.Insert(v)
	}
	took["insert"] = time.Since(start)

	start = time.Now()
	for _, v := range vals {
		set.Contains(v)
	}
	took["contains"] = time.Since(start)

	start = time.Now()
	for _, v := range vals {
		set.Successor(v)
	}
	took["successor"] = time.Since(start)

	start = time.Now()
	for _, v := range vals {
		set.Predecessor(v)
	}
	took["predecessor"] = time.Since(start)

	start = time.Now()
	for _, v := range vals {
		set.Remove(v)
	}
	took["remove"] = time.Since(start)
	return took
}
