// Package harness drives an ordered set with random values and compares
// every answer against a reference set, validating tree invariants as it goes.
package harness

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/AlexWan0/go-veb/internal/orderedset"
)

// Config controls a randomized check run.
type Config struct {
	Universe int
	Rounds   int
	// OpsPerRound random operations are applied between full sweeps.
	OpsPerRound int
	Seed        uint64
	// SweepLimit caps the number of values compared in a full sweep;
	// larger universes are sampled instead.
	SweepLimit int
	// Subject is the set under test, by default a lazy VEBTree.
	Subject orderedset.Factory
}

// DefaultConfig returns the settings used by the check command.
func DefaultConfig() Config {
	return Config{
		Universe:    1 << 10,
		Rounds:      8,
		OpsPerRound: 2000,
		Seed:        1,
		SweepLimit:  1 << 16,
		Subject:     orderedset.NewVEB,
	}
}

// Report summarizes a successful run.
type Report struct {
	Subject  string
	Universe int
	Ops      int
	Checks   int
	Final    int
}

// MismatchError reports an answer that differs from the reference.
type MismatchError struct {
	Subject string
	Op      string
	Value   int
	Got     string
	Want    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s(%d) = %s, want %s", e.Subject, e.Op, e.Value, e.Got, e.Want)
}

// validator is implemented by sets that can check their own structure.
type validator interface {
	Validate() error
}

type checker struct {
	cfg     Config
	log     *slog.Logger
	rng     *rand.Rand
	subject orderedset.OrderedSet
	ref     orderedset.OrderedSet
	report  Report
}

// Run executes the randomized check described by cfg.
// It stops at the first mismatch or invariant violation.
func Run(cfg Config, log *slog.Logger) (*Report, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Subject == nil {
		cfg.Subject = orderedset.NewVEB
	}
	if cfg.Rounds <= 0 || cfg.OpsPerRound < 0 {
		return nil, fmt.Errorf("invalid rounds %d / ops %d", cfg.Rounds, cfg.OpsPerRound)
	}
	c := &checker{
		cfg:     cfg,
		log:     log,
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		subject: cfg.Subject(cfg.Universe),
		ref:     orderedset.NewBTree(cfg.Universe),
	}
	c.report.Subject = c.subject.Name()
	c.report.Universe = c.subject.Universe()
	if c.subject.Universe() != c.ref.Universe() {
		return nil, fmt.Errorf("subject universe %d differs from reference %d", c.subject.Universe(), c.ref.Universe())
	}

	if err := c.checkInvalid(); err != nil {
		return nil, err
	}
	for round := 0; round < cfg.Rounds; round++ {
		for i := 0; i < cfg.OpsPerRound; i++ {
			if err := c.step(); err != nil {
				return nil, err
			}
		}
		if err := c.sweep(); err != nil {
			return nil, err
		}
		c.log.Debug("round passed", "round", round, "size", c.ref.Len())
	}
	if err := c.drain(); err != nil {
		return nil, err
	}
	c.report.Final = c.subject.Len()
	c.log.Info("check passed", "subject", c.report.Subject, "universe", c.report.Universe, "ops", c.report.Ops, "checks", c.report.Checks)
	return &c.report, nil
}

func (c *checker) mismatch(op string, v int, got, want interface{}) error {
	return &MismatchError{Subject: c.subject.Name(), Op: op, Value: v, Got: fmt.Sprint(got), Want: fmt.Sprint(want)}
}

// checkInvalid makes sure out of range values are refused and change nothing.
func (c *checker) checkInvalid() error {
	u := c.subject.Universe()
	for i := 0; i < 64; i++ {
		v := -1 - c.rng.IntN(u)
		if i%2 == 1 {
			v = u + c.rng.IntN(u)
		}
		if c.subject.Insert(v) {
			return c.mismatch("insert", v, true, false)
		}
		if c.subject.Contains(v) {
			return c.mismatch("contains", v, true, false)
		}
		if c.subject.Remove(v) {
			return c.mismatch("remove", v, true, false)
		}
		c.report.Checks += 3
	}
	if n := c.subject.Len(); n != 0 {
		return c.mismatch("len", -1, n, 0)
	}
	return nil
}

func (c *checker) step() error {
	v := c.rng.IntN(c.subject.Universe())
	c.report.Ops++
	switch op := c.rng.IntN(10); {
	case op < 5:
		if !c.subject.Insert(v) {
			return c.mismatch("insert", v, false, true)
		}
		c.ref.Insert(v)
	case op < 8:
		want := c.ref.Remove(v)
		if got := c.subject.Remove(v); got != want {
			return c.mismatch("remove", v, got, want)
		}
		if c.subject.Contains(v) {
			return c.mismatch("contains after remove", v, true, false)
		}
	default:
		if err := c.compare(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) compare(v int) error {
	c.report.Checks += 3
	if got, want := c.subject.Contains(v), c.ref.Contains(v); got != want {
		return c.mismatch("contains", v, got, want)
	}
	if err := c.compareOpt("successor", v, c.subject.Successor, c.ref.Successor); err != nil {
		return err
	}
	return c.compareOpt("predecessor", v, c.subject.Predecessor, c.ref.Predecessor)
}

func (c *checker) compareOpt(op string, v int, got, want func(int) (int, bool)) error {
	gv, gok := got(v)
	wv, wok := want(v)
	if gok != wok || (gok && gv != wv) {
		return c.mismatch(op, v, optString(gv, gok), optString(wv, wok))
	}
	return nil
}

func optString(v int, ok bool) string {
	if !ok {
		return "none"
	}
	return fmt.Sprint(v)
}

// sweep compares the whole set against the reference.
func (c *checker) sweep() error {
	if vd, ok := c.subject.(validator); ok {
		if err := vd.Validate(); err != nil {
			return fmt.Errorf("%s: %w", c.subject.Name(), err)
		}
	}
	if got, want := c.subject.Len(), c.ref.Len(); got != want {
		return c.mismatch("len", -1, got, want)
	}
	if err := c.compareOpt("min", -1, func(int) (int, bool) { return c.subject.Min() }, func(int) (int, bool) { return c.ref.Min() }); err != nil {
		return err
	}
	if err := c.compareOpt("max", -1, func(int) (int, bool) { return c.subject.Max() }, func(int) (int, bool) { return c.ref.Max() }); err != nil {
		return err
	}
	u := c.subject.Universe()
	if u <= c.cfg.SweepLimit {
		for v := 0; v < u; v++ {
			if err := c.compare(v); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < c.cfg.SweepLimit; i++ {
		if err := c.compare(c.rng.IntN(u)); err != nil {
			return err
		}
	}
	return nil
}

// drain removes every value in ascending order, checking min as it goes.
func (c *checker) drain() error {
	for {
		want, ok := c.ref.Min()
		got, gok := c.subject.Min()
		if ok != gok || (ok && got != want) {
			return c.mismatch("min", -1, optString(got, gok), optString(want, ok))
		}
		if !ok {
			return nil
		}
		if !c.subject.Remove(want) {
			return c.mismatch("remove", want, false, true)
		}
		c.ref.Remove(want)
		c.report.Ops++
	}
}
