// Tool to time and check the vEB tree against other ordered integer sets.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	_ "github.com/joho/godotenv/autoload"
	_ "go.uber.org/automaxprocs"

	veb "github.com/AlexWan0/go-veb"
	"github.com/AlexWan0/go-veb/internal/bench"
	"github.com/AlexWan0/go-veb/internal/harness"
	"github.com/AlexWan0/go-veb/internal/orderedset"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return newApp().Run(args)
}

func newApp() *cli.App {
	app := &cli.App{
		Name:    "vebbench",
		Usage:   "benchmark and check the van Emde Boas tree",
		Version: versioninfo.Short(),
		Before:  setupLogging,
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: debug, info, warn, error)",
			Value:   "info",
			EnvVars: []string{"VEBBENCH_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "log output format: text or json",
			Value:   "text",
			EnvVars: []string{"VEBBENCH_LOG_FORMAT"},
		},
	}
	app.Commands = []*cli.Command{
		&cli.Command{
			Name:   "bench",
			Usage:  "time every operation across universe sizes",
			Action: runBench,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "min-bits",
					Usage:   "smallest universe is 2^min-bits",
					Value:   2,
					EnvVars: []string{"VEBBENCH_MIN_BITS"},
				},
				&cli.IntFlag{
					Name:    "max-bits",
					Usage:   "largest universe is 2^max-bits",
					Value:   20,
					EnvVars: []string{"VEBBENCH_MAX_BITS"},
				},
				&cli.IntFlag{
					Name:    "ops",
					Aliases: []string{"n"},
					Usage:   "operations per timed batch",
					Value:   10000,
					EnvVars: []string{"VEBBENCH_OPS"},
				},
				&cli.StringSliceFlag{
					Name:    "impl",
					Usage:   "ordered set implementations to time (" + strings.Join(orderedset.Names(), ", ") + ")",
					Value:   cli.NewStringSlice(orderedset.Names()...),
					EnvVars: []string{"VEBBENCH_IMPL"},
				},
				&cli.IntFlag{
					Name:    "max-eager-bits",
					Usage:   "skip veb-eager above universe 2^max-eager-bits",
					Value:   bench.DefaultMaxEagerBits,
					EnvVars: []string{"VEBBENCH_MAX_EAGER_BITS"},
				},
				&cli.Uint64Flag{
					Name:  "seed",
					Usage: "random seed for generated values",
					Value: 1,
				},
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "file path for results; empty prints a table to stdout",
					EnvVars: []string{"VEBBENCH_OUT"},
				},
				&cli.StringFlag{
					Name:  "format",
					Usage: "result file format: json or msgpack",
					Value: "json",
				},
			},
		},
		&cli.Command{
			Name:   "check",
			Usage:  "drive an ordered set with random values and compare against a btree",
			Action: runCheck,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "universe",
					Usage: "universe size (rounded up to a power of two)",
					Value: 1 << 10,
				},
				&cli.IntFlag{
					Name:  "rounds",
					Usage: "number of rounds, each followed by a full comparison",
					Value: 8,
				},
				&cli.IntFlag{
					Name:  "ops",
					Usage: "random operations per round",
					Value: 2000,
				},
				&cli.Uint64Flag{
					Name:  "seed",
					Usage: "random seed",
					Value: 1,
				},
				&cli.StringFlag{
					Name:  "impl",
					Usage: "ordered set implementation under test (" + strings.Join(orderedset.Names(), ", ") + ")",
					Value: "veb",
				},
			},
		},
		&cli.Command{
			Name:      "dump",
			Usage:     "insert values into a tree and print its layout",
			ArgsUsage: "<value>...",
			Action:    runDump,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "universe",
					Usage: "universe size (rounded up to a power of two)",
					Value: 16,
				},
				&cli.BoolFlag{
					Name:  "eager",
					Usage: "allocate every cluster up front",
				},
				&cli.BoolFlag{
					Name:  "flat",
					Usage: "print only the top level clusters",
				},
			},
		},
	}
	return app
}

func setupLogging(cctx *cli.Context) error {
	var hopts slog.HandlerOptions
	switch strings.ToLower(cctx.String("log-level")) {
	case "debug":
		hopts.Level = slog.LevelDebug
	case "info", "":
		hopts.Level = slog.LevelInfo
	case "warn":
		hopts.Level = slog.LevelWarn
	case "error":
		hopts.Level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %#v", cctx.String("log-level"))
	}
	var handler slog.Handler
	switch cctx.String("log-format") {
	case "text", "":
		handler = slog.NewTextHandler(os.Stderr, &hopts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, &hopts)
	default:
		return fmt.Errorf("unknown log format: %#v", cctx.String("log-format"))
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func runBench(cctx *cli.Context) error {
	cfg := bench.DefaultConfig()
	cfg.MinBits = cctx.Int("min-bits")
	cfg.MaxBits = cctx.Int("max-bits")
	cfg.Ops = cctx.Int("ops")
	cfg.Impls = cctx.StringSlice("impl")
	cfg.Seed = cctx.Uint64("seed")
	cfg.MaxEagerBits = cctx.Int("max-eager-bits")

	runner := &bench.Runner{Config: cfg, Logger: slog.Default().With("cmd", "bench")}
	results, err := runner.Run(cctx.Context)
	if err != nil {
		return err
	}
	if out := cctx.String("out"); out != "" {
		if err := bench.WriteFile(out, cctx.String("format"), results); err != nil {
			return err
		}
		slog.Info("wrote results", "path", out, "count", len(results))
		return nil
	}
	tw := tabwriter.NewWriter(cctx.App.Writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "impl\tuniverse\top\tavg ns")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.1f\n", res.Impl, res.Universe, res.Op, res.AvgNanos)
	}
	return tw.Flush()
}

func runCheck(cctx *cli.Context) error {
	f, err := orderedset.Lookup(cctx.String("impl"))
	if err != nil {
		return err
	}
	cfg := harness.DefaultConfig()
	cfg.Universe = cctx.Int("universe")
	cfg.Rounds = cctx.Int("rounds")
	cfg.OpsPerRound = cctx.Int("ops")
	cfg.Seed = cctx.Uint64("seed")
	cfg.Subject = f

	report, err := harness.Run(cfg, slog.Default().With("cmd", "check"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cctx.App.Writer, "%s over %d: %d operations, %d checks passed\n", report.Subject, report.Universe, report.Ops, report.Checks)
	return nil
}

func runDump(cctx *cli.Context) error {
	t := veb.New(cctx.Int("universe"), cctx.Bool("eager"))
	for _, arg := range cctx.Args().Slice() {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("parsing value %q: %w", arg, err)
		}
		if !t.Insert(v) {
			slog.Warn("value outside universe, skipped", "value", v, "universe", t.Universe())
		}
	}
	if cctx.Bool("flat") {
		t.Dump(cctx.App.Writer)
		return nil
	}
	fmt.Fprint(cctx.App.Writer, t.String())
	return nil
}
