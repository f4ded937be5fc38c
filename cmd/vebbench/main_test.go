package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexWan0/go-veb/internal/bench"
	. "github.com/smartystreets/goconvey/convey"
)

// runApp runs the command line in args and returns what it wrote.
func runApp(args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"vebbench", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestLogging(t *testing.T) {
	Convey("Unknown logging settings fail before any command runs", t, func() {
		var out bytes.Buffer
		app := newApp()
		app.Writer = &out
		app.ErrWriter = &out

		err := app.Run([]string{"vebbench", "--log-level", "loud", "dump", "1"})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "loud")
		So(out.String(), ShouldNotContainSubstring, "u=")

		app = newApp()
		app.Writer = &out
		app.ErrWriter = &out
		err = app.Run([]string{"vebbench", "--log-format", "xml", "dump", "1"})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "xml")
	})

	Convey("Known logging settings are accepted", t, func() {
		for _, args := range [][]string{
			{"vebbench", "--log-level", "debug", "--log-format", "json", "dump", "1"},
			{"vebbench", "--log-level", "WARN", "dump", "1"},
		} {
			app := newApp()
			app.Writer = &bytes.Buffer{}
			So(app.Run(args), ShouldBeNil)
		}
	})
}

func TestDump(t *testing.T) {
	Convey("dump prints the layout of the inserted values", t, func() {
		out, err := runApp("dump", "--universe", "8", "5", "1", "7")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "u=8 min=1 max=7")
		So(out, ShouldContainSubstring, "summary")

		Convey("and the flat form lists top level clusters", func() {
			out, err := runApp("dump", "--universe", "8", "--flat", "5", "1", "7")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "u: 8")
			So(out, ShouldContainSubstring, "Cluster no.0")
		})
	})

	Convey("dump skips values outside the universe", t, func() {
		out, err := runApp("dump", "--universe", "4", "3", "9")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "u=4 min=3 max=3")
	})

	Convey("dump rejects values that are not integers", t, func() {
		_, err := runApp("dump", "--universe", "8", "5", "seven")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "seven")
	})
}

func TestCheck(t *testing.T) {
	Convey("check reports a passing run", t, func() {
		out, err := runApp("check", "--universe", "16", "--rounds", "1", "--ops", "50", "--impl", "veb-eager")
		So(err, ShouldBeNil)
		So(out, ShouldStartWith, "veb-eager over 16:")
		So(out, ShouldContainSubstring, "checks passed")
	})

	Convey("check rejects unknown implementations", t, func() {
		_, err := runApp("check", "--impl", "skiplist")
		So(err, ShouldNotBeNil)
	})
}

func TestBench(t *testing.T) {
	Convey("bench prints a table without an output file", t, func() {
		out, err := runApp("bench", "--min-bits", "2", "--max-bits", "2", "--ops", "10", "--impl", "veb")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "impl")
		So(out, ShouldContainSubstring, "successor")
	})

	Convey("bench writes results to a file", t, func() {
		path := filepath.Join(t.TempDir(), "results.msgpack")
		_, err := runApp("bench", "--min-bits", "2", "--max-bits", "3", "--ops", "10",
			"--max-eager-bits", "2", "--out", path, "--format", "msgpack")
		So(err, ShouldBeNil)

		f, err := os.Open(path)
		So(err, ShouldBeNil)
		defer f.Close()
		results, err := bench.ReadResults(f, "msgpack")
		So(err, ShouldBeNil)
		// veb-eager only runs at 2^2.
		So(results, ShouldHaveLength, (2*4+1)*len(bench.Operations))
	})

	Convey("bench rejects an oversized universe range", t, func() {
		_, err := runApp("bench", "--max-bits", "31")
		So(err, ShouldNotBeNil)
	})
}
