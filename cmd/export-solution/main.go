// export-solution solves a named scenario and writes its bundle (manifest
// plus dense binary tables) to an output directory for play-solution to
// consume.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/seekerror/build"

	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/herohde/ichess/internal/solution"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `export-solution %v

Usage: export-solution <scenario> <out_dir> [--force] [--no-tempo] [--view-bound N]

Available scenarios:
  - %s
`, version, strings.Join(scenarios.Names(), "\n  - "))
	}
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}
	name, outDir, rest := args[0], args[1], args[2:]

	opts := solution.ExportOptions{ComputeTempo: true}
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--force":
			opts.Force = true
		case "--no-tempo":
			opts.ComputeTempo = false
		case "--view-bound":
			if i+1 >= len(rest) {
				fmt.Fprintln(os.Stderr, "--view-bound requires an integer argument")
				os.Exit(2)
			}
			i++
			v, err := strconv.ParseInt(rest[i], 10, 32)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid --view-bound %s: %v\n", rest[i], err)
				os.Exit(2)
			}
			opts.ViewBound = lang.Some(int32(v))
		default:
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n", rest[i])
			os.Exit(2)
		}
	}

	s, ok, err := scenarios.ByName(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scenario %s: %v\n", name, err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown scenario: %s\n\nAvailable scenarios:\n  - %s\n", name, strings.Join(scenarios.Names(), "\n  - "))
		os.Exit(2)
	}
	if err := s.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid scenario %s: %v\n", name, err)
		os.Exit(2)
	}

	tracker := resources.New(s.Limits)
	bundle, err := solution.Export(ctx, s, outDir, opts, tracker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported solution bundle to %s\n", outDir)
	fmt.Printf("  states: %d, trap: %d, tempo: %d\n", bundle.Manifest.Counts.States, bundle.Manifest.Counts.Trap, bundle.Manifest.Counts.Tempo)
}
