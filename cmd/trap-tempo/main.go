// trap-tempo solves the maximal inescapable trap (and, unless disabled, the
// tempo trap inside it) for a named scenario and prints their sizes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/profile"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/herohde/ichess/internal/buchi"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/herohde/ichess/internal/trap"
)

var version = build.NewVersion(0, 1, 0)

var (
	noTempo    = flag.Bool("no-tempo", false, "skip the tempo-trap (Büchi) solve")
	cpuProfile = flag.String("cpu-profile", "", "write a pprof CPU profile to this directory")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `trap-tempo %v

Usage: trap-tempo [options] <scenario>

Available scenarios:
  - %s

Options:
`, version, strings.Join(scenarios.Names(), "\n  - "))
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile)).Stop()
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	name := flag.Arg(0)

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
	trapResult, err := trap.Compute(ctx, s, tracker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Trap solve failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scenario: %s\n", s.Name)
	fmt.Printf("  pieces: %v\n", s.Rules.Layout.Kinds())
	fmt.Printf("  trap: %d\n", len(trapResult.Trap))

	if !*noTempo {
		tempoResult, err := buchi.Compute(ctx, s, trapResult.Trap, tracker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Tempo solve failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  tempo: %d\n", len(tempoResult.Trap))
	}

	logw.Debugf(ctx, "trap-tempo done: scenario=%s", name)
}
