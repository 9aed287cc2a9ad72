// vcbench stresses connection sets the way a parallel search does: each worker forks the
// shared connection set, then repeatedly descends a few plies adding, removing and processing
// random connections, and backtracks to where it started.
//
// It checks that every backtrack restores the worker's set exactly, and reports throughput.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/hexGo/internal/generics"
	"github.com/janpfeifer/hexGo/internal/parameters"
	"github.com/janpfeifer/hexGo/internal/profilers"
	"github.com/janpfeifer/hexGo/internal/state"
	"github.com/janpfeifer/hexGo/internal/ui/cli"
	"github.com/janpfeifer/hexGo/internal/ui/spinning"
	"github.com/janpfeifer/hexGo/internal/vc"
	"github.com/janpfeifer/hexGo/internal/vc/vctest"
	"github.com/janpfeifer/hexGo/internal/vcset"
)

var (
	flagBoard   = flag.String("board", "11x11", "Board dimensions, as <width>x<height>.")
	flagConfig  = flag.String("config", "", "Connection set configuration, e.g.: \"full_limit=25,semi_limit=50\".")
	flagWorkers = flag.Int("workers", 0, "Number of parallel workers. If <= 0 use GOMAXPROCS.")
	flagIters   = flag.Int("iterations", 1000, "Number of descend/backtrack iterations per worker.")
	flagDepth   = flag.Int("depth", 6, "Number of plies (checkpoints) per iteration.")
	flagOps     = flag.Int("ops_per_ply", 50, "Number of random mutations per ply.")
	flagSeedVCs = flag.Int("seed_vcs", 5000, "Number of random connections added to the shared set before forking.")
	flagCarrier = flag.Int("max_carrier", 8, "Maximum carrier size of the random connections.")
	flagSeed    = flag.Uint64("seed", 42, "Random seed.")
	flagPrint   = flag.Bool("print", false, "Print the best North-South connection of the shared set.")
	flagColor   = flag.Bool("color", true, "Use colors when printing.")
	flagMetrics = flag.Int("metrics_port", -1, "If >= 0, serve Prometheus metrics on the given port.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server, CPU and memory profiles.
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	board := must.M1(parseBoard(*flagBoard))
	metrics := must.M1(setupMetrics())
	base := must.M1(createBaseSet(board, metrics))
	if *flagPrint {
		printBest(base)
	}

	spinner := spinning.New(globalCtx, fmt.Sprintf("Running %d workers on %s board", getParallelism(), board))
	results, err := runWorkers(globalCtx, base)
	spinner.Done()
	must.M(err)
	printResults(board, results)
}

// parseBoard parses dimensions given as "<width>x<height>", or a single number for square boards.
func parseBoard(dims string) (*state.Board, error) {
	widthStr, heightStr, found := strings.Cut(strings.ToLower(dims), "x")
	if !found {
		heightStr = widthStr
	}
	width, err := strconv.Atoi(widthStr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid -board=%q", dims)
	}
	height, err := strconv.Atoi(heightStr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid -board=%q", dims)
	}
	return state.NewBoard(width, height)
}

// setupMetrics creates the connection set metrics, and serves them if -metrics_port was given.
func setupMetrics() (*vcset.Metrics, error) {
	reg := prometheus.NewRegistry()
	metrics, err := vcset.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	if *flagMetrics >= 0 {
		addr := fmt.Sprintf("localhost:%d", *flagMetrics)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		fmt.Printf("Serving metrics on http://%s/metrics\n", addr)
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				klog.Errorf("Metrics server failed: %v", err)
			}
		}()
	}
	return metrics, nil
}

// createBaseSet creates the set shared (read-only) by all workers, filled with random connections.
func createBaseSet(board *state.Board, metrics *vcset.Metrics) (*vcset.VCSet, error) {
	params := parameters.NewFromConfigString(*flagConfig)
	base, err := vcset.NewFromParams(board, state.Black, params)
	if err != nil {
		return nil, err
	}
	if err = parameters.CheckAllConsumed(params); err != nil {
		return nil, errors.WithMessagef(err, "invalid -config=%q", *flagConfig)
	}
	base.WithMetrics(metrics)
	gen := vctest.NewGenerator(board, *flagSeed, *flagCarrier)
	for range *flagSeedVCs {
		base.Add(gen.Random(), nil)
	}
	if klog.V(1).Enabled() {
		klog.Infof("Base set: %d full and %d semi connections on %s board",
			base.Count(vc.Full), base.Count(vc.Semi), board)
	}
	return base, nil
}

func printBest(set *vcset.VCSet) {
	board := set.Board()
	ui := cli.New(*flagColor)
	list := set.List(state.North, state.South, vc.Full)
	best, found := list.Best()
	if !found {
		list = set.List(state.North, state.South, vc.Semi)
		best, found = list.Best()
	}
	if !found {
		fmt.Println("No connection between North and South.")
		return
	}
	fmt.Println()
	ui.PrintBoard(state.NewStoneBoard(board), best.Carrier())
	fmt.Println()
	ui.PrintList(board, list, 10)
	fmt.Println()
}

func printResults(board *state.Board, results *Results) {
	elapsed := results.elapsed.Seconds()
	keys := []string{"board", "workers", "iterations", "mutations", "reverted entries", "mutations/s", "elapsed"}
	values := generics.SliceMap([]any{
		board, results.workers, results.iterations, results.mutations, results.revertedEntries,
		fmt.Sprintf("%.0f", float64(results.mutations)/elapsed), results.elapsed.Round(time.Millisecond),
	}, func(v any) string { return fmt.Sprint(v) })
	fmt.Println()
	cli.New(*flagColor).PrintSummary("vcbench", keys, values)
	if globalCtx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", globalCtx.Err())
	}
}
