// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main is the sortbench-sweep command. It runs the benchmark for a
// range of array sizes (min_size, min_size+step, ... below max_size) with a
// fixed iteration count, reports each result on stderr as it arrives and
// finally writes the collected table as an indented JSON array to stdout.
//
// The table is written however the sweep ends: after the last size, after a
// size that produced no result, or on Ctrl+C (checked between sizes), so an
// interrupted sweep still yields its partial data. A second Ctrl+C aborts
// the size in progress without a table.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sortbench/internal/benchmark/core"
	"sortbench/internal/benchmark/publish"
	"sortbench/internal/benchmark/telemetry"
)

const (
	exitOK     = 0
	exitNoData = 1
	exitConfig = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	releaseOnInterrupt(ctx, stop, os.Stderr)
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// releaseOnInterrupt restores the default signal handling once ctx is
// cancelled, so a second Ctrl+C kills a size that is still running. The
// returned channel is closed after the notice has been written.
func releaseOnInterrupt(ctx context.Context, stop context.CancelFunc, w io.Writer) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		stop()
		fmt.Fprintln(w, "Interrupt received, finishing the current size. Press Ctrl+C again to abort.")
	}()
	return done
}

// sweepConfig holds the sweep-specific knobs; every size shares the rest.
type sweepConfig struct {
	minSize, maxSize, step int
	base                   core.Config
}

// sizes returns the array sizes to benchmark, max excluded.
func (s sweepConfig) sizes() []int {
	var out []int
	for n := s.minSize; n < s.maxSize; n += s.step {
		out = append(out, n)
	}
	return out
}

func (s sweepConfig) validate() error {
	if s.step <= 0 {
		return fmt.Errorf("step must be positive, got %d", s.step)
	}
	if s.minSize < 0 {
		return fmt.Errorf("min_size must be non-negative, got %d", s.minSize)
	}
	return s.base.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	def := core.DefaultConfig()
	fs := flag.NewFlagSet("sortbench-sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	minSize := fs.Int("min_size", 10, "First array size")
	maxSize := fs.Int("max_size", 1_000_000, "Sizes stop below this value")
	step := fs.Int("step", 10, "Size increment between runs")
	iterations := fs.Int("iterations", 100, "Iterations averaged for every size")
	minValue := fs.Int("min_value", def.MinValue, "Smallest generated value")
	maxValue := fs.Int("max_value", def.MaxValue, "Largest generated value")
	checkResults := fs.Bool("check", false, "Verify every sort against the standard library sort")
	seed := fs.Uint64("seed", 0, "Base random seed; size i uses seed+i. 0 seeds from the clock")
	metricsAddr := fs.String("metrics_addr", "", "If non-empty, expose Prometheus /metrics on this address for the whole sweep")
	pushURL := fs.String("metrics_push", "", "If non-empty, push metrics to this Pushgateway URL when the sweep ends")
	publishAdapter := fs.String("publish", "none", "Broadcast every result: none|redis")
	redisAddr := fs.String("redis_addr", "", "Redis address for -publish=redis; empty logs the PUBLISH to stderr instead")
	redisChannel := fs.String("redis_channel", publish.DefaultChannel, "Redis channel for -publish=redis")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitConfig
	}

	sc := sweepConfig{minSize: *minSize, maxSize: *maxSize, step: *step, base: def}
	sc.base.Iterations = *iterations
	sc.base.MinValue, sc.base.MaxValue = *minValue, *maxValue
	sc.base.CheckResults = *checkResults
	sc.base.PrintProgress = false
	if err := sc.validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return exitConfig
	}

	pub, closer, err := publish.Build(*publishAdapter, publish.Options{RedisAddr: *redisAddr, RedisChannel: *redisChannel})
	if err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return exitConfig
	}
	defer closer.Close()

	telemetry.Enable(telemetry.Config{
		Enabled:     *metricsAddr != "" || *pushURL != "",
		MetricsAddr: *metricsAddr,
		PushURL:     *pushURL,
		Job:         "sortbench-sweep",
	})

	table, code := sweep(ctx, sc, *seed, pub, stderr)

	pushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := telemetry.Push(pushCtx); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}

	if err := writeTable(stdout, table); err != nil {
		fmt.Fprintf(stderr, "Could not write table: %v\n", err)
		return exitNoData
	}
	return code
}

// sweep benchmarks every size in turn until done, interrupted or a size
// yields no result.
func sweep(ctx context.Context, sc sweepConfig, seed uint64, pub publish.Publisher, stderr io.Writer) ([]core.Result, int) {
	sizes := sc.sizes()
	table := make([]core.Result, 0, len(sizes))
	for i, n := range sizes {
		if ctx.Err() != nil {
			fmt.Fprintf(stderr, "Interrupted, keeping %d results\n", len(table))
			return table, exitOK
		}
		cfg := sc.base
		cfg.Size = n
		if seed != 0 {
			cfg.Seed = seed + uint64(i)
		}
		res := core.NewRunner(cfg, core.Options{Diag: stderr, Observer: telemetry.Observer{}}).Run()
		telemetry.RecordResult(res)
		if !res.OK() {
			fmt.Fprintf(stderr, "Size %d: %s\n", n, core.FailureMessage)
			return table, exitNoData
		}
		table = append(table, res)
		if err := res.WriteJSON(stderr); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
		if err := pub.Publish(ctx, res); err != nil && ctx.Err() == nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}
	return table, exitOK
}

// writeTable writes the results as an indented JSON array.
func writeTable(w io.Writer, table []core.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(table)
}
