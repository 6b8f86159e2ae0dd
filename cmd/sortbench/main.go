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

// Package main is the sortbench command: it measures selection sort,
// counting sort and the standard library sort on random integer arrays and
// prints the mean time of each as one JSON line.
//
// Usage:
//
//	sortbench [flags] SIZE [ITERATIONS]
//
// SIZE is the length of every generated array, ITERATIONS (default 1) the
// number of runs the timings are averaged over. Like the C atoi they mimic,
// malformed numbers silently become 0. Flags must precede SIZE.
//
// Diagnostics (configuration echo, progress, verification failures) go to
// stderr; stdout only ever receives the JSON result or a failure sentence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"sortbench/internal/benchmark/core"
	"sortbench/internal/benchmark/publish"
	"sortbench/internal/benchmark/telemetry"
	"sortbench/pkg/sorting"
)

const (
	exitOK     = 0
	exitNoData = 1 // no iteration completed, including a missing SIZE
	exitConfig = 2 // flags or value range rejected before the run
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	def := core.DefaultConfig()
	fs := flag.NewFlagSet("sortbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: sortbench [flags] SIZE [ITERATIONS]")
		fs.PrintDefaults()
	}
	minValue := fs.Int("min_value", def.MinValue, "Smallest generated value")
	maxValue := fs.Int("max_value", def.MaxValue, fmt.Sprintf("Largest generated value; max_value-min_value+1 must not exceed %d", sorting.BucketCapacity))
	printProgress := fs.Bool("progress", def.PrintProgress, "Print an overwriting progress line to stderr")
	checkResults := fs.Bool("check", def.CheckResults, "Verify every sort against the standard library sort; stops at the first mismatch")
	seed := fs.Uint64("seed", 0, "Random seed for reproducible input; 0 seeds from the clock")
	// Telemetry (opt-in)
	metricsAddr := fs.String("metrics_addr", "", "If non-empty, expose Prometheus /metrics on this address (e.g., :9090)")
	pushURL := fs.String("metrics_push", "", "If non-empty, push metrics to this Pushgateway URL when the run ends")
	pushJob := fs.String("metrics_job", "sortbench", "Pushgateway job name")
	// Result broadcast (opt-in)
	publishAdapter := fs.String("publish", "none", "Broadcast the result: none|redis")
	redisAddr := fs.String("redis_addr", "", "Redis address for -publish=redis; empty logs the PUBLISH to stderr instead")
	redisChannel := fs.String("redis_channel", publish.DefaultChannel, "Redis channel for -publish=redis")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitConfig
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Missing array size!")
		fs.Usage()
		return exitNoData
	}
	cfg := def
	cfg.Size = atoi(fs.Arg(0))
	if fs.NArg() > 1 {
		cfg.Iterations = atoi(fs.Arg(1))
	}
	if fs.NArg() > 2 {
		// flag stops parsing at the first positional argument.
		fmt.Fprintf(stderr, "Warning: ignoring extra arguments %q; flags must come before SIZE\n", fs.Args()[2:])
	}
	cfg.MinValue, cfg.MaxValue = *minValue, *maxValue
	cfg.PrintProgress = *printProgress
	cfg.CheckResults = *checkResults
	cfg.Seed = *seed

	if err := cfg.Validate(); err != nil {
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
		Job:         *pushJob,
	})

	settings := cfg.Settings()
	if *checkResults {
		settings.SetBool("Check results", true)
	}
	if *seed != 0 {
		settings.SetUint64("Seed", *seed)
	}
	settings.Fprint(stderr)

	res := core.NewRunner(cfg, core.Options{Diag: stderr, Observer: telemetry.Observer{}}).Run()
	telemetry.RecordResult(res)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := telemetry.Push(ctx); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}

	if !res.OK() {
		fmt.Fprintln(stdout, core.FailureMessage)
		return exitNoData
	}
	if err := pub.Publish(ctx, res); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
	if err := res.WriteJSON(stdout); err != nil {
		fmt.Fprintf(stderr, "Could not write result: %v\n", err)
		return exitNoData
	}
	return exitOK
}

// atoi parses the leading decimal integer of s the way C atoi does: leading
// blanks and one sign are accepted, parsing stops at the first non-digit and
// anything unparseable yields 0.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || (s[i] >= '\t' && s[i] <= '\r')) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	const limit = int(^uint(0) >> 1)
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int(s[i] - '0')
		if n > (limit-d)/10 {
			n = limit
			break
		}
		n = n*10 + d
	}
	if neg {
		return -n
	}
	return n
}
