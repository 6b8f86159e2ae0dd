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

package core

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"sortbench/pkg/sorting"
)

// Clock supplies the time marks used to measure every sort. Time values
// carrying a monotonic reading make the measurements immune to wall clock
// changes.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Observer receives every measurement as it is taken. Implementations must
// be cheap: they run between timed regions of the benchmark loop.
type Observer interface {
	ObserveSort(algorithm string, d time.Duration)
	ObserveIteration(d time.Duration)
	ObserveVerificationFailure(algorithm string)
}

type nopObserver struct{}

func (nopObserver) ObserveSort(string, time.Duration) {}
func (nopObserver) ObserveIteration(time.Duration)    {}
func (nopObserver) ObserveVerificationFailure(string) {}

// Sorters are the sorts under test. Reference doubles as the oracle.
type Sorters struct {
	Selection func(a []int)
	Counting  func(a []int)
	Reference func(a []int)
}

// DefaultSorters returns the real algorithms with the counting sort bound
// to [lo, hi].
func DefaultSorters(lo, hi int) Sorters {
	var s Sorters
	for _, alg := range sorting.Algorithms(lo, hi) {
		switch alg.Name {
		case sorting.NameSelection:
			s.Selection = alg.Sort
		case sorting.NameCounting:
			s.Counting = alg.Sort
		case sorting.NameReference:
			s.Reference = alg.Sort
		}
	}
	return s
}

// Options configures a Runner. Zero values select the defaults.
type Options struct {
	Clock    Clock     // defaults to the system clock
	Diag     io.Writer // progress and failure reports; defaults to os.Stderr
	Observer Observer  // defaults to a no-op
	Sorters  *Sorters  // defaults to DefaultSorters(cfg.MinValue, cfg.MaxValue)

	// Width clamps the progress line. Negative disables clamping, 0 asks
	// the terminal behind Diag.
	Width int
}

// Runner executes one benchmark run. It is single-threaded and not safe for
// concurrent use.
type Runner struct {
	cfg      Config
	clock    Clock
	diag     io.Writer
	observer Observer
	sorters  Sorters
	rnd      *rand.Rand
	progress *progress
}

// NewRunner prepares a run of cfg, which must have passed Validate. The
// random stream is seeded here, once.
func NewRunner(cfg Config, opts Options) *Runner {
	r := &Runner{cfg: cfg, clock: opts.Clock, diag: opts.Diag, observer: opts.Observer}
	if r.clock == nil {
		r.clock = systemClock{}
	}
	if r.diag == nil {
		r.diag = os.Stderr
	}
	if r.observer == nil {
		r.observer = nopObserver{}
	}
	if opts.Sorters != nil {
		r.sorters = *opts.Sorters
	} else {
		r.sorters = DefaultSorters(cfg.MinValue, cfg.MaxValue)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	width := opts.Width
	switch {
	case width < 0:
		width = 0
	case width == 0:
		width = terminalWidth(r.diag)
	}
	r.progress = newProgress(r.diag, width)
	return r
}

// Run executes the configured iterations and returns the averaged result.
// A verification failure stops the loop early; the result then covers only
// the iterations completed before it.
func (r *Runner) Run() Result {
	cfg := r.cfg
	n := cfg.Size

	// One allocation for the whole run: the input and one working copy per
	// algorithm.
	mem := make([]int, 4*n)
	in := mem[0*n : 1*n : 1*n]
	sel := mem[1*n : 2*n : 2*n]
	cnt := mem[2*n : 3*n : 3*n]
	ref := mem[3*n : 4*n : 4*n]

	var tot totals
	for tot.n < cfg.Iterations {
		begin := r.clock.Now()
		if cfg.PrintProgress {
			r.progress.update(tot.n, cfg.Iterations, tot.iteration)
		}

		r.generate(in, sel, cnt, ref)

		var s sample
		s.selection = r.measure(sorting.NameSelection, r.sorters.Selection, sel)
		s.counting = r.measure(sorting.NameCounting, r.sorters.Counting, cnt)
		s.reference = r.measure(sorting.NameReference, r.sorters.Reference, ref)

		if cfg.CheckResults && !r.verify(in, sel, cnt, ref) {
			break
		}

		s.iteration = r.clock.Now().Sub(begin)
		r.observer.ObserveIteration(s.iteration)
		tot.add(s)
	}
	if cfg.PrintProgress {
		r.progress.finish()
	}
	return tot.result(cfg)
}

// generate fills every buffer with the same freshly drawn values.
func (r *Runner) generate(in, sel, cnt, ref []int) {
	lo := r.cfg.MinValue
	span := r.cfg.MaxValue - lo + 1
	for i := range in {
		v := lo + r.rnd.IntN(span)
		in[i] = v
		sel[i] = v
		cnt[i] = v
		ref[i] = v
	}
}

func (r *Runner) measure(name string, sort func([]int), a []int) time.Duration {
	begin := r.clock.Now()
	sort(a)
	d := r.clock.Now().Sub(begin)
	r.observer.ObserveSort(name, d)
	return d
}

// verify checks the oracle first, then both other sorts against it. A
// mismatch is reported on the diagnostic stream.
func (r *Runner) verify(in, sel, cnt, ref []int) bool {
	switch {
	case !sorting.IsSorted(ref):
		r.reportFailure(sorting.NameReference, in, ref, nil)
	case !sorting.Equal(sel, ref):
		r.reportFailure(sorting.NameSelection, in, sel, ref)
	case !sorting.Equal(cnt, ref):
		r.reportFailure(sorting.NameCounting, in, cnt, ref)
	default:
		return true
	}
	return false
}

func (r *Runner) reportFailure(name string, in, out, expected []int) {
	r.observer.ObserveVerificationFailure(name)
	r.progress.interrupt()
	fmt.Fprintf(r.diag, "%s failed:\n", name)
	fmt.Fprint(r.diag, "\tInput...: ")
	sorting.Fprint(r.diag, in)
	fmt.Fprint(r.diag, "\tOutput..: ")
	sorting.Fprint(r.diag, out)
	if expected != nil {
		fmt.Fprint(r.diag, "\tExpected: ")
		sorting.Fprint(r.diag, expected)
	}
}
