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
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// FailureMessage is written to stdout instead of a Result when no iteration
// completed.
const FailureMessage = "Couldn't evaluate average times."

// Result holds the mean time of every sort, in seconds, over the completed
// iterations. Iterations echoes the configured count; Completed is the number
// the means were actually computed over and is lower after an early stop.
type Result struct {
	Size          int     `json:"size"`
	Iterations    int     `json:"iterations"`
	SelectionSort float64 `json:"selection-sort"`
	CountingSort  float64 `json:"counting-sort"`
	QuickSort     float64 `json:"quick-sort"`

	Completed     int     `json:"-"`
	IterationTime float64 `json:"-"` // mean wall time of a whole iteration
}

// OK reports whether at least one iteration completed.
func (r Result) OK() bool { return r.Completed > 0 }

// WriteJSON writes r as a single JSON line.
func (r Result) WriteJSON(w io.Writer) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// sample is the timing of one iteration.
type sample struct {
	selection time.Duration
	counting  time.Duration
	reference time.Duration
	iteration time.Duration
}

// totals accumulates samples of completed iterations.
type totals struct {
	sample
	n int
}

func (t *totals) add(s sample) {
	t.selection += s.selection
	t.counting += s.counting
	t.reference += s.reference
	t.iteration += s.iteration
	t.n++
}

// result divides the running sums by the completed iteration count.
func (t *totals) result(cfg Config) Result {
	r := Result{Size: cfg.Size, Iterations: cfg.Iterations, Completed: t.n}
	if t.n == 0 {
		return r
	}
	n := float64(t.n)
	r.SelectionSort = t.selection.Seconds() / n
	r.CountingSort = t.counting.Seconds() / n
	r.QuickSort = t.reference.Seconds() / n
	r.IterationTime = t.iteration.Seconds() / n
	return r
}
