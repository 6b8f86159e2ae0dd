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

// Package core implements the benchmark driver: it generates random arrays,
// times every sort on an identical copy, optionally checks the results
// against the reference sort and averages the timings over the completed
// iterations.
package core

import (
	"errors"
	"fmt"

	"sortbench/pkg/sorting"
)

// Config describes one benchmark run. It is not modified once a Runner has
// been built from it.
type Config struct {
	Size       int // length of every generated array
	Iterations int // number of generate/sort/verify cycles to average over

	// Generated values are drawn uniformly from [MinValue, MaxValue]. The span
	// must fit in sorting.BucketCapacity so the counting sort can run.
	MinValue int
	MaxValue int

	PrintProgress bool // overwrite a progress line on the diagnostic stream
	CheckResults  bool // verify every output against the reference sort

	// Seed for the random stream. 0 picks a time based seed once per run.
	Seed uint64
}

// DefaultConfig returns the legacy defaults: values in [0, 30], a single
// iteration, progress on and verification off.
func DefaultConfig() Config {
	return Config{
		Iterations:    1,
		MinValue:      0,
		MaxValue:      30,
		PrintProgress: true,
	}
}

// Validate reports configuration errors. A value range wider than the
// counting sort capacity is returned as a *sorting.CapacityError.
// Iterations is not checked: zero or less simply yields a run without data.
func (c Config) Validate() error {
	if c.Size < 0 {
		return fmt.Errorf("size must be non-negative, got %d", c.Size)
	}
	if c.MinValue > c.MaxValue {
		return errors.New("min value must not exceed max value")
	}
	if err := sorting.CheckBuckets(c.MinValue, c.MaxValue); err != nil {
		return fmt.Errorf("invalid value range: %w", err)
	}
	return nil
}

// Settings returns the configuration echo printed before a run.
func (c Config) Settings() *Settings {
	s := NewSettings()
	s.SetInt("Minimum value", c.MinValue)
	s.SetInt("Maximum value", c.MaxValue)
	s.SetInt("Array size", c.Size)
	s.SetInt("Iterations", c.Iterations)
	return s
}
