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

package sorting

import "fmt"

// BucketCapacity is the number of distinct values CountingSort can count.
// The counters live in a fixed array on the stack so a sort never allocates.
const BucketCapacity = 32

// CapacityError reports a value range that does not fit in the counters.
type CapacityError struct {
	Lo, Hi int
}

func (e *CapacityError) Error() string {
	if e.Hi < e.Lo {
		return fmt.Sprintf("counting sort: empty value range [%d, %d]", e.Lo, e.Hi)
	}
	return fmt.Sprintf("counting sort: value range [%d, %d] needs %d buckets, capacity is %d",
		e.Lo, e.Hi, e.Hi-e.Lo+1, BucketCapacity)
}

// RangeError reports an element outside the range CountingSort was given.
type RangeError struct {
	Index, Value, Lo, Hi int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("counting sort: element %d at index %d is outside [%d, %d]",
		e.Value, e.Index, e.Lo, e.Hi)
}

// CheckBuckets returns a *CapacityError unless [lo, hi] is non-empty and
// holds at most BucketCapacity distinct values.
func CheckBuckets(lo, hi int) error {
	if hi < lo || uint(hi-lo) >= BucketCapacity {
		return &CapacityError{Lo: lo, Hi: hi}
	}
	return nil
}

// CountingSort sorts a ascending in place in Θ(n + k) time, where every
// element must lie in [lo, hi] and k = hi-lo+1 <= BucketCapacity.
//
// Both conditions are preconditions, not input validation: a range that
// does not fit panics with a *CapacityError before a is touched, and an
// element outside [lo, hi] panics with a *RangeError.
func CountingSort(a []int, lo, hi int) {
	if err := CheckBuckets(lo, hi); err != nil {
		panic(err)
	}
	n := hi - lo + 1

	var counters [BucketCapacity]int
	for i, v := range a {
		off := v - lo
		if off < 0 || off >= n {
			panic(&RangeError{Index: i, Value: v, Lo: lo, Hi: hi})
		}
		counters[off]++
	}

	w := 0
	for b := 0; b < n; b++ {
		v := b + lo
		for c := counters[b]; c > 0; c-- {
			a[w] = v
			w++
		}
	}
}
