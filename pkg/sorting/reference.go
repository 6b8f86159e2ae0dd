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

import (
	"cmp"
	"slices"
)

// ReferenceSort sorts a ascending with the standard library sort. It is both
// a benchmark competitor and the oracle the other sorts are checked against.
// Algorithm and stability are whatever the toolchain ships.
func ReferenceSort(a []int) {
	slices.SortFunc(a, cmp.Compare[int])
}

// Names of the benchmarked algorithms, also used as JSON keys and metric labels.
const (
	NameSelection = "selection-sort"
	NameCounting  = "counting-sort"
	NameReference = "quick-sort"
)

// Algorithm pairs a sort with the name it is reported under.
type Algorithm struct {
	Name string
	Sort func(a []int)
}

// Algorithms returns the three competitors in reporting order, with the
// counting sort bound to [lo, hi].
func Algorithms(lo, hi int) []Algorithm {
	return []Algorithm{
		{Name: NameSelection, Sort: SelectionSort},
		{Name: NameCounting, Sort: func(a []int) { CountingSort(a, lo, hi) }},
		{Name: NameReference, Sort: ReferenceSort},
	}
}
