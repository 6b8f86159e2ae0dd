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

// SelectionSort sorts a ascending in place.
//
// The slice is split into a sorted prefix a[:i] and an unsorted suffix a[i:].
// Every step moves the smallest element of the suffix to position i, so the
// full suffix is scanned each time: Θ(n²) comparisons on any input.
func SelectionSort(a []int) {
	for i := range a {
		m := i + lowestIndex(a[i:])
		a[i], a[m] = a[m], a[i]
	}
}

// lowestIndex returns the index of the smallest element of a, preferring the
// earliest one on ties, or -1 when a is empty.
func lowestIndex(a []int) int {
	if len(a) == 0 {
		return -1
	}
	m := 0
	for i := 1; i < len(a); i++ {
		if a[i] < a[m] {
			m = i
		}
	}
	return m
}
