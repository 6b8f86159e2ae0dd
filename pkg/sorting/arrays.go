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

// Package sorting holds the three sorting strategies compared by the
// benchmark (selection sort, a small-range counting sort and the platform
// sort) together with the helpers used to check their output.
//
// All sorts work in place on a []int and never allocate.
package sorting

import (
	"fmt"
	"io"
	"strings"
)

// IsSorted reports whether every adjacent pair in a is in ascending order.
// Empty and single-element slices are sorted.
func IsSorted(a []int) bool {
	for i := 0; i+1 < len(a); i++ {
		if a[i] > a[i+1] {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same length and the same values
// at every position.
func Equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Render formats a as a bracketed, comma separated list with every element
// padded to three characters, e.g. "[  3,  17,  30]". Diagnostics only.
func Render(a []int) string {
	var b strings.Builder
	b.Grow(2 + 5*len(a))
	b.WriteByte('[')
	for i, v := range a {
		fmt.Fprintf(&b, "%3d", v)
		if i+1 < len(a) {
			b.WriteString(", ")
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Fprint writes Render(a) followed by a newline.
func Fprint(w io.Writer, a []int) {
	fmt.Fprintln(w, Render(a))
}
