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
	"strings"
)

// Settings is an ordered list of human-readable configuration knobs, printed
// once at startup so a captured stderr shows what a result was measured with.
type Settings struct {
	names  []string
	values map[string]string
}

func NewSettings() *Settings {
	return &Settings{values: make(map[string]string)}
}

// Set records value under name. Re-setting a name keeps its original position.
func (s *Settings) Set(name, value string) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

func (s *Settings) SetInt(name string, v int)       { s.Set(name, fmt.Sprintf("%d", v)) }
func (s *Settings) SetUint64(name string, v uint64) { s.Set(name, fmt.Sprintf("%d", v)) }
func (s *Settings) SetBool(name string, b bool)     { s.Set(name, fmt.Sprintf("%t", b)) }

// Get returns the value recorded for name.
func (s *Settings) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Len returns the number of recorded settings.
func (s *Settings) Len() int { return len(s.names) }

// Fprint writes the settings as a "Configuration:" block, one tab-indented
// line per knob with the names padded by dots to a common width.
func (s *Settings) Fprint(w io.Writer) {
	width := 0
	for _, n := range s.names {
		if len(n) > width {
			width = len(n)
		}
	}
	fmt.Fprintln(w, "Configuration:")
	for _, n := range s.names {
		fmt.Fprintf(w, "\t%s%s: %s\n", n, strings.Repeat(".", width-len(n)), s.values[n])
	}
	fmt.Fprintln(w)
}
