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
	"time"

	"golang.org/x/term"
)

// progress renders a single overwriting status line on the diagnostic
// stream. The line is rewritten with a carriage return, so it is padded over
// a longer previous line and clamped to the terminal width when one is known
// (a wrapped line can no longer be overwritten).
type progress struct {
	w       io.Writer
	width   int // 0 means unknown, no clamping
	prevLen int
	printed bool
}

func newProgress(w io.Writer, width int) *progress {
	return &progress{w: w, width: width}
}

// estimate returns the completion percentage and the remaining time after
// completed of total iterations, given the summed time of those iterations.
// The average divides by completed+1 so the first estimate is zero rather
// than undefined.
func estimate(completed, total int, elapsed time.Duration) (percent float64, remaining time.Duration) {
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}
	avg := elapsed / time.Duration(completed+1)
	remaining = avg * time.Duration(total-completed)
	return percent, remaining
}

// formatRemaining renders d as whole minutes from one minute up, whole
// seconds below.
func formatRemaining(d time.Duration) string {
	if d >= time.Minute {
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return fmt.Sprintf("%d seconds", int(d/time.Second))
}

func (p *progress) update(completed, total int, elapsed time.Duration) {
	percent, remaining := estimate(completed, total, elapsed)
	p.render(fmt.Sprintf("Progress: %.2f%% - Remaining: %s", percent, formatRemaining(remaining)))
}

func (p *progress) render(line string) {
	if p.width > 0 && len(line) >= p.width {
		line = line[:p.width-1]
	}
	pad := p.prevLen - len(line)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(p.w, "\r%s%s", line, strings.Repeat(" ", pad))
	p.prevLen = len(line)
	p.printed = true
}

// interrupt ends the current status line so a multi-line report can follow.
func (p *progress) interrupt() {
	if p.printed {
		fmt.Fprintln(p.w)
		p.printed = false
		p.prevLen = 0
	}
}

// finish writes the final status line and terminates it.
func (p *progress) finish() {
	p.render("Progress: 100.00% - Remaining: 0.00s")
	fmt.Fprintln(p.w)
	p.printed = false
	p.prevLen = 0
}

// terminalWidth returns the column count of w when it is a terminal, 0 otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	cols, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return cols
}
