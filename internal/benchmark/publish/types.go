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

// Package publish broadcasts finished benchmark results to other processes,
// e.g. a dashboard or a sweep coordinator listening on a Redis channel.
//
// Publishing is fire-and-forget: nothing is stored, and a result published
// while nobody listens is simply dropped.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sortbench/internal/benchmark/core"
)

// Publisher delivers one finished result. Implementations must honor ctx
// cancellation.
type Publisher interface {
	Publish(ctx context.Context, r core.Result) error
}

// Message is the serialized payload. It carries the result fields under their
// usual JSON names plus the number of completed iterations and a timestamp.
type Message struct {
	core.Result
	Completed int   `json:"completed"`
	TsUnixMs  int64 `json:"ts_unix_ms"`
}

// Encode builds the JSON payload for r stamped with now.
func Encode(r core.Result, now time.Time) ([]byte, error) {
	b, err := json.Marshal(Message{Result: r, Completed: r.Completed, TsUnixMs: now.UnixMilli()})
	if err != nil {
		return nil, fmt.Errorf("marshal result message: %w", err)
	}
	return b, nil
}

// Nop discards every result.
type Nop struct{}

func (Nop) Publish(ctx context.Context, _ core.Result) error { return ctx.Err() }
