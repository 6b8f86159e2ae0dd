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

package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sortbench/internal/benchmark/core"
)

// RedisPublishClient abstracts the minimal surface we need from a Redis client.
// GoRedisClient wraps github.com/redis/go-redis/v9; tests use a fake.
type RedisPublishClient interface {
	Publish(ctx context.Context, channel string, payload []byte) (receivers int64, err error)
}

// RedisPublisher sends every result as a JSON message on one pub/sub channel.
type RedisPublisher struct {
	client  RedisPublishClient
	channel string
	timeout time.Duration
	now     func() time.Time
}

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "sortbench:results"

// NewRedisPublisher returns a publisher on channel (DefaultChannel if empty).
func NewRedisPublisher(client RedisPublishClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel, timeout: 5 * time.Second, now: time.Now}
}

// Channel returns the channel results are published on.
func (p *RedisPublisher) Channel() string { return p.channel }

// Publish sends r. A context without deadline gets the publisher's default
// timeout so a dead server cannot hang the end of a run.
func (p *RedisPublisher) Publish(ctx context.Context, r core.Result) error {
	if ctx == nil {
		return errors.New("publish: nil context")
	}
	if _, ok := ctx.Deadline(); !ok && p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	payload, err := Encode(r, p.now())
	if err != nil {
		return err
	}
	if _, err := p.client.Publish(ctx, p.channel, payload); err != nil {
		return fmt.Errorf("redis publish channel=%s size=%d: %w", p.channel, r.Size, err)
	}
	return nil
}
