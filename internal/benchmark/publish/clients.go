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
	"fmt"
	"io"
	"os"

	redis "github.com/redis/go-redis/v9"
)

// LoggingRedisClient is a tiny demo client that just logs the PUBLISH call.
// It lets the CLI select the Redis publisher without a running server.
// Not for production use.
type LoggingRedisClient struct {
	W io.Writer // defaults to os.Stderr; stdout is reserved for results
}

func (l LoggingRedisClient) Publish(ctx context.Context, channel string, payload []byte) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	w := l.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "[redis-demo] PUBLISH %s %s\n", channel, payload)
	return 0, nil
}

// GoRedisClient implements RedisPublishClient on top of
// github.com/redis/go-redis/v9. Construct it with NewGoRedisClient.
type GoRedisClient struct{ c *redis.Client }

// NewGoRedisClient connects lazily to addr, e.g. "127.0.0.1:6379".
func NewGoRedisClient(addr string) *GoRedisClient {
	return &GoRedisClient{c: redis.NewClient(&redis.Options{Addr: addr})}
}

func (g *GoRedisClient) Publish(ctx context.Context, channel string, payload []byte) (int64, error) {
	return g.c.Publish(ctx, channel, payload).Result()
}

// Subscribe returns a subscription to channel, e.g. for a listener that
// collects results published by several benchmark processes.
func (g *GoRedisClient) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return g.c.Subscribe(ctx, channel)
}

// Close releases the underlying connection pool.
func (g *GoRedisClient) Close() error { return g.c.Close() }
