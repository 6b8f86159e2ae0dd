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
	"fmt"
	"io"
)

// Options holds the knobs for building a publisher.
type Options struct {
	RedisAddr    string
	RedisChannel string
}

// Build constructs a Publisher from a string selector:
//   - "" or "none": results are not published (default)
//   - "redis": Redis PUBLISH; uses a logging client when RedisAddr is empty
//
// The returned closer releases client resources and is never nil.
func Build(adapter string, opts Options) (Publisher, io.Closer, error) {
	switch adapter {
	case "", "none":
		return Nop{}, nopCloser{}, nil
	case "redis":
		if opts.RedisAddr == "" {
			return NewRedisPublisher(LoggingRedisClient{}, opts.RedisChannel), nopCloser{}, nil
		}
		c := NewGoRedisClient(opts.RedisAddr)
		return NewRedisPublisher(c, opts.RedisChannel), c, nil
	default:
		return nil, nil, fmt.Errorf("unknown publish adapter: %s", adapter)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
