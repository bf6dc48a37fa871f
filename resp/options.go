// Copyright 2012 Gary Burd
//
// Licensed under the Apache License, Version 2.0 (the "License"): you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package resp

import "go.uber.org/zap"

// Option is a function that configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for connection lifecycle events. The
// default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMetrics enables opencensus wire metrics (bytes, commands, replies,
// pushes, server errors). Register MetricViews with a stats exporter to
// collect them.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = true
	}
}

// WithReadSize sets the chunk size used when reading from the stream.
func WithReadSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.readSize = n
		}
	}
}

// WithWriteBufferSize sets the size of the buffered writer in front of the
// stream.
func WithWriteBufferSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.writeBufSize = n
		}
	}
}

// WithQueueCapacity sets how many operations may sit in the dispatch queue
// before submitters block. Ordering is unaffected.
func WithQueueCapacity(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.queueCapacity = n
		}
	}
}
