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

import (
	"context"
	"errors"
)

// ReplyReader is a pull-based, forward-only stream of decoded replies. It is
// the consumption side of push/pub-sub traffic: each pull decodes exactly one
// reply, and nothing is buffered ahead of the consumer.
type ReplyReader interface {
	// Next blocks until the next reply has been decoded from the stream.
	Next() (*Reply, error)

	// NextContext is Next racing a context. Cancellation does not stop the
	// underlying read; a reply that completes afterwards is delivered by
	// the following pull instead of being lost.
	NextContext(ctx context.Context) (*Reply, error)
}

// ReplyStream reads replies directly off the connection, bypassing the
// dispatch queue. The caller interleaves Send calls (to subscribe or
// unsubscribe) with pulls, matching the server's push-message semantics on a
// subscribed connection. It must not be pulled concurrently with Do or
// Pipeline on the same client, and only one goroutine may pull at a time.
//
// Streams are cheap and restartable: dropping one and asking the client for
// another continues from the same stream position.
type ReplyStream struct {
	c   *Client
	raw bool
}

var _ ReplyReader = (*ReplyStream)(nil)

// Replies returns a pull-based stream of decoded replies. raw switches bulk
// and verbatim string payloads to opaque bytes.
func (c *Client) Replies(raw bool) ReplyReader {
	return &ReplyStream{c: c, raw: raw}
}

type streamResult struct {
	reply *Reply
	err   error
}

// Next decodes and returns one reply.
func (s *ReplyStream) Next() (*Reply, error) {
	return s.c.nextPush(context.Background(), s.raw)
}

// NextContext decodes one reply unless the context is done first. The
// in-flight decode is not cancelled; its reply is redeemed by the next pull.
func (s *ReplyStream) NextContext(ctx context.Context) (*Reply, error) {
	return s.c.nextPush(ctx, s.raw)
}

// nextPush starts a read off the stream unless an abandoned one is still in
// flight, then waits for its result. pushBusy is cleared only once a result
// has been taken, so an abandoned pull's reply is delivered to the next
// caller instead of being dropped.
func (c *Client) nextPush(ctx context.Context, raw bool) (*Reply, error) {
	c.pushMu.Lock()
	if !c.pushBusy {
		if err := c.Err(); err != nil {
			c.pushMu.Unlock()
			return nil, err
		}
		c.pushBusy = true
		go func() {
			r, err := readReply(c.frames, raw)
			if err != nil && !isServerError(err) {
				c.fatal(err)
			}
			if err == nil && c.metrics {
				recordPush(r)
			}
			c.pushPending <- streamResult{reply: r, err: err}
		}()
	}
	c.pushMu.Unlock()
	select {
	case res := <-c.pushPending:
		c.pushMu.Lock()
		c.pushBusy = false
		c.pushMu.Unlock()
		return res.reply, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func isServerError(err error) bool {
	var serverErr ServerError
	return errors.As(err, &serverErr)
}
