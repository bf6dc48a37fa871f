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

package resp_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/respio/respio/resp"
)

// After priming a subscription with a write-only Send, the first pulled
// reply is the subscribe notification.
func TestSubscribeFirstReply(t *testing.T) {
	c := dialTest(t)

	require.NoError(t, c.Send(resp.NewCommand("SUBSCRIBE", "ch")))
	reply, err := c.Replies(false).Next()
	require.NoError(t, err)

	elems, err := resp.Values(reply, nil)
	require.NoError(t, err)
	require.Len(t, elems, 3)
	kind, err := resp.String(elems[0], nil)
	require.NoError(t, err)
	require.Equal(t, "subscribe", kind)
	channel, err := resp.String(elems[1], nil)
	require.NoError(t, err)
	require.Equal(t, "ch", channel)
	count, err := resp.Int(elems[2], nil)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestPubSubConn(t *testing.T) {
	c := dialTest(t)
	psc := resp.PubSubConn{Conn: c}

	require.NoError(t, psc.Subscribe("c1"))
	require.Equal(t, resp.Subscription{Kind: "subscribe", Channel: "c1", Count: 1}, psc.Receive())
	require.NoError(t, psc.Subscribe("c2"))
	require.Equal(t, resp.Subscription{Kind: "subscribe", Channel: "c2", Count: 2}, psc.Receive())

	require.NoError(t, c.Send(resp.NewCommand("PUBLISHTO", "c1", "hello")))
	require.Equal(t, resp.Message{Channel: "c1", Data: []byte("hello")}, psc.Receive())

	require.NoError(t, psc.Unsubscribe("c1", "c2"))
	require.Equal(t, resp.Subscription{Kind: "unsubscribe", Channel: "c1", Count: 1}, psc.Receive())
	require.Equal(t, resp.Subscription{Kind: "unsubscribe", Channel: "c2", Count: 0}, psc.Receive())

	require.NoError(t, psc.Ping(""))
	require.Equal(t, resp.Pong{}, psc.Receive())
}

func TestPubSubReceiveContext(t *testing.T) {
	c := dialTest(t)
	psc := resp.PubSubConn{Conn: c}

	require.NoError(t, psc.Subscribe("c1"))
	require.Equal(t, resp.Subscription{Kind: "subscribe", Channel: "c1", Count: 1}, psc.Receive())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := psc.ReceiveContext(ctx)
	err, ok := got.(error)
	require.True(t, ok, "expected error, got %T", got)
	require.ErrorIs(t, err, context.Canceled)

	// The cancelled pull did not steal a message: the next publish is
	// still delivered in order.
	require.NoError(t, c.Send(resp.NewCommand("PUBLISHTO", "c1", "later")))
	require.Equal(t, resp.Message{Channel: "c1", Data: []byte("later")}, psc.Receive())
}

func TestSubscriptionReader(t *testing.T) {
	c := dialTest(t)

	r, err := resp.NewSubscriptionReader(c, "events")
	require.NoError(t, err)

	require.NoError(t, c.Send(resp.NewCommand("PUBLISHTO", "events", "payload")))
	buf := make([]byte, 64)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "payload", string(buf[:n]))

	require.NoError(t, c.Send(resp.NewCommand("PUBLISHTO", "events", "oversize")))
	short := make([]byte, 4)
	n, err = r.Read(short)
	require.Equal(t, io.ErrShortBuffer, err)
	require.Equal(t, "over", string(short[:n]))

	require.NoError(t, r.Close())
	_, err = r.Read(buf)
	require.Equal(t, io.ErrClosedPipe, err)
}

func TestNotificationErrors(t *testing.T) {
	c := dialTest(t)
	psc := resp.PubSubConn{Conn: c}

	// A non-notification reply surfaces as an error from Receive.
	require.NoError(t, c.Send(resp.NewCommand("INCR", "n")))
	got := psc.Receive()
	_, ok := got.(error)
	require.True(t, ok, "expected error, got %#v", got)
	require.False(t, errors.Is(got.(error), io.EOF))
}
