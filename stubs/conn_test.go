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

package stubs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/respio/respio/resp"
	"github.com/respio/respio/stubs"
)

func TestStubDefaultsToNotImplemented(t *testing.T) {
	var c stubs.Conn

	require.Equal(t, stubs.ErrNotImplemented, c.Close())
	require.Equal(t, stubs.ErrNotImplemented, c.Err())
	require.Equal(t, stubs.ErrNotImplemented, c.Send(resp.NewCommand("PING")))

	_, err := c.Do(resp.NewCommand("PING"))
	require.Equal(t, stubs.ErrNotImplemented, err)
	_, err = c.DoRaw(resp.NewCommand("PING"))
	require.Equal(t, stubs.ErrNotImplemented, err)
	_, err = c.Pipeline([]resp.Command{resp.NewCommand("PING")})
	require.Equal(t, stubs.ErrNotImplemented, err)
	_, err = c.Replies(false).Next()
	require.Equal(t, stubs.ErrNotImplemented, err)
}

func TestStubCallbacks(t *testing.T) {
	want := &resp.Reply{Type: resp.TypeSimpleString, Str: "PONG"}
	c := &stubs.Conn{
		OnDo: func(cmd resp.Command) (*resp.Reply, error) {
			require.Equal(t, "PING", cmd.Name())
			return want, nil
		},
		OnReplies: func(raw bool) resp.ReplyReader {
			return stubs.ReaderFunc(func() (*resp.Reply, error) {
				return want, nil
			})
		},
	}

	got, err := c.Do(resp.NewCommand("PING"))
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = c.Replies(false).Next()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// The stub satisfies the resp.Conn interface, so higher-level wrappers like
// PubSubConn run against it unchanged.
func TestStubWithPubSub(t *testing.T) {
	push := &resp.Reply{Type: resp.TypePush, Elems: []*resp.Reply{
		{Type: resp.TypeBulkString, Str: "message"},
		{Type: resp.TypeBulkString, Str: "ch"},
		{Type: resp.TypeBulkString, Str: "hi"},
	}}
	c := &stubs.Conn{
		OnSend: func(cmd resp.Command) error { return nil },
		OnReplies: func(raw bool) resp.ReplyReader {
			return stubs.ReaderFunc(func() (*resp.Reply, error) {
				return push, nil
			})
		},
	}

	psc := resp.PubSubConn{Conn: c}
	require.NoError(t, psc.Subscribe("ch"))
	require.Equal(t, resp.Message{Channel: "ch", Data: []byte("hi")}, psc.Receive())
}
