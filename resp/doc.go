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

// Package resp is a client implementation of the RESP2/RESP3 wire protocol
// used by Redis and Redis-compatible servers.
//
// The package frames commands onto a duplex byte stream, decodes the typed
// replies the server sends back, and keeps replies matched to the commands
// that produced them even when many goroutines share one connection. It is
// command agnostic: GET, HSET and FT.SEARCH all travel through the same
// encoder and decoder.
//
// Connections
//
// A Client is created over any io.ReadWriteCloser with New, or over a TCP
// connection with the Dial and DialTimeout conveniences. One Client owns one
// stream for its whole lifetime; it never reconnects. The application must
// call Close when it is done with the client.
//
// Executing Commands
//
// Commands are built with NewCommand and executed with Do:
//
//	reply, err := c.Do(resp.NewCommand("SET", "foo", "bar"))
//
// Arguments of type string and []byte are sent to the server as is. Integer
// kinds are rendered as decimal text. The value nil is converted to "". All
// other values are converted to a string using the fmt.Fprint function.
//
// Replies are returned as *Reply, a tagged union over every RESP2 and RESP3
// reply type. Server error replies are returned as a ServerError, leaving the
// connection usable for subsequent commands. The helper functions Int,
// String, Bytes and friends convert a (*Reply, error) pair to common Go
// types.
//
// RESP3 is enabled by sending HELLO through the ordinary Do path; the decoder
// handles both protocol versions without a mode switch.
//
// Pipelining
//
// Pipeline writes a batch of commands as a single buffer and then decodes
// exactly one reply per command, in order:
//
//	replies, err := c.Pipeline([]resp.Command{
//		resp.NewCommand("INCR", "x"),
//		resp.NewCommand("INCR", "x"),
//	})
//
// A batch occupies one slot in the client's dispatch queue, so its commands
// are never interleaved with commands from other goroutines.
//
// Publish and Subscribe
//
// Send writes a command without reading a reply, and Replies returns a pull
// based stream of decoded replies. Together they implement the subscriber
// side of pub/sub:
//
//	c.Send(resp.NewCommand("SUBSCRIBE", "events"))
//	replies := c.Replies(false)
//	for {
//		reply, err := replies.Next()
//		// consume pushed message
//	}
//
// The PubSubConn type wraps this pattern with typed Subscription, Message and
// Pong notifications.
//
// Concurrency
//
// Do, Send and Pipeline are safe for concurrent use: the client serializes
// them on an internal FIFO queue so that each operation's write and read
// complete before the next operation touches the stream. Replies bypasses the
// queue and must not be pulled concurrently with Do or Pipeline on the same
// client; this mirrors the server's rule that a subscribed connection only
// carries push traffic.
//
// Timeouts and retries are deliberately left to the caller. DoContext races a
// context against the result but does not cancel the underlying I/O; the
// operation still consumes its queue slot in order.
package resp
