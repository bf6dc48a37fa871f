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
	"fmt"
)

// Subscription represents a subscribe or unsubscribe notification.
type Subscription struct {
	// Kind is "subscribe", "unsubscribe", "psubscribe" or "punsubscribe".
	Kind string

	// The channel that was changed.
	Channel string

	// The current number of subscriptions for the connection.
	Count int
}

// Message represents a message notification.
type Message struct {
	// The originating channel.
	Channel string

	// The matched pattern, if the message was received by a PSubscribe
	// subscription.
	Pattern string

	// The message data.
	Data []byte
}

// Pong represents a PING response on a subscribed connection.
type Pong struct {
	Data string
}

// PubSubConn wraps a Conn with convenience methods for subscribers. The
// subscribe methods write through the connection's ordinary FIFO path; the
// notifications they produce, and published messages, are pulled with
// Receive.
type PubSubConn struct {
	Conn Conn
}

// Close closes the connection.
func (c PubSubConn) Close() error {
	return c.Conn.Close()
}

// Subscribe subscribes the connection to the specified channels.
func (c PubSubConn) Subscribe(channel ...interface{}) error {
	return c.Conn.Send(NewCommand("SUBSCRIBE", channel...))
}

// PSubscribe subscribes the connection to the given patterns.
func (c PubSubConn) PSubscribe(channel ...interface{}) error {
	return c.Conn.Send(NewCommand("PSUBSCRIBE", channel...))
}

// Unsubscribe unsubscribes the connection from the given channels, or from
// all of them if none is given.
func (c PubSubConn) Unsubscribe(channel ...interface{}) error {
	return c.Conn.Send(NewCommand("UNSUBSCRIBE", channel...))
}

// PUnsubscribe unsubscribes the connection from the given patterns, or from
// all of them if none is given.
func (c PubSubConn) PUnsubscribe(channel ...interface{}) error {
	return c.Conn.Send(NewCommand("PUNSUBSCRIBE", channel...))
}

// Ping sends a PING to the server with the given data.
func (c PubSubConn) Ping(data string) error {
	if data == "" {
		return c.Conn.Send(NewCommand("PING"))
	}
	return c.Conn.Send(NewCommand("PING", data))
}

// Receive returns a pushed notification as a Subscription, Message, Pong or
// error. The return value is intended to be used directly in a type switch.
func (c PubSubConn) Receive() interface{} {
	return c.receive(context.Background())
}

// ReceiveContext is Receive racing a context. Cancellation does not consume
// the pending notification; it is returned by a later Receive.
func (c PubSubConn) ReceiveContext(ctx context.Context) interface{} {
	return c.receive(ctx)
}

func (c PubSubConn) receive(ctx context.Context) interface{} {
	reply, err := c.Conn.Replies(true).NextContext(ctx)
	if err != nil {
		return err
	}
	return notification(reply)
}

// notification converts a pushed reply into its typed form. Push and array
// replies are accepted interchangeably since RESP2 delivers notifications as
// plain arrays.
func notification(r *Reply) interface{} {
	// A PING on a subscribed RESP2 connection answers with a plain status
	// reply rather than a push array.
	if r != nil && (r.Type == TypeSimpleString || r.Type == TypeBulkString) {
		s, err := String(r, nil)
		if err != nil {
			return err
		}
		if s == "PONG" {
			return Pong{}
		}
		return Pong{Data: s}
	}
	elems, err := Values(r, nil)
	if err != nil {
		return err
	}
	if len(elems) == 0 {
		return errors.New("respio: empty pub/sub notification")
	}
	kind, err := String(elems[0], nil)
	if err != nil {
		return err
	}
	switch kind {
	case "message":
		if len(elems) < 3 {
			return errors.New("respio: short message notification")
		}
		channel, _ := String(elems[1], nil)
		data, err := Bytes(elems[2], nil)
		if err != nil {
			return err
		}
		return Message{Channel: channel, Data: data}
	case "pmessage":
		if len(elems) < 4 {
			return errors.New("respio: short pmessage notification")
		}
		pattern, _ := String(elems[1], nil)
		channel, _ := String(elems[2], nil)
		data, err := Bytes(elems[3], nil)
		if err != nil {
			return err
		}
		return Message{Channel: channel, Pattern: pattern, Data: data}
	case "subscribe", "unsubscribe", "psubscribe", "punsubscribe":
		if len(elems) < 3 {
			return errors.New("respio: short subscription notification")
		}
		channel, _ := String(elems[1], nil)
		count, err := Int(elems[2], nil)
		if err != nil {
			return err
		}
		return Subscription{Kind: kind, Channel: channel, Count: count}
	case "pong":
		var data string
		if len(elems) > 1 {
			data, _ = String(elems[1], nil)
		}
		return Pong{Data: data}
	}
	return fmt.Errorf("respio: unexpected notification kind %q", kind)
}
