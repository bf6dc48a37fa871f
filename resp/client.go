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
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/respio/respio/internal/observability"
)

// Conn is the interface implemented by *Client. It exists so that consumers
// can substitute a stub in tests; see the stubs package.
type Conn interface {
	// Close closes the client and the underlying stream.
	Close() error

	// Err returns the sticky fatal error for this connection, if any.
	Err() error

	// Do sends a command and returns its reply.
	Do(cmd Command) (*Reply, error)

	// DoRaw is Do with bulk and verbatim strings returned as opaque bytes.
	DoRaw(cmd Command) (*Reply, error)

	// Send writes a command without reading a reply.
	Send(cmd Command) error

	// Pipeline writes all commands as one buffer and reads one reply per
	// command, in order.
	Pipeline(cmds []Command) ([]*Reply, error)

	// Replies returns a pull-based stream of decoded replies for push
	// message consumption.
	Replies(raw bool) ReplyReader
}

// Client speaks RESP over a single duplex byte stream. Concurrent operations
// are linearized on an internal FIFO queue: each operation's write and read
// both complete before the next operation's write starts, which is what keeps
// replies matched to their commands when many goroutines share the stream.
//
// A Client never reconnects. After a stream-level failure Err returns the
// fatal error and every subsequent operation fails with it.
type Client struct {
	rw      io.ReadWriteCloser
	bw      *bufio.Writer
	frames  *frameScanner
	scratch []byte

	ops  chan *op
	quit chan struct{} // closed by Close
	done chan struct{} // closed when the dispatcher has drained and exited

	mu     sync.Mutex
	err    error
	closed bool

	log     *zap.Logger
	metrics bool

	// abandoned push pull, redeemed by the next stream pull
	pushMu      sync.Mutex
	pushPending chan streamResult
	pushBusy    bool

	readSize      int
	writeBufSize  int
	queueCapacity int
}

var _ Conn = (*Client)(nil)

type op struct {
	cmds   []Command
	raw    bool
	expect int // replies to decode; 0 for a write-only step
	result chan opResult
}

type opResult struct {
	replies []*Reply
	err     error
}

// New returns a client over the given duplex stream. The client owns the
// stream and closes it on Close.
func New(rw io.ReadWriteCloser, options ...Option) *Client {
	c := &Client{
		rw:            rw,
		quit:          make(chan struct{}),
		done:          make(chan struct{}),
		pushPending:   make(chan streamResult, 1),
		log:           zap.NewNop(),
		readSize:      defaultReadSize,
		writeBufSize:  defaultReadSize,
		queueCapacity: 64,
	}
	for _, option := range options {
		option(c)
	}
	if c.metrics {
		rw = &meteredStream{rw: rw}
	}
	c.bw = bufio.NewWriterSize(rw, c.writeBufSize)
	c.frames = newFrameScanner(rw, c.readSize)
	c.ops = make(chan *op, c.queueCapacity)
	go c.dispatch()
	return c
}

// Dial connects to the server at the given network and address.
func Dial(network, address string, options ...Option) (*Client, error) {
	netConn, err := net.Dial(network, address)
	if err != nil {
		return nil, errors.New("respio: could not connect to server: " + err.Error())
	}
	return New(netConn, options...), nil
}

// DialTimeout acts like Dial but takes a timeout. The timeout includes name
// resolution, if required.
func DialTimeout(network, address string, timeout time.Duration, options ...Option) (*Client, error) {
	netConn, err := net.DialTimeout(network, address, timeout)
	if err != nil {
		return nil, errors.New("respio: could not connect to server: " + err.Error())
	}
	return New(netConn, options...), nil
}

// Close closes the underlying stream and rejects all queued and future
// operations with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.err == nil {
		c.err = ErrClosed
	}
	c.mu.Unlock()
	close(c.quit)
	return c.rw.Close()
}

// Err returns the sticky fatal error for this connection. A server error
// reply is not fatal and is never recorded here.
func (c *Client) Err() error {
	c.mu.Lock()
	err := c.err
	c.mu.Unlock()
	return err
}

func (c *Client) fatal(err error) error {
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
	c.log.Warn("connection failed", zap.Error(err))
	return err
}

// Do sends one command and decodes exactly one reply. Safe for concurrent
// use; calls are served in submission order.
func (c *Client) Do(cmd Command) (*Reply, error) {
	return c.exec([]Command{cmd}, false)
}

// DoRaw is Do with bulk and verbatim string payloads returned as opaque
// bytes instead of text.
func (c *Client) DoRaw(cmd Command) (*Reply, error) {
	return c.exec([]Command{cmd}, true)
}

// DoContext is Do with a caller-imposed deadline. The context races against
// the result only: a cancelled operation is not removed from the queue and
// its reply is still consumed from the stream in order, keeping the
// connection synchronized.
func (c *Client) DoContext(ctx context.Context, cmd Command) (*Reply, error) {
	o, err := c.submit([]Command{cmd}, false, 1)
	if err != nil {
		return nil, err
	}
	select {
	case res := <-o.result:
		return firstReply(res)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return firstReply(c.drained(o))
	}
}

// Send writes one command without decoding any reply. It still occupies a
// slot in the FIFO queue, so it cannot overtake or be overtaken by other
// operations. Used to prime pub/sub subscriptions.
func (c *Client) Send(cmd Command) error {
	o, err := c.submit([]Command{cmd}, false, 0)
	if err != nil {
		return err
	}
	return c.wait(o).err
}

// Pipeline writes all commands as one concatenated buffer and then decodes
// exactly len(cmds) replies in command order. The whole batch occupies a
// single queue slot and is never interleaved with other operations.
//
// A server error reply rejects only its own slot: the remaining replies are
// still consumed and returned, and the first server error is returned as the
// error value with a nil in the corresponding position.
func (c *Client) Pipeline(cmds []Command) ([]*Reply, error) {
	return c.pipeline(cmds, false)
}

// PipelineRaw is Pipeline with bulk and verbatim strings returned as opaque
// bytes.
func (c *Client) PipelineRaw(cmds []Command) ([]*Reply, error) {
	return c.pipeline(cmds, true)
}

func (c *Client) pipeline(cmds []Command, raw bool) ([]*Reply, error) {
	if len(cmds) == 0 {
		return nil, nil
	}
	o, err := c.submit(cmds, raw, len(cmds))
	if err != nil {
		return nil, err
	}
	res := c.wait(o)
	return res.replies, res.err
}

func (c *Client) exec(cmds []Command, raw bool) (*Reply, error) {
	o, err := c.submit(cmds, raw, len(cmds))
	if err != nil {
		return nil, err
	}
	return firstReply(c.wait(o))
}

func firstReply(res opResult) (*Reply, error) {
	if res.err != nil {
		return nil, res.err
	}
	return res.replies[0], nil
}

// submit enqueues an operation behind all previously submitted ones.
func (c *Client) submit(cmds []Command, raw bool, expect int) (*op, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.mu.Unlock()
	o := &op{cmds: cmds, raw: raw, expect: expect, result: make(chan opResult, 1)}
	select {
	case c.ops <- o:
		return o, nil
	case <-c.quit:
		return nil, ErrClosed
	}
}

func (c *Client) wait(o *op) opResult {
	select {
	case res := <-o.result:
		return res
	case <-c.done:
		return c.drained(o)
	}
}

// drained resolves an operation after the dispatcher has exited: its result
// may already be buffered, otherwise it was abandoned in the queue.
func (c *Client) drained(o *op) opResult {
	select {
	case res := <-o.result:
		return res
	default:
		return opResult{err: ErrClosed}
	}
}

// dispatch serially executes queued operations. This single consumer is the
// only writer and (outside push streaming) the only reader of the stream,
// which makes the FIFO chain the ordering authority for the connection.
func (c *Client) dispatch() {
	defer close(c.done)
	for {
		select {
		case o := <-c.ops:
			o.result <- c.run(o)
		case <-c.quit:
			for {
				select {
				case o := <-c.ops:
					o.result <- opResult{err: ErrClosed}
				default:
					return
				}
			}
		}
	}
}

// run performs one operation's write and read against the stream.
func (c *Client) run(o *op) opResult {
	if err := c.Err(); err != nil {
		return opResult{err: err}
	}
	for _, cmd := range o.cmds {
		if err := c.writeCommand(cmd); err != nil {
			return opResult{err: c.fatal(err)}
		}
	}
	if err := c.bw.Flush(); err != nil {
		return opResult{err: c.fatal(err)}
	}
	c.log.Debug("commands written", zap.Int("commands", len(o.cmds)), zap.Int("expect", o.expect))
	if c.metrics {
		observability.RecordCommands(len(o.cmds))
	}
	if o.expect == 0 {
		return opResult{}
	}
	replies := make([]*Reply, 0, o.expect)
	var firstErr error
	for i := 0; i < o.expect; i++ {
		r, err := readReply(c.frames, o.raw)
		if err != nil {
			var serverErr ServerError
			if errors.As(err, &serverErr) {
				// The stream is still aligned: the error reply's frames
				// were fully consumed. Reject this slot only.
				if c.metrics {
					observability.RecordServerError()
				}
				if firstErr == nil {
					firstErr = err
				}
				replies = append(replies, nil)
				continue
			}
			return opResult{err: c.fatal(err)}
		}
		if c.metrics {
			observability.RecordReply()
		}
		replies = append(replies, r)
	}
	c.log.Debug("replies decoded", zap.Int("replies", len(replies)), zap.Bool("rejected", firstErr != nil))
	return opResult{replies: replies, err: firstErr}
}

func recordPush(r *Reply) {
	if r != nil && r.Type == TypePush {
		observability.RecordPush()
		return
	}
	observability.RecordReply()
}

// meteredStream counts wire bytes into the observability package.
type meteredStream struct {
	rw io.ReadWriteCloser
}

func (m *meteredStream) Read(p []byte) (int, error) {
	n, err := m.rw.Read(p)
	observability.RecordBytesRead(n)
	return n, err
}

func (m *meteredStream) Write(p []byte) (int, error) {
	n, err := m.rw.Write(p)
	observability.RecordBytesWritten(n)
	return n, err
}

func (m *meteredStream) Close() error { return m.rw.Close() }
