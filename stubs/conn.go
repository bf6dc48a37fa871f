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

package stubs

import (
	"context"
	"errors"

	"github.com/respio/respio/resp"
)

// ErrNotImplemented is the default error returned when a method is invoked
// without a stub func defined.
var ErrNotImplemented = errors.New("stub: not implemented")

// Conn is a resp.Conn that helps consumers of respio with testing.
type Conn struct {
	OnClose    func() error
	OnErr      func() error
	OnDo       func(cmd resp.Command) (*resp.Reply, error)
	OnDoRaw    func(cmd resp.Command) (*resp.Reply, error)
	OnSend     func(cmd resp.Command) error
	OnPipeline func(cmds []resp.Command) ([]*resp.Reply, error)
	OnReplies  func(raw bool) resp.ReplyReader
}

var _ resp.Conn = (*Conn)(nil)

// Close conforms to the resp.Conn interface.
func (s *Conn) Close() error {
	if s.OnClose == nil {
		return ErrNotImplemented
	}
	return s.OnClose()
}

// Err conforms to the resp.Conn interface.
func (s *Conn) Err() error {
	if s.OnErr == nil {
		return ErrNotImplemented
	}
	return s.OnErr()
}

// Do conforms to the resp.Conn interface.
func (s *Conn) Do(cmd resp.Command) (*resp.Reply, error) {
	if s.OnDo == nil {
		return nil, ErrNotImplemented
	}
	return s.OnDo(cmd)
}

// DoRaw conforms to the resp.Conn interface.
func (s *Conn) DoRaw(cmd resp.Command) (*resp.Reply, error) {
	if s.OnDoRaw == nil {
		return nil, ErrNotImplemented
	}
	return s.OnDoRaw(cmd)
}

// Send conforms to the resp.Conn interface.
func (s *Conn) Send(cmd resp.Command) error {
	if s.OnSend == nil {
		return ErrNotImplemented
	}
	return s.OnSend(cmd)
}

// Pipeline conforms to the resp.Conn interface.
func (s *Conn) Pipeline(cmds []resp.Command) ([]*resp.Reply, error) {
	if s.OnPipeline == nil {
		return nil, ErrNotImplemented
	}
	return s.OnPipeline(cmds)
}

// Replies conforms to the resp.Conn interface. Without a stub func it
// returns a reader whose pulls fail with ErrNotImplemented.
func (s *Conn) Replies(raw bool) resp.ReplyReader {
	if s.OnReplies == nil {
		return ReaderFunc(func() (*resp.Reply, error) {
			return nil, ErrNotImplemented
		})
	}
	return s.OnReplies(raw)
}

// ReaderFunc adapts an ordinary function to the resp.ReplyReader interface.
// Each pull calls the function once.
type ReaderFunc func() (*resp.Reply, error)

// Next calls f().
func (f ReaderFunc) Next() (*resp.Reply, error) { return f() }

// NextContext calls f(), returning early if the context is already done.
func (f ReaderFunc) NextContext(ctx context.Context) (*resp.Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f()
}
