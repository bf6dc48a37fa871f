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

import "errors"

// ServerError represents an error reply returned by the server, either the
// single-frame "-" form or the two-frame "!" blob form. A ServerError rejects
// only the operation that triggered it; the connection stays synchronized and
// subsequent operations proceed normally.
type ServerError string

func (err ServerError) Error() string { return string(err) }

// ProtocolError is returned when the server sends a frame the decoder cannot
// make sense of, such as a non-numeric aggregate count.
type ProtocolError struct {
	message string
}

func (err *ProtocolError) Error() string { return err.message }

var (
	// ErrNoReply is returned when the stream ends while a reply is still
	// expected. The connection position can no longer be trusted past this
	// point and callers should treat it as fatal.
	ErrNoReply = errors.New("respio: no reply received")

	// ErrClosed is returned by operations submitted after Close.
	ErrClosed = errors.New("respio: client closed")

	// ErrNull is returned by the reply helpers when the reply is a RESP
	// null and a concrete value was required.
	ErrNull = errors.New("respio: null reply")
)
