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
	"bytes"
	"io"
)

var delim = []byte{'\r', '\n'}

const defaultReadSize = 4096

// frameScanner splits the raw byte stream into CRLF-delimited frames. The
// transport may split or coalesce data arbitrarily; any residual bytes after
// the last complete delimiter in a read are buffered and rescanned together
// with the next read.
//
// The scanner is delimiter-driven only. A bulk payload that itself contains
// CRLF is mis-split, because the declared payload length is never used to
// skip ahead before resuming the delimiter scan. The decoder is written
// against this framing and existing wire fixtures depend on it.
type frameScanner struct {
	r     io.Reader
	buf   []byte // residual bytes not yet emitted as frames
	chunk []byte
	err   error
}

func newFrameScanner(r io.Reader, size int) *frameScanner {
	if size <= 0 {
		size = defaultReadSize
	}
	return &frameScanner{r: r, chunk: make([]byte, size)}
}

// next returns the next frame, delimiter excluded, reading more chunks from
// the stream as needed. The returned slice is only valid until the following
// call. When the stream ends a partial trailing frame is discarded and the
// stream's error is returned.
func (fs *frameScanner) next() ([]byte, error) {
	for {
		if i := bytes.Index(fs.buf, delim); i >= 0 {
			frame := fs.buf[:i]
			fs.buf = fs.buf[i+2:]
			return frame, nil
		}
		if fs.err != nil {
			return nil, fs.err
		}
		n, err := fs.r.Read(fs.chunk)
		if n > 0 {
			fs.buf = append(fs.buf, fs.chunk[:n]...)
		}
		if err != nil {
			fs.err = err
		}
	}
}
