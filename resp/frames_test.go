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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// chunkReader returns its chunks one Read at a time, regardless of the size
// of the destination buffer, imitating a transport that splits data at
// arbitrary boundaries.
type chunkReader struct {
	chunks [][]byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	chunk := r.chunks[0]
	n := copy(p, chunk)
	if n < len(chunk) {
		r.chunks[0] = chunk[n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func chunked(chunks ...string) *chunkReader {
	r := &chunkReader{}
	for _, c := range chunks {
		r.chunks = append(r.chunks, []byte(c))
	}
	return r
}

var frameTests = []struct {
	name   string
	chunks []string
	frames []string
}{
	{
		"single chunk",
		[]string{"+OK\r\n:123\r\n"},
		[]string{"+OK", ":123"},
	},
	{
		"frame split across chunks",
		[]string{"+O", "K\r", "\n:12", "3\r\n"},
		[]string{"+OK", ":123"},
	},
	{
		"delimiter split across chunks",
		[]string{"+OK\r", "\n"},
		[]string{"+OK"},
	},
	{
		"coalesced frames",
		[]string{"$3\r\nfoo\r\n$3\r\nbar\r\n"},
		[]string{"$3", "foo", "$3", "bar"},
	},
	{
		"empty frame",
		[]string{"$0\r\n\r\n"},
		[]string{"$0", ""},
	},
	{
		"partial tail discarded at end of stream",
		[]string{"+OK\r\n+PAR"},
		[]string{"+OK"},
	},
	{
		// The scanner is delimiter-driven: a bulk payload containing CRLF
		// is split into two frames instead of one. The decoder is written
		// against this behavior.
		"payload containing delimiter is mis-split",
		[]string{"$8\r\nab\r\ncd\r\n"},
		[]string{"$8", "ab", "cd"},
	},
}

func TestFrameScanner(t *testing.T) {
	for _, tt := range frameTests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFrameScanner(chunked(tt.chunks...), 0)
			for _, want := range tt.frames {
				frame, err := fs.next()
				require.NoError(t, err)
				require.Equal(t, want, string(frame))
			}
			_, err := fs.next()
			require.Equal(t, io.EOF, err)
		})
	}
}

func TestFrameScannerSmallReadSize(t *testing.T) {
	fs := newFrameScanner(strings.NewReader("+a longer frame than the chunk\r\n"), 3)
	frame, err := fs.next()
	require.NoError(t, err)
	require.Equal(t, "+a longer frame than the chunk", string(frame))
}

func TestFrameScannerErrorSticks(t *testing.T) {
	fs := newFrameScanner(chunked("+OK\r\n"), 0)
	_, err := fs.next()
	require.NoError(t, err)
	_, err = fs.next()
	require.Equal(t, io.EOF, err)
	_, err = fs.next()
	require.Equal(t, io.EOF, err)
}
