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
	"fmt"
	"strconv"
)

func (c *Client) writeN(prefix byte, n int) error {
	c.scratch = append(c.scratch[:0], prefix)
	c.scratch = strconv.AppendInt(c.scratch, int64(n), 10)
	c.scratch = append(c.scratch, delim...)
	_, err := c.bw.Write(c.scratch)
	return err
}

func (c *Client) writeString(s string) error {
	if err := c.writeN('$', len(s)); err != nil {
		return err
	}
	if _, err := c.bw.WriteString(s); err != nil {
		return err
	}
	_, err := c.bw.Write(delim)
	return err
}

func (c *Client) writeBytes(p []byte) error {
	if err := c.writeN('$', len(p)); err != nil {
		return err
	}
	if _, err := c.bw.Write(p); err != nil {
		return err
	}
	_, err := c.bw.Write(delim)
	return err
}

func (c *Client) writeInt64(n int64) error {
	return c.writeBytes(strconv.AppendInt(nil, n, 10))
}

// writeCommand encodes one command as a RESP array of bulk strings into the
// client's write buffer. It does not flush.
func (c *Client) writeCommand(cmd Command) error {
	if err := c.writeN('*', len(cmd.args)); err != nil {
		return err
	}
	for _, arg := range cmd.args {
		var err error
		switch arg := arg.(type) {
		case string:
			err = c.writeString(arg)
		case []byte:
			err = c.writeBytes(arg)
		case int:
			err = c.writeInt64(int64(arg))
		case int64:
			err = c.writeInt64(arg)
		case nil:
			err = c.writeString("")
		default:
			var buf bytes.Buffer
			fmt.Fprint(&buf, arg)
			err = c.writeBytes(buf.Bytes())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
