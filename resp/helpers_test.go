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
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/respio/respio/resp"
)

func bulk(s string) *resp.Reply {
	return &resp.Reply{Type: resp.TypeBulkString, Str: s}
}

func integer(n int64) *resp.Reply {
	return &resp.Reply{Type: resp.TypeInteger, Int: n}
}

func TestInt(t *testing.T) {
	n, err := resp.Int(integer(42), nil)
	require.NoError(t, err)
	require.Equal(t, 42, n)

	n, err = resp.Int(bulk("-7"), nil)
	require.NoError(t, err)
	require.Equal(t, -7, n)

	_, err = resp.Int(&resp.Reply{Type: resp.TypeNull}, nil)
	require.Equal(t, resp.ErrNull, err)

	_, err = resp.Int(&resp.Reply{Type: resp.TypeArray}, nil)
	require.Error(t, err)

	wantErr := errors.New("upstream")
	_, err = resp.Int(nil, wantErr)
	require.Equal(t, wantErr, err)
}

func TestString(t *testing.T) {
	s, err := resp.String(&resp.Reply{Type: resp.TypeSimpleString, Str: "OK"}, nil)
	require.NoError(t, err)
	require.Equal(t, "OK", s)

	s, err = resp.String(&resp.Reply{Type: resp.TypeBulkString, Bytes: []byte("raw")}, nil)
	require.NoError(t, err)
	require.Equal(t, "raw", s)

	s, err = resp.String(integer(12), nil)
	require.NoError(t, err)
	require.Equal(t, "12", s)

	s, err = resp.String(&resp.Reply{Type: resp.TypeBigNumber, Big: big.NewInt(99)}, nil)
	require.NoError(t, err)
	require.Equal(t, "99", s)

	_, err = resp.String(&resp.Reply{Type: resp.TypeNull}, nil)
	require.Equal(t, resp.ErrNull, err)
}

func TestBytes(t *testing.T) {
	p, err := resp.Bytes(&resp.Reply{Type: resp.TypeBulkString, Bytes: []byte{1, 2}}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, p)

	p, err = resp.Bytes(bulk("text"), nil)
	require.NoError(t, err)
	require.Equal(t, []byte("text"), p)

	_, err = resp.Bytes(&resp.Reply{Type: resp.TypeNull}, nil)
	require.Equal(t, resp.ErrNull, err)
}

func TestBool(t *testing.T) {
	b, err := resp.Bool(&resp.Reply{Type: resp.TypeBoolean, Bool: true}, nil)
	require.NoError(t, err)
	require.True(t, b)

	b, err = resp.Bool(integer(0), nil)
	require.NoError(t, err)
	require.False(t, b)

	b, err = resp.Bool(bulk("0"), nil)
	require.NoError(t, err)
	require.False(t, b)

	b, err = resp.Bool(bulk("1"), nil)
	require.NoError(t, err)
	require.True(t, b)
}

func TestFloat64(t *testing.T) {
	f, err := resp.Float64(&resp.Reply{Type: resp.TypeDouble, Double: 0.25}, nil)
	require.NoError(t, err)
	require.Equal(t, 0.25, f)

	f, err = resp.Float64(bulk("3.5"), nil)
	require.NoError(t, err)
	require.Equal(t, 3.5, f)
}

func TestBigInt(t *testing.T) {
	want, _ := new(big.Int).SetString("3492890328409238509324850943850943825024385", 10)
	n, err := resp.BigInt(&resp.Reply{Type: resp.TypeBigNumber, Big: want}, nil)
	require.NoError(t, err)
	require.Equal(t, want, n)

	n, err = resp.BigInt(bulk("123"), nil)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(123), n)
}

func TestValuesAndStrings(t *testing.T) {
	arr := &resp.Reply{Type: resp.TypeArray, Elems: []*resp.Reply{bulk("a"), bulk("b")}}

	elems, err := resp.Values(arr, nil)
	require.NoError(t, err)
	require.Len(t, elems, 2)

	ss, err := resp.Strings(arr, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ss)

	_, err = resp.Values(&resp.Reply{Type: resp.TypeNull}, nil)
	require.Equal(t, resp.ErrNull, err)
}

func TestStringMap(t *testing.T) {
	m, err := resp.StringMap(&resp.Reply{Type: resp.TypeMap, Entries: []resp.MapEntry{
		{Key: bulk("a"), Value: bulk("1")},
		{Key: bulk("b"), Value: bulk("2")},
	}}, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, m)

	// RESP2 servers send field/value pairs as a flat array.
	m, err = resp.StringMap(&resp.Reply{Type: resp.TypeArray, Elems: []*resp.Reply{
		bulk("a"), bulk("1"), bulk("b"), bulk("2"),
	}}, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, m)

	_, err = resp.StringMap(&resp.Reply{Type: resp.TypeArray, Elems: []*resp.Reply{bulk("odd")}}, nil)
	require.Error(t, err)
}

func TestReplyLookup(t *testing.T) {
	m := &resp.Reply{Type: resp.TypeMap, Entries: []resp.MapEntry{
		{Key: bulk("first"), Value: integer(1)},
		{Key: bulk("second"), Value: integer(2)},
	}}

	v, ok := m.Lookup("second")
	require.True(t, ok)
	require.Equal(t, int64(2), v.Int)

	_, ok = m.Lookup("missing")
	require.False(t, ok)

	_, ok = bulk("notamap").Lookup("x")
	require.False(t, ok)
}

func TestIsNull(t *testing.T) {
	require.True(t, (&resp.Reply{Type: resp.TypeNull}).IsNull())
	require.True(t, (*resp.Reply)(nil).IsNull())
	require.False(t, bulk("").IsNull())
}
