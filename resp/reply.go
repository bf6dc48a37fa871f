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
	"math/big"
	"strconv"
	"strings"
)

// Type identifies the variant held by a Reply.
type Type int

const (
	TypeSimpleString Type = iota
	TypeBulkString
	TypeVerbatimString
	TypeInteger
	TypeDouble
	TypeBigNumber
	TypeBoolean
	TypeNull
	TypeArray
	TypeMap
	TypeSet
	TypePush
)

var typeNames = map[Type]string{
	TypeSimpleString:   "simple string",
	TypeBulkString:     "bulk string",
	TypeVerbatimString: "verbatim string",
	TypeInteger:        "integer",
	TypeDouble:         "double",
	TypeBigNumber:      "big number",
	TypeBoolean:        "boolean",
	TypeNull:           "null",
	TypeArray:          "array",
	TypeMap:            "map",
	TypeSet:            "set",
	TypePush:           "push",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MapEntry is a single key/value pair of a map reply. Entries preserve wire
// order.
type MapEntry struct {
	Key   *Reply
	Value *Reply
}

// Reply is a decoded RESP reply. Type selects which of the remaining fields
// is meaningful:
//
//	Type                                Field
//	TypeSimpleString                    Str
//	TypeBulkString, TypeVerbatimString  Str, or Bytes when decoded in raw mode
//	TypeInteger                         Int
//	TypeDouble                          Double
//	TypeBigNumber                       Big
//	TypeBoolean                         Bool
//	TypeNull                            none
//	TypeArray, TypePush, TypeSet        Elems
//	TypeMap                             Entries
//
// Push replies decode exactly like arrays and differ only in Type.
type Reply struct {
	Type    Type
	Str     string
	Bytes   []byte
	Int     int64
	Double  float64
	Big     *big.Int
	Bool    bool
	Elems   []*Reply
	Entries []MapEntry
}

// IsNull reports whether the reply is the RESP null, in any of its wire
// spellings ($-1, *-1 or _).
func (r *Reply) IsNull() bool {
	return r == nil || r.Type == TypeNull
}

// Lookup returns the value stored under the given string key in a map reply.
// When the wire carried duplicate keys the last one wins.
func (r *Reply) Lookup(key string) (*Reply, bool) {
	if r == nil || r.Type != TypeMap {
		return nil, false
	}
	for i := len(r.Entries) - 1; i >= 0; i-- {
		if s, ok := keyString(r.Entries[i].Key); ok && s == key {
			return r.Entries[i].Value, true
		}
	}
	return nil, false
}

// keyString extracts the textual form of a reply used as a map key. In
// practice servers only key maps with strings, but integers show up in test
// fixtures.
func keyString(r *Reply) (string, bool) {
	if r == nil {
		return "", false
	}
	switch r.Type {
	case TypeSimpleString, TypeBulkString, TypeVerbatimString:
		if r.Bytes != nil {
			return string(r.Bytes), true
		}
		return r.Str, true
	case TypeInteger:
		return strconv.FormatInt(r.Int, 10), true
	}
	return "", false
}

// canonicalKey renders a reply into a stable textual form. Two replies are
// structurally equal exactly when their canonical keys match; sets use this
// for deduplication and maps for last-write-wins collisions.
func canonicalKey(r *Reply) string {
	var b strings.Builder
	appendCanonical(&b, r)
	return b.String()
}

// appendCanonicalString length-prefixes the payload so that payload bytes can
// never be read as the encoding's own tags or separators.
func appendCanonicalString(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

func appendCanonical(b *strings.Builder, r *Reply) {
	if r == nil {
		b.WriteString("_")
		return
	}
	switch r.Type {
	case TypeSimpleString:
		b.WriteByte('+')
		appendCanonicalString(b, r.Str)
	case TypeBulkString, TypeVerbatimString:
		b.WriteByte('$')
		if r.Bytes != nil {
			b.WriteString(strconv.Itoa(len(r.Bytes)))
			b.WriteByte(':')
			b.Write(r.Bytes)
		} else {
			appendCanonicalString(b, r.Str)
		}
	case TypeInteger:
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(r.Int, 10))
	case TypeDouble:
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(r.Double, 'g', -1, 64))
	case TypeBigNumber:
		b.WriteByte('(')
		if r.Big != nil {
			b.WriteString(r.Big.String())
		}
	case TypeBoolean:
		b.WriteByte('#')
		if r.Bool {
			b.WriteByte('t')
		} else {
			b.WriteByte('f')
		}
	case TypeNull:
		b.WriteByte('_')
	case TypeArray, TypePush, TypeSet:
		b.WriteByte('*')
		b.WriteString(strconv.Itoa(len(r.Elems)))
		for _, e := range r.Elems {
			b.WriteByte(';')
			appendCanonical(b, e)
		}
	case TypeMap:
		b.WriteByte('%')
		b.WriteString(strconv.Itoa(len(r.Entries)))
		for _, e := range r.Entries {
			b.WriteByte(';')
			appendCanonical(b, e.Key)
			b.WriteByte('=')
			appendCanonical(b, e.Value)
		}
	}
}
