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
	"fmt"
	"math/big"
	"strconv"
)

// Int is a helper that converts a reply to an int.
//
//	Reply type    Result
//	integer       return reply as int
//	double        truncate toward zero
//	bulk          parse decimal integer from reply
//	null          return error ErrNull
//	other         return error
func Int(r *Reply, err error) (int, error) {
	n, err := Int64(r, err)
	return int(n), err
}

// Int64 is a helper that converts a reply to an int64. See Int for the
// conversion rules.
func Int64(r *Reply, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	if r.IsNull() {
		return 0, ErrNull
	}
	switch r.Type {
	case TypeInteger:
		return r.Int, nil
	case TypeDouble:
		return int64(r.Double), nil
	case TypeBigNumber:
		if r.Big.IsInt64() {
			return r.Big.Int64(), nil
		}
	case TypeSimpleString, TypeBulkString, TypeVerbatimString:
		return strconv.ParseInt(text(r), 10, 64)
	}
	return 0, fmt.Errorf("respio: unexpected type for Int64, got %v", r.Type)
}

// String is a helper that converts a reply to a string.
//
//	Reply type      Result
//	simple string   return as is
//	bulk            return reply as string
//	integer         format as decimal string
//	double          format with strconv
//	big number      format as decimal string
//	null            return error ErrNull
//	other           return error
func String(r *Reply, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if r.IsNull() {
		return "", ErrNull
	}
	switch r.Type {
	case TypeSimpleString, TypeBulkString, TypeVerbatimString:
		return text(r), nil
	case TypeInteger:
		return strconv.FormatInt(r.Int, 10), nil
	case TypeDouble:
		return strconv.FormatFloat(r.Double, 'g', -1, 64), nil
	case TypeBigNumber:
		return r.Big.String(), nil
	}
	return "", fmt.Errorf("respio: unexpected type for String, got %v", r.Type)
}

// Bytes is a helper that converts a reply to a slice of bytes.
func Bytes(r *Reply, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if r.IsNull() {
		return nil, ErrNull
	}
	switch r.Type {
	case TypeSimpleString, TypeBulkString, TypeVerbatimString:
		if r.Bytes != nil {
			return r.Bytes, nil
		}
		return []byte(r.Str), nil
	case TypeInteger:
		return strconv.AppendInt(nil, r.Int, 10), nil
	}
	return nil, fmt.Errorf("respio: unexpected type for Bytes, got %v", r.Type)
}

// Bool is a helper that converts a reply to a bool.
//
//	Reply type      Result
//	boolean         return reply as is
//	integer         return value != 0
//	bulk            return false if reply is "" or "0", otherwise true
//	null            return error ErrNull
//	other           return error
func Bool(r *Reply, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	if r.IsNull() {
		return false, ErrNull
	}
	switch r.Type {
	case TypeBoolean:
		return r.Bool, nil
	case TypeInteger:
		return r.Int != 0, nil
	case TypeSimpleString, TypeBulkString, TypeVerbatimString:
		s := text(r)
		return s != "" && s != "0", nil
	}
	return false, fmt.Errorf("respio: unexpected type for Bool, got %v", r.Type)
}

// Float64 is a helper that converts a reply to a float64.
func Float64(r *Reply, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	if r.IsNull() {
		return 0, ErrNull
	}
	switch r.Type {
	case TypeDouble:
		return r.Double, nil
	case TypeInteger:
		return float64(r.Int), nil
	case TypeSimpleString, TypeBulkString, TypeVerbatimString:
		return strconv.ParseFloat(text(r), 64)
	}
	return 0, fmt.Errorf("respio: unexpected type for Float64, got %v", r.Type)
}

// BigInt is a helper that converts a reply to a *big.Int.
func BigInt(r *Reply, err error) (*big.Int, error) {
	if err != nil {
		return nil, err
	}
	if r.IsNull() {
		return nil, ErrNull
	}
	switch r.Type {
	case TypeBigNumber:
		return r.Big, nil
	case TypeInteger:
		return big.NewInt(r.Int), nil
	case TypeSimpleString, TypeBulkString, TypeVerbatimString:
		if n, ok := new(big.Int).SetString(text(r), 10); ok {
			return n, nil
		}
	}
	return nil, fmt.Errorf("respio: unexpected type for BigInt, got %v", r.Type)
}

// Values is a helper that converts an aggregate reply to its elements.
//
//	Reply type       Result
//	array, push, set return elements
//	null             return error ErrNull
//	other            return error
func Values(r *Reply, err error) ([]*Reply, error) {
	if err != nil {
		return nil, err
	}
	if r.IsNull() {
		return nil, ErrNull
	}
	switch r.Type {
	case TypeArray, TypePush, TypeSet:
		return r.Elems, nil
	}
	return nil, fmt.Errorf("respio: unexpected type for Values, got %v", r.Type)
}

// Strings is a helper that converts an aggregate reply to a []string,
// requiring every element to be convertible with String.
func Strings(r *Reply, err error) ([]string, error) {
	elems, err := Values(r, err)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		if out[i], err = String(e, nil); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// StringMap is a helper that converts a map reply, or an array reply of
// alternating key/value pairs as RESP2 servers send for HGETALL and CONFIG
// GET, to a map[string]string.
func StringMap(r *Reply, err error) (map[string]string, error) {
	if err != nil {
		return nil, err
	}
	if r.IsNull() {
		return nil, ErrNull
	}
	switch r.Type {
	case TypeMap:
		out := make(map[string]string, len(r.Entries))
		for _, e := range r.Entries {
			k, err := String(e.Key, nil)
			if err != nil {
				return nil, err
			}
			v, err := String(e.Value, nil)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case TypeArray, TypePush:
		if len(r.Elems)%2 != 0 {
			return nil, fmt.Errorf("respio: StringMap expects even number of elements, got %d", len(r.Elems))
		}
		out := make(map[string]string, len(r.Elems)/2)
		for i := 0; i < len(r.Elems); i += 2 {
			k, err := String(r.Elems[i], nil)
			if err != nil {
				return nil, err
			}
			v, err := String(r.Elems[i+1], nil)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("respio: unexpected type for StringMap, got %v", r.Type)
}

// text returns the string payload of a string-kinded reply regardless of
// whether it was decoded in raw mode.
func text(r *Reply) string {
	if r.Bytes != nil {
		return string(r.Bytes)
	}
	return r.Str
}
