/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package manifest parses the JSON manifests consulted during module
// resolution: package.json and tsconfig.json.
package manifest

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// Kind identifies the JSON type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a parsed JSON value. The concrete types are Null, Bool, Number,
// String, Array and *Object.
type Value interface {
	Kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number.
type Number float64

// String is a JSON string.
type String string

// Array is a JSON array.
type Array []Value

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object whose members keep their declared order.
// The order matters: exports and imports maps are matched first-key-wins.
type Object struct {
	Members []Member
}

func (Null) Kind() Kind    { return KindNull }
func (Bool) Kind() Kind    { return KindBool }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }
func (Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind { return KindObject }

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Members)
}

// set stores value under key. A repeated key keeps the position of its
// first occurrence and the value of its last, as JSON.parse does.
func (o *Object) set(key string, value Value) {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = value
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// AsString returns the string held by v, if v is a String.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// AsObject returns v as an object, if it is one.
func AsObject(v Value) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok && o != nil
}

// ParseJSON parses data into a Value. Comments and trailing commas are
// tolerated, since tsconfig.json files routinely contain both.
func ParseJSON(data []byte) (Value, error) {
	clean := jsonc.ToJSON(data)
	if !gjson.ValidBytes(clean) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(clean)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsObject() {
			obj := &Object{}
			r.ForEach(func(key, value gjson.Result) bool {
				obj.set(key.Str, fromResult(value))
				return true
			})
			return obj
		}
		if r.IsArray() {
			arr := Array{}
			r.ForEach(func(_, value gjson.Result) bool {
				arr = append(arr, fromResult(value))
				return true
			})
			return arr
		}
	}
	return Null{}
}
