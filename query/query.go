// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package query provides a lazy iterator over a query string's
// name/value pairs (spec.md §6 "Query iterator"), built on
// httpbox/urlencode's decoding rules. It is an external collaborator,
// not part of the core parser contract: nothing in httpbox or
// httpbox/http2 imports it.
package query

import "github.com/intuitivelabs/httpbox/urlencode"

// Pair is one decoded name/value pair yielded by an Iterator. Value.Set
// is false when the pair had no "=" (a bare name); a trailing "=" with
// nothing after it yields Value.Set true and Value.Value == "".
type Pair struct {
	Name  string
	Value OptionalValue
}

// OptionalValue distinguishes "no value" from "empty value".
type OptionalValue struct {
	Set   bool
	Value string
}

// Iterator lazily splits a query string on '&' and ';' and decodes each
// side of '=' with urlencode.Decode. The zero value is not usable; use
// New.
type Iterator struct {
	rest []byte
	err  error
}

// New returns an Iterator over s. s is not copied; it must not be
// modified while the Iterator is in use.
func New(s []byte) *Iterator {
	return &Iterator{rest: s}
}

// Err returns the first decoding error encountered, if any. Once Next
// returns false because of an error, Err is non-nil.
func (it *Iterator) Err() error { return it.err }

// Next advances the iterator and reports whether a pair is available.
// It returns false at end of input or on the first decoding error
// (distinguished by Err).
func (it *Iterator) Next() (Pair, bool) {
	if it.err != nil || len(it.rest) == 0 {
		return Pair{}, false
	}
	end := indexAny(it.rest, '&', ';')
	var field []byte
	if end < 0 {
		field = it.rest
		it.rest = nil
	} else {
		field = it.rest[:end]
		it.rest = it.rest[end+1:]
	}
	eq := indexByte(field, '=')
	var namePart, valuePart []byte
	hasValue := eq >= 0
	if hasValue {
		namePart, valuePart = field[:eq], field[eq+1:]
	} else {
		namePart = field
	}
	name, err := urlencode.Decode(namePart)
	if err != nil {
		it.err = err
		return Pair{}, false
	}
	p := Pair{Name: name}
	if hasValue {
		value, err := urlencode.Decode(valuePart)
		if err != nil {
			it.err = err
			return Pair{}, false
		}
		p.Value = OptionalValue{Set: true, Value: value}
	}
	return p, true
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func indexAny(b []byte, cs ...byte) int {
	for i, x := range b {
		for _, c := range cs {
			if x == c {
				return i
			}
		}
	}
	return -1
}
