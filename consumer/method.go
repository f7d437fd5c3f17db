// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package consumer

import (
	"bytes"

	"github.com/intuitivelabs/bytescase"
)

// Method is a classified HTTP request method. Parser.Resume itself only
// ever hands a raw method name to OnMethod (spec.md keeps no fixed verb
// list in the grammar); Method gives a consumer a fast, allocation-free
// way to switch on the common ones without repeated byte comparisons.
type Method uint8

const (
	MUndef Method = iota
	MGet
	MHead
	MPost
	MPut
	MDelete
	MConnect
	MOptions
	MTrace
	MPatch
	MOther // any method name not in the table above
)

var method2Name = [MOther + 1][]byte{
	MUndef:   []byte(""),
	MGet:     []byte("GET"),
	MHead:    []byte("HEAD"),
	MPost:    []byte("POST"),
	MPut:     []byte("PUT"),
	MDelete:  []byte("DELETE"),
	MConnect: []byte("CONNECT"),
	MOptions: []byte("OPTIONS"),
	MTrace:   []byte("TRACE"),
	MPatch:   []byte("PATCH"),
	MOther:   []byte("OTHER"),
}

// Name returns the canonical ASCII method name.
func (m Method) Name() []byte {
	if m > MOther {
		return method2Name[MUndef]
	}
	return method2Name[m]
}

func (m Method) String() string {
	return string(m.Name())
}

// magic values for the methodLookup hash. Some buckets hold more than
// one method (HEAD and POST share one, GET and OPTIONS another), so a
// lookup compares against every entry of its bucket.
const (
	methodBitsLen   uint = 2
	methodBitsFChar uint = 3
)

type method2Type struct {
	n []byte
	t Method
}

var methodLookup [1 << (methodBitsLen + methodBitsFChar)][]method2Type

func hashMethodName(n []byte) int {
	const (
		mC = (1 << methodBitsFChar) - 1
		mL = (1 << methodBitsLen) - 1
	)
	return (int(bytescase.ByteToLower(n[0])) & mC) |
		((len(n) & mL) << methodBitsFChar)
}

func init() {
	for m := MUndef + 1; m < MOther; m++ {
		h := hashMethodName(method2Name[m])
		methodLookup[h] = append(methodLookup[h], method2Type{method2Name[m], m})
	}
}

// ClassifyMethod maps a raw OnMethod name (as delivered by Parser.Resume)
// to its Method, or MOther if name isn't one of the methods above.
func ClassifyMethod(name []byte) Method {
	if len(name) == 0 {
		return MUndef
	}
	h := hashMethodName(name)
	for _, m := range methodLookup[h] {
		if bytes.Equal(name, m.n) {
			return m.t
		}
	}
	return MOther
}
