// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package consumer provides reference Handler implementations: small,
// concrete assemblers that turn the core parsers' borrowed-slice
// callbacks into the containers spec.md explicitly keeps out of the
// core contract ("Concrete consumers that assemble headers, trailers,
// parameters, or cookies into containers ... described only by the
// contract they rely on"). None of httpbox or httpbox/http2 imports
// this package.
package consumer

import (
	"fmt"

	"github.com/intuitivelabs/httpbox"
)

// HeaderField is one accumulated header or trailer. Value is the
// concatenation of every on_header_value call for that header,
// including continuation-line bytes, matching spec.md §8's round-trip
// law.
type HeaderField struct {
	Name  string
	Value string
}

// ErrMaxHeaderBytes names the condition of HeaderAssembler's
// MaxHeaderBytes budget being exceeded. HeaderAssembler does not return
// it: it reports the condition only by returning false from a callback,
// and the caller reports this error. The core FSM has no such limit
// (errors.go's ErrMaxHeadersLength sentinel documents this is a
// consumer-level concern, not a core one); it exists here because a
// caller assembling headers into memory needs a bound an allocation-free
// streaming core does not.
var ErrMaxHeaderBytes = fmt.Errorf("consumer: header block exceeds MaxHeaderBytes")

// HeaderAssembler implements httpbox.Handler, accumulating the header
// (or trailer) block of a parsed message into Fields. It ignores every
// start-line and body callback; compose it with another Handler (e.g.
// embed it alongside a body assembler) when both are needed.
type HeaderAssembler struct {
	httpbox.NopHandler

	// Fields holds one entry per header line, in arrival order,
	// finalized when Finished becomes true.
	Fields []HeaderField
	// Finished is set once on_headers_finished fires.
	Finished bool

	// MaxHeaderBytes, if non-zero, bounds the total bytes accepted
	// across every on_header_name/on_header_value call. The call whose
	// bytes push the total past it, and every such call after it,
	// returns false, which callers should treat as "stop parsing and
	// report ErrMaxHeaderBytes".
	MaxHeaderBytes int

	byteCount int
	building  HeaderField
	// inName/inValue track which phase the *previous* callback was in,
	// so a run of on_header_name chunks (split only by case folding,
	// never interrupted) can be told apart from the on_header_name call
	// that starts the next field. A header with an empty value gets no
	// on_header_value call, so its name and the name of the header that
	// follows it are joined into one field; only an empty-valued header
	// that ends the block stays a field of its own.
	inName  bool
	inValue bool
}

var _ httpbox.Handler = (*HeaderAssembler)(nil)

func (a *HeaderAssembler) overBudget(n int) bool {
	if a.MaxHeaderBytes == 0 {
		return false
	}
	a.byteCount += n
	return a.byteCount > a.MaxHeaderBytes
}

// OnHeaderName implements httpbox.Handler.
func (a *HeaderAssembler) OnHeaderName(name []byte) bool {
	if !a.inName && (a.inValue || a.building.Name != "") {
		a.Fields = append(a.Fields, a.building)
		a.building = HeaderField{}
	}
	a.inName, a.inValue = true, false
	if a.overBudget(len(name)) {
		return false
	}
	a.building.Name += string(name)
	return true
}

// OnHeaderValue implements httpbox.Handler.
func (a *HeaderAssembler) OnHeaderValue(value []byte) bool {
	a.inName, a.inValue = false, true
	if a.overBudget(len(value)) {
		return false
	}
	a.building.Value += string(value)
	return true
}

// OnHeadersFinished implements httpbox.Handler.
func (a *HeaderAssembler) OnHeadersFinished() bool {
	if a.inName || a.inValue {
		a.Fields = append(a.Fields, a.building)
		a.building = HeaderField{}
		a.inName, a.inValue = false, false
	}
	a.Finished = true
	return true
}
