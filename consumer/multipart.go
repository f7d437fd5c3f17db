// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package consumer

import (
	"bytes"

	"github.com/intuitivelabs/httpbox"
)

// MultipartPart is one assembled part: its headers and body bytes.
type MultipartPart struct {
	Headers []HeaderField
	Data    bytes.Buffer
}

// MultipartAssembler implements httpbox.Handler for ModeMultipart,
// collecting each part's headers and body into Parts.
type MultipartAssembler struct {
	httpbox.NopHandler

	Parts []*MultipartPart
	// Done is set once on_body_finished fires.
	Done bool

	headers HeaderAssembler
}

var _ httpbox.Handler = (*MultipartAssembler)(nil)

func (a *MultipartAssembler) current() *MultipartPart {
	return a.Parts[len(a.Parts)-1]
}

// OnMultipartBegin implements httpbox.Handler.
func (a *MultipartAssembler) OnMultipartBegin() bool {
	a.Parts = append(a.Parts, &MultipartPart{})
	a.headers = HeaderAssembler{}
	return true
}

// OnHeaderName implements httpbox.Handler.
func (a *MultipartAssembler) OnHeaderName(name []byte) bool { return a.headers.OnHeaderName(name) }

// OnHeaderValue implements httpbox.Handler.
func (a *MultipartAssembler) OnHeaderValue(value []byte) bool { return a.headers.OnHeaderValue(value) }

// OnHeadersFinished implements httpbox.Handler.
func (a *MultipartAssembler) OnHeadersFinished() bool {
	ok := a.headers.OnHeadersFinished()
	a.current().Headers = a.headers.Fields
	return ok
}

// OnMultipartData implements httpbox.Handler.
func (a *MultipartAssembler) OnMultipartData(data []byte) bool {
	a.current().Data.Write(data)
	return true
}

// OnBodyFinished implements httpbox.Handler.
func (a *MultipartAssembler) OnBodyFinished() bool {
	a.Done = true
	return true
}
