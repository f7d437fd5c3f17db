// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

// Handler is the capability a consumer implements to receive parsed
// tokens from a Parser (spec.md §6). Every method returns a bool: true
// continues parsing, false cooperatively suspends Resume with
// OutcomeCallback. Byte-slice arguments are borrowed: they alias the
// input slice passed to Resume and are valid only for the duration of
// the call (spec.md "No retained borrows").
//
// Consumers are expected to embed NopHandler and override only the
// methods they care about, rather than implementing all of them.
type Handler interface {
	// start line
	OnMethod(name []byte) bool
	OnURL(url []byte) bool
	OnVersion(major, minor uint16) bool
	OnStatusCode(code uint16) bool
	OnStatus(status []byte) bool
	OnInitialFinished() bool

	// headers / trailers
	OnHeaderName(name []byte) bool
	OnHeaderValue(value []byte) bool
	OnHeadersFinished() bool

	// chunked body
	OnChunkLength(length uint64) bool
	OnChunkBegin() bool
	OnChunkExtensionName(name []byte) bool
	OnChunkExtensionValue(value []byte) bool
	OnChunkExtensionFinished() bool
	OnChunkExtensionsFinished() bool
	OnChunkData(data []byte) bool

	// multipart body
	OnMultipartBegin() bool
	OnMultipartData(data []byte) bool

	// url-encoded body
	OnURLEncodedBegin() bool
	OnURLEncodedName(name []byte) bool
	OnURLEncodedValue(value []byte) bool

	// shared
	OnBodyFinished() bool
}

// NopHandler implements Handler with every method returning true and
// otherwise doing nothing. Embed it in a concrete handler and override
// only the callbacks that matter, the way intuitivelabs-httpsp's
// PHBodies implementations only ever fill in the fields they track.
type NopHandler struct{}

func (NopHandler) OnMethod([]byte) bool                { return true }
func (NopHandler) OnURL([]byte) bool                   { return true }
func (NopHandler) OnVersion(uint16, uint16) bool       { return true }
func (NopHandler) OnStatusCode(uint16) bool             { return true }
func (NopHandler) OnStatus([]byte) bool                { return true }
func (NopHandler) OnInitialFinished() bool              { return true }
func (NopHandler) OnHeaderName([]byte) bool             { return true }
func (NopHandler) OnHeaderValue([]byte) bool            { return true }
func (NopHandler) OnHeadersFinished() bool              { return true }
func (NopHandler) OnChunkLength(uint64) bool            { return true }
func (NopHandler) OnChunkBegin() bool                   { return true }
func (NopHandler) OnChunkExtensionName([]byte) bool     { return true }
func (NopHandler) OnChunkExtensionValue([]byte) bool    { return true }
func (NopHandler) OnChunkExtensionFinished() bool       { return true }
func (NopHandler) OnChunkExtensionsFinished() bool      { return true }
func (NopHandler) OnChunkData([]byte) bool              { return true }
func (NopHandler) OnMultipartBegin() bool                { return true }
func (NopHandler) OnMultipartData([]byte) bool          { return true }
func (NopHandler) OnURLEncodedBegin() bool               { return true }
func (NopHandler) OnURLEncodedName([]byte) bool         { return true }
func (NopHandler) OnURLEncodedValue([]byte) bool        { return true }
func (NopHandler) OnBodyFinished() bool                  { return true }

var _ Handler = NopHandler{}
