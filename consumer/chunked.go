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

// ChunkExtension is one `;name=value` (or bare `;name`) extension of a
// chunk-size line.
type ChunkExtension struct {
	Name  string
	Value string
}

// ChunkedBodyAssembler implements httpbox.Handler for ModeChunked,
// concatenating chunk data into Body and delegating trailer headers to
// an embedded HeaderAssembler (chunk trailers share the core's generic
// header-block grammar, per spec.md §4.1).
type ChunkedBodyAssembler struct {
	HeaderAssembler

	Body bytes.Buffer
	// Extensions holds one slice of ChunkExtension per chunk, in the
	// same order as the chunks themselves; a chunk with none gets a nil
	// entry.
	Extensions [][]ChunkExtension
	// Done is set once on_body_finished fires.
	Done bool

	curChunk []ChunkExtension
	curExt   ChunkExtension
}

var _ httpbox.Handler = (*ChunkedBodyAssembler)(nil)

// OnChunkBegin implements httpbox.Handler.
func (a *ChunkedBodyAssembler) OnChunkBegin() bool {
	a.curChunk = nil
	return true
}

// OnChunkExtensionName implements httpbox.Handler.
func (a *ChunkedBodyAssembler) OnChunkExtensionName(name []byte) bool {
	a.curExt.Name += string(name)
	return true
}

// OnChunkExtensionValue implements httpbox.Handler.
func (a *ChunkedBodyAssembler) OnChunkExtensionValue(value []byte) bool {
	a.curExt.Value += string(value)
	return true
}

// OnChunkExtensionFinished implements httpbox.Handler.
func (a *ChunkedBodyAssembler) OnChunkExtensionFinished() bool {
	a.curChunk = append(a.curChunk, a.curExt)
	a.curExt = ChunkExtension{}
	return true
}

// OnChunkExtensionsFinished implements httpbox.Handler.
func (a *ChunkedBodyAssembler) OnChunkExtensionsFinished() bool {
	a.Extensions = append(a.Extensions, a.curChunk)
	a.curChunk = nil
	return true
}

// OnChunkData implements httpbox.Handler.
func (a *ChunkedBodyAssembler) OnChunkData(data []byte) bool {
	a.Body.Write(data)
	return true
}

// OnBodyFinished implements httpbox.Handler.
func (a *ChunkedBodyAssembler) OnBodyFinished() bool {
	a.Done = true
	return true
}
