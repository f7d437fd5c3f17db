// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package consumer

import (
	"go.uber.org/zap"

	"github.com/intuitivelabs/httpbox"
)

// DebugHandler logs httpbox.Handler callbacks at debug level via zap.
// OnChunkBegin, the chunk-extension callbacks and OnURLEncodedBegin come
// from the embedded NopHandler and are not logged. It always returns
// true: it never suspends parsing.
type DebugHandler struct {
	httpbox.NopHandler

	Log *zap.Logger
}

var _ httpbox.Handler = DebugHandler{}

func (h DebugHandler) OnMethod(name []byte) bool {
	h.Log.Debug("method", zap.ByteString("name", name))
	return true
}

func (h DebugHandler) OnURL(url []byte) bool {
	h.Log.Debug("url", zap.ByteString("url", url))
	return true
}

func (h DebugHandler) OnVersion(major, minor uint16) bool {
	h.Log.Debug("version", zap.Uint16("major", major), zap.Uint16("minor", minor))
	return true
}

func (h DebugHandler) OnStatusCode(code uint16) bool {
	h.Log.Debug("status_code", zap.Uint16("code", code))
	return true
}

func (h DebugHandler) OnStatus(status []byte) bool {
	h.Log.Debug("status", zap.ByteString("status", status))
	return true
}

func (h DebugHandler) OnInitialFinished() bool {
	h.Log.Debug("initial_finished")
	return true
}

func (h DebugHandler) OnHeaderName(name []byte) bool {
	h.Log.Debug("header_name", zap.ByteString("name", name))
	return true
}

func (h DebugHandler) OnHeaderValue(value []byte) bool {
	h.Log.Debug("header_value", zap.ByteString("value", value))
	return true
}

func (h DebugHandler) OnHeadersFinished() bool {
	h.Log.Debug("headers_finished")
	return true
}

func (h DebugHandler) OnChunkLength(length uint64) bool {
	h.Log.Debug("chunk_length", zap.Uint64("length", length))
	return true
}

func (h DebugHandler) OnChunkData(data []byte) bool {
	h.Log.Debug("chunk_data", zap.Int("len", len(data)))
	return true
}

func (h DebugHandler) OnMultipartBegin() bool {
	h.Log.Debug("multipart_begin")
	return true
}

func (h DebugHandler) OnMultipartData(data []byte) bool {
	h.Log.Debug("multipart_data", zap.Int("len", len(data)))
	return true
}

func (h DebugHandler) OnURLEncodedName(name []byte) bool {
	h.Log.Debug("url_encoded_name", zap.ByteString("name", name))
	return true
}

func (h DebugHandler) OnURLEncodedValue(value []byte) bool {
	h.Log.Debug("url_encoded_value", zap.ByteString("value", value))
	return true
}

func (h DebugHandler) OnBodyFinished() bool {
	h.Log.Debug("body_finished")
	return true
}
