// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package consumer

import (
	"go.uber.org/zap"

	"github.com/intuitivelabs/httpbox/http2"
)

// DebugHandler2 is DebugHandler's HTTP/2 counterpart, logging
// frame-level callbacks via zap. OnPriority, OnPushPromise, OnPing,
// OnGoAwayDebugData and OnUnsupported come from the embedded NopHandler
// and are not logged.
type DebugHandler2 struct {
	http2.NopHandler

	Log *zap.Logger
}

var _ http2.Handler = DebugHandler2{}

func (h DebugHandler2) OnFrameFormat(f http2.FrameFormat) bool {
	h.Log.Debug("frame_format",
		zap.Uint32("length", f.Length),
		zap.Stringer("type", f.Type),
		zap.Uint8("flags", uint8(f.Flags)),
		zap.Uint32("stream_id", f.StreamID))
	return true
}

func (h DebugHandler2) OnData(data []byte, finished bool) bool {
	h.Log.Debug("data", zap.Int("len", len(data)), zap.Bool("finished", finished))
	return true
}

func (h DebugHandler2) OnHeaders(exclusive bool, streamDep uint32, weight uint8) bool {
	h.Log.Debug("headers",
		zap.Bool("exclusive", exclusive),
		zap.Uint32("stream_dep", streamDep),
		zap.Uint8("weight", weight))
	return true
}

func (h DebugHandler2) OnHeadersFragment(fragment []byte, finished bool) bool {
	h.Log.Debug("headers_fragment", zap.Int("len", len(fragment)), zap.Bool("finished", finished))
	return true
}

func (h DebugHandler2) OnRstStream(errorCode uint32) bool {
	h.Log.Debug("rst_stream", zap.Uint32("error_code", errorCode))
	return true
}

func (h DebugHandler2) OnSettings(id uint16, value uint32) bool {
	h.Log.Debug("settings", zap.Uint16("id", id), zap.Uint32("value", value))
	return true
}

func (h DebugHandler2) OnGoAway(lastStreamID, errorCode uint32) bool {
	h.Log.Debug("go_away", zap.Uint32("last_stream_id", lastStreamID), zap.Uint32("error_code", errorCode))
	return true
}

func (h DebugHandler2) OnWindowUpdate(increment uint32) bool {
	h.Log.Debug("window_update", zap.Uint32("increment", increment))
	return true
}
