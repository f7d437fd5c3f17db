// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http2

// Handler is the capability a consumer implements to receive decoded
// HTTP/2 frames (spec.md §6 "Handler capability (HTTP/2)"). Every
// method returns a bool: true continues parsing, false cooperatively
// suspends Resume with OutcomeCallback. Byte-slice arguments are
// borrowed and valid only for the duration of the call.
type Handler interface {
	OnFrameFormat(f FrameFormat) bool
	OnData(data []byte, finished bool) bool
	OnHeaders(exclusive bool, streamDep uint32, weight uint8) bool
	OnHeadersFragment(fragment []byte, finished bool) bool
	OnPriority(exclusive bool, streamDep uint32, weight uint8) bool
	OnRstStream(errorCode uint32) bool
	OnSettings(id uint16, value uint32) bool
	OnPushPromise(streamID uint32) bool
	OnPing(data []byte, finished bool) bool
	OnGoAway(lastStreamID, errorCode uint32) bool
	OnGoAwayDebugData(data []byte, finished bool) bool
	OnWindowUpdate(increment uint32) bool
	OnUnsupported(data []byte, finished bool) bool
}

// NopHandler implements Handler with every method returning true and
// otherwise doing nothing.
type NopHandler struct{}

func (NopHandler) OnFrameFormat(FrameFormat) bool                 { return true }
func (NopHandler) OnData([]byte, bool) bool                       { return true }
func (NopHandler) OnHeaders(bool, uint32, uint8) bool              { return true }
func (NopHandler) OnHeadersFragment([]byte, bool) bool            { return true }
func (NopHandler) OnPriority(bool, uint32, uint8) bool             { return true }
func (NopHandler) OnRstStream(uint32) bool                        { return true }
func (NopHandler) OnSettings(uint16, uint32) bool                 { return true }
func (NopHandler) OnPushPromise(uint32) bool                      { return true }
func (NopHandler) OnPing([]byte, bool) bool                       { return true }
func (NopHandler) OnGoAway(uint32, uint32) bool                    { return true }
func (NopHandler) OnGoAwayDebugData([]byte, bool) bool            { return true }
func (NopHandler) OnWindowUpdate(uint32) bool                     { return true }
func (NopHandler) OnUnsupported([]byte, bool) bool                { return true }

var _ Handler = NopHandler{}
