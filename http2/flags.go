// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http2

// Flags is the 8-bit flags field of a frame header. Its bits are
// interpreted differently per frame type (e.g. 0x1 is ACK for SETTINGS
// and PING, but END_STREAM for DATA and HEADERS); callers read it with
// the accessor matching the frame type from FrameFormat.Type.
type Flags uint8

const (
	FlagAck        Flags = 0x1
	FlagEndStream  Flags = 0x1
	FlagEndHeaders Flags = 0x4
	FlagPadded     Flags = 0x8
	FlagPriority   Flags = 0x20
)

func (f Flags) IsAck() bool        { return f&FlagAck == FlagAck }
func (f Flags) IsEndStream() bool  { return f&FlagEndStream == FlagEndStream }
func (f Flags) IsEndHeaders() bool { return f&FlagEndHeaders == FlagEndHeaders }
func (f Flags) IsPadded() bool     { return f&FlagPadded == FlagPadded }
func (f Flags) IsPriority() bool   { return f&FlagPriority == FlagPriority }
