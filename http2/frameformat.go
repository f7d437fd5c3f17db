// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http2

// FrameFormat is the decoded 9-byte frame header passed to
// on_frame_format (spec.md §3 "Frame descriptor"): a 24-bit payload
// length, an 8-bit type, an 8-bit flags byte, and a 31-bit stream id
// with the reserved high bit masked off. It is a plain value, immutable
// once constructed and valid only for the duration of the callback.
type FrameFormat struct {
	Length   uint32
	Type     FrameType
	Flags    Flags
	StreamID uint32
}
