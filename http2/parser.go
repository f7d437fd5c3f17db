// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http2

// Parser is a single HTTP/2 frame-layer FSM instance. The zero value is
// ready to use: it starts at the first byte of a frame header.
//
// Unlike the HTTP/1 parser, Parser never errors (spec.md §4.2 "Failure
// semantics": every 8-bit value is a legal byte in HTTP/2 framing).
// Resume's only job is positional correctness -- consuming exactly the
// declared payload length before the next frame header begins.
type Parser struct {
	state State

	byteCount uint64

	// current frame header
	length   uint32
	typ      FrameType
	flags    Flags
	streamID uint32

	// generic big-endian multi-byte accumulator, reset at the first byte
	// of each field it is used for (frame length, stream ids, error
	// codes, settings values, window increments).
	acc uint32

	// bytes left to stream in the current payload sub-phase (data,
	// headers/push-promise/continuation fragment, ping data, go-away
	// debug data, unsupported data, or trailing padding).
	remaining uint32
	padLength uint8

	// HEADERS / PRIORITY priority sub-fields.
	exclusive bool
	streamDep uint32
	weight    uint8

	// SETTINGS entry scratch.
	settingID uint16

	// GOAWAY scratch.
	lastStreamID uint32
	errorCode    uint32

	// WINDOW_UPDATE scratch.
	increment uint32
}

// NewParser returns a Parser ready to decode frames from the start of a
// stream (i.e. positioned at the first byte of a frame header).
func NewParser() *Parser {
	return &Parser{state: stateFrameLength1}
}

// ByteCount returns the total number of bytes consumed across all
// Resume calls since construction.
func (p *Parser) ByteCount() uint64 { return p.byteCount }

// Resume drives the FSM over input, calling back into h as each frame
// header and payload field is recognized, until input is exhausted
// (Result.Eos()) or h returned false from some callback
// (Result.Callback()). Frames repeat indefinitely; there is no
// "finished" terminal state for a connection-level stream of frames.
func (p *Parser) Resume(h Handler, input []byte) Result {
	if h == nil {
		h = NopHandler{}
	}
	i, o := p.resume(h, input)
	p.byteCount += uint64(i)
	return Result{Outcome: o, N: i}
}

func clampSub(v uint32, subs ...uint32) uint32 {
	for _, s := range subs {
		if s > v {
			return 0
		}
		v -= s
	}
	return v
}

func (p *Parser) resume(h Handler, buf []byte) (int, Outcome) {
	i := 0
	for {
		switch p.state {
		// --- frame header --------------------------------------------------
		case stateFrameLength1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = stateFrameLength2
			continue

		case stateFrameLength2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateFrameLength3
			continue

		case stateFrameLength3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			p.length = p.acc
			i++
			p.state = stateFrameType
			continue

		case stateFrameType:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.typ = frameTypeFromByte(buf[i])
			i++
			p.state = stateFrameFlags
			continue

		case stateFrameFlags:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.flags = Flags(buf[i])
			i++
			p.acc = 0
			p.state = stateFrameStreamID1
			continue

		case stateFrameStreamID1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = stateFrameStreamID2
			continue

		case stateFrameStreamID2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateFrameStreamID3
			continue

		case stateFrameStreamID3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateFrameStreamID4
			continue

		case stateFrameStreamID4:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			p.streamID = p.acc & 0x7FFFFFFF
			i++
			p.state = stateFrameFormatEnd
			continue

		case stateFrameFormatEnd:
			p.dispatchFrame()
			ff := FrameFormat{Length: p.length, Type: p.typ, Flags: p.flags, StreamID: p.streamID}
			if !h.OnFrameFormat(ff) {
				return i, OutcomeCallback
			}
			continue

		case stateFramePadding:
			n := p.remaining
			avail := uint32(len(buf) - i)
			if avail < n {
				i += int(avail)
				p.remaining -= avail
				return i, OutcomeEos
			}
			i += int(n)
			p.remaining = 0
			p.state = stateFrameLength1
			continue

		// --- DATA --------------------------------------------------------------
		case stateDataPadLength:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.padLength = buf[i]
			i++
			p.remaining = clampSub(p.length, 1, uint32(p.padLength))
			p.state = stateDataData
			continue

		case stateDataData:
			var done bool
			var o Outcome
			i, o, done = consumeStream(buf, i, &p.remaining, h.OnData)
			if !done {
				return i, o
			}
			p.remaining = uint32(p.padLength)
			p.state = afterFragmentState(p.padLength)
			continue

		// --- HEADERS --------------------------------------------------------------
		case stateHeadersPadLengthWithPriority:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.padLength = buf[i]
			i++
			p.state = stateHeadersStreamID1
			continue

		case stateHeadersPadLengthWithoutPriority:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.padLength = buf[i]
			i++
			p.remaining = clampSub(p.length, 1, uint32(p.padLength))
			p.state = stateHeadersFragment
			continue

		case stateHeadersStreamID1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = stateHeadersStreamID2
			continue

		case stateHeadersStreamID2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateHeadersStreamID3
			continue

		case stateHeadersStreamID3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateHeadersStreamID4
			continue

		case stateHeadersStreamID4:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			p.streamDep = p.acc & 0x7FFFFFFF
			p.exclusive = p.acc&0x80000000 != 0
			i++
			p.state = stateHeadersWeight
			continue

		case stateHeadersWeight:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.weight = buf[i]
			i++
			consumed := uint32(5)
			if p.flags.IsPadded() {
				consumed += 1 + uint32(p.padLength)
			}
			p.remaining = clampSub(p.length, consumed)
			p.state = stateHeadersCallback
			continue

		case stateHeadersCallback:
			p.state = stateHeadersFragment
			if !h.OnHeaders(p.exclusive, p.streamDep, p.weight) {
				return i, OutcomeCallback
			}
			continue

		case stateHeadersFragment:
			var done bool
			var o Outcome
			i, o, done = consumeStream(buf, i, &p.remaining, h.OnHeadersFragment)
			if !done {
				return i, o
			}
			p.remaining = uint32(p.padLength)
			p.state = afterFragmentState(p.padLength)
			continue

		// --- PRIORITY --------------------------------------------------------------
		case statePriorityStreamID1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = statePriorityStreamID2
			continue

		case statePriorityStreamID2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = statePriorityStreamID3
			continue

		case statePriorityStreamID3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = statePriorityStreamID4
			continue

		case statePriorityStreamID4:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			p.streamDep = p.acc & 0x7FFFFFFF
			p.exclusive = p.acc&0x80000000 != 0
			i++
			p.state = statePriorityWeight
			continue

		case statePriorityWeight:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.weight = buf[i]
			i++
			p.state = stateFrameLength1
			if !h.OnPriority(p.exclusive, p.streamDep, p.weight) {
				return i, OutcomeCallback
			}
			continue

		// --- RST_STREAM --------------------------------------------------------------
		case stateRstStreamErrorCode1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = stateRstStreamErrorCode2
			continue

		case stateRstStreamErrorCode2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateRstStreamErrorCode3
			continue

		case stateRstStreamErrorCode3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateRstStreamErrorCode4
			continue

		case stateRstStreamErrorCode4:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			p.errorCode = p.acc
			i++
			p.state = stateRstStreamCallback
			continue

		case stateRstStreamCallback:
			p.state = stateFrameLength1
			if !h.OnRstStream(p.errorCode) {
				return i, OutcomeCallback
			}
			continue

		// --- SETTINGS --------------------------------------------------------------
		case stateSettingsID1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.settingID = uint16(buf[i]) << 8
			i++
			p.state = stateSettingsID2
			continue

		case stateSettingsID2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.settingID |= uint16(buf[i])
			i++
			p.state = stateSettingsValue1
			continue

		case stateSettingsValue1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = stateSettingsValue2
			continue

		case stateSettingsValue2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateSettingsValue3
			continue

		case stateSettingsValue3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateSettingsValue4
			continue

		case stateSettingsValue4:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.remaining = clampSub(p.remaining, 6)
			p.state = stateSettingsCallback
			continue

		case stateSettingsCallback:
			if p.remaining > 0 {
				p.state = stateSettingsID1
			} else {
				p.state = stateFrameLength1
			}
			if !h.OnSettings(p.settingID, p.acc) {
				return i, OutcomeCallback
			}
			continue

		// --- PUSH_PROMISE --------------------------------------------------------------
		case statePushPromisePadLength:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.padLength = buf[i]
			i++
			p.state = statePushPromiseStreamID1
			continue

		case statePushPromiseStreamID1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = statePushPromiseStreamID2
			continue

		case statePushPromiseStreamID2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = statePushPromiseStreamID3
			continue

		case statePushPromiseStreamID3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = statePushPromiseStreamID4
			continue

		case statePushPromiseStreamID4:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			p.streamDep = p.acc & 0x7FFFFFFF
			i++
			consumed := uint32(4)
			if p.flags.IsPadded() {
				consumed += 1 + uint32(p.padLength)
			}
			p.remaining = clampSub(p.length, consumed)
			p.state = statePushPromiseCallback
			continue

		case statePushPromiseCallback:
			p.state = stateHeadersFragment
			if !h.OnPushPromise(p.streamDep) {
				return i, OutcomeCallback
			}
			continue

		// --- PING --------------------------------------------------------------
		case statePingData:
			var done bool
			var o Outcome
			i, o, done = consumeStream(buf, i, &p.remaining, h.OnPing)
			if !done {
				return i, o
			}
			p.state = stateFrameLength1
			continue

		// --- GOAWAY --------------------------------------------------------------
		case stateGoAwayStreamID1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = stateGoAwayStreamID2
			continue

		case stateGoAwayStreamID2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateGoAwayStreamID3
			continue

		case stateGoAwayStreamID3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateGoAwayStreamID4
			continue

		case stateGoAwayStreamID4:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			p.lastStreamID = p.acc & 0x7FFFFFFF
			i++
			p.state = stateGoAwayErrorCode1
			continue

		case stateGoAwayErrorCode1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = stateGoAwayErrorCode2
			continue

		case stateGoAwayErrorCode2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateGoAwayErrorCode3
			continue

		case stateGoAwayErrorCode3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateGoAwayErrorCode4
			continue

		case stateGoAwayErrorCode4:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			p.errorCode = p.acc
			i++
			p.remaining = clampSub(p.length, 8)
			p.state = stateGoAwayCallback
			continue

		case stateGoAwayCallback:
			p.state = stateGoAwayDebugData
			if !h.OnGoAway(p.lastStreamID, p.errorCode) {
				return i, OutcomeCallback
			}
			continue

		case stateGoAwayDebugData:
			var done bool
			var o Outcome
			i, o, done = consumeStream(buf, i, &p.remaining, h.OnGoAwayDebugData)
			if !done {
				return i, o
			}
			p.state = stateFrameLength1
			continue

		// --- WINDOW_UPDATE --------------------------------------------------------------
		case stateWindowUpdateIncrement1:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = uint32(buf[i])
			i++
			p.state = stateWindowUpdateIncrement2
			continue

		case stateWindowUpdateIncrement2:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateWindowUpdateIncrement3
			continue

		case stateWindowUpdateIncrement3:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			i++
			p.state = stateWindowUpdateIncrement4
			continue

		case stateWindowUpdateIncrement4:
			if i >= len(buf) {
				return i, OutcomeEos
			}
			p.acc = p.acc<<8 | uint32(buf[i])
			p.increment = p.acc & 0x7FFFFFFF
			i++
			p.state = stateWindowUpdateCallback
			continue

		case stateWindowUpdateCallback:
			p.state = stateFrameLength1
			if !h.OnWindowUpdate(p.increment) {
				return i, OutcomeCallback
			}
			continue

		// --- unsupported / unknown frame type -----------------------------------
		case stateUnsupportedData:
			var done bool
			var o Outcome
			i, o, done = consumeStream(buf, i, &p.remaining, h.OnUnsupported)
			if !done {
				return i, o
			}
			p.state = stateFrameLength1
			continue

		default:
			// unreachable: every declared state is handled above.
			p.state = stateFrameLength1
			continue
		}
	}
}

// afterFragmentState returns the state to resume in once a HEADERS,
// PUSH_PROMISE, CONTINUATION, or DATA payload has been fully streamed:
// consume trailing padding if the PADDED flag supplied any, otherwise
// go straight back to the next frame header.
func afterFragmentState(padLength uint8) State {
	if padLength > 0 {
		return stateFramePadding
	}
	return stateFrameLength1
}

// dispatchFrame decides, from the just-decoded frame header, which
// state to continue in and primes whatever scratch fields that state
// needs. It runs before on_frame_format fires so that a false return
// from the callback still leaves the parser correctly positioned to
// continue -- not re-decode the header -- on the next Resume call.
func (p *Parser) dispatchFrame() {
	p.padLength = 0
	switch p.typ {
	case FrameData:
		if p.flags.IsPadded() {
			p.state = stateDataPadLength
		} else {
			p.remaining = p.length
			p.state = stateDataData
		}

	case FrameHeaders:
		switch {
		case p.flags.IsPadded() && p.flags.IsPriority():
			p.state = stateHeadersPadLengthWithPriority
		case p.flags.IsPadded():
			p.state = stateHeadersPadLengthWithoutPriority
		case p.flags.IsPriority():
			p.state = stateHeadersStreamID1
		default:
			p.remaining = p.length
			p.state = stateHeadersFragment
		}

	case FramePriority:
		p.state = statePriorityStreamID1

	case FrameRstStream:
		p.state = stateRstStreamErrorCode1

	case FrameSettings:
		p.remaining = p.length
		if p.remaining == 0 {
			p.state = stateFrameLength1
		} else {
			p.state = stateSettingsID1
		}

	case FramePushPromise:
		if p.flags.IsPadded() {
			p.state = statePushPromisePadLength
		} else {
			p.state = statePushPromiseStreamID1
		}

	case FramePing:
		p.remaining = p.length
		p.state = statePingData

	case FrameGoAway:
		p.state = stateGoAwayStreamID1

	case FrameWindowUpdate:
		p.state = stateWindowUpdateIncrement1

	case FrameContinuation:
		p.remaining = p.length
		p.state = stateHeadersFragment

	default: // FrameUnsupported
		p.remaining = p.length
		p.state = stateUnsupportedData
	}
}

// consumeStream hands buf[i:] to emit in one or more calls, bounded by
// *remaining, decrementing it as bytes are delivered. The final call
// (when *remaining reaches 0) passes finished=true; a zero-length
// payload still gets exactly one finished=true call with a nil slice.
// Returns the new offset, the suspension reason when not yet done, and
// whether the stream is now fully consumed.
func consumeStream(buf []byte, i int, remaining *uint32, emit func(data []byte, finished bool) bool) (int, Outcome, bool) {
	if *remaining == 0 {
		if !emit(nil, true) {
			return i, OutcomeCallback, false
		}
		return i, OutcomeFinished, true
	}
	if i >= len(buf) {
		return i, OutcomeEos, false
	}
	avail := uint32(len(buf) - i)
	n := *remaining
	finished := true
	if avail < n {
		n = avail
		finished = false
	}
	end := i + int(n)
	chunk := buf[i:end]
	*remaining -= n
	ok := emit(chunk, finished)
	i = end
	if !ok {
		return i, OutcomeCallback, false
	}
	if finished {
		return i, OutcomeFinished, true
	}
	return i, OutcomeEos, false
}
