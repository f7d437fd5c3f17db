// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

// advanceHeaderBlock parses one generic RFC 7230 header block: zero or
// more "Name: value" lines (with obs-fold continuations and quoted
// segments) terminated by an empty line. It is shared by request/reply
// headers (ModeHead), chunk trailers (ModeChunked) and per-part headers
// (ModeMultipart) -- spec.md §4.1 "Trailer: header-block grammar
// appearing after the zero-length chunk" and "transitions to the
// header block" for a matched multipart boundary.
//
// On completion (the terminating empty line consumed and
// OnHeadersFinished already fired) it leaves p.state at
// stateHeadersFinished and returns outcomeContinue; the caller (whose
// own switch also has a stateHeadersFinished case) decides what comes
// next for its mode.
func (p *Parser) advanceHeaderBlock(buf []byte, i int, h Handler) (int, Outcome, *Error) {
	for {
		switch p.state {
		case stateHeaderLineStart:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == '\r' || buf[i] == '\n' {
				var err *Error
				i, err = p.skipCRLF(buf, i)
				if err != nil {
					return i, 0, err
				}
				if i < 0 {
					return -i - 1, OutcomeEos, nil
				}
				p.state = stateHeadersFinished
				if !h.OnHeadersFinished() {
					return i, OutcomeCallback, nil
				}
				return i, outcomeContinue, nil
			}
			p.state = stateLowerHeaderName
			continue

		case stateLowerHeaderName:
			start := i
			end := runEnd(buf, i, &isTokenByte)
			if end > start {
				var ok bool
				i, ok = emitFolded(buf, start, end, h.OnHeaderName)
				if !ok {
					return i, OutcomeCallback, nil
				}
			} else {
				i = end
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			switch buf[i] {
			case ':':
				i++
				p.state = stateStripHeaderValue
			case ' ', '\t':
				j := runEnd(buf, i, &isWSByte)
				if j >= len(buf) {
					return j, OutcomeEos, nil
				}
				if buf[j] != ':' {
					return j, 0, errp(badByte(buf[j], ProductionHeaderName))
				}
				i = j + 1
				p.state = stateStripHeaderValue
			default:
				return i, 0, errp(badByte(buf[i], ProductionHeaderName))
			}
			continue

		case stateStripHeaderValue:
			i = runEnd(buf, i, &isWSByte)
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			p.state = stateHeaderValue
			continue

		case stateHeaderValue:
			start := i
			for i < len(buf) {
				b := buf[i]
				if b == '"' || b == '\r' || b == '\n' {
					break
				}
				if !isHeaderFieldByte[b] {
					return i, 0, errp(badByte(b, ProductionHeaderValue))
				}
				i++
			}
			if i > start {
				if !h.OnHeaderValue(buf[start:i]) {
					return i, OutcomeCallback, nil
				}
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == '"' {
				i++
				p.state = stateHeaderQuotedValue
				continue
			}
			p.state = stateHeaderValueCR
			continue

		case stateHeaderQuotedValue:
			start := i
			for i < len(buf) {
				b := buf[i]
				if b == '"' || b == '\\' {
					break
				}
				if !isQuotedHeaderFieldByte[b] {
					return i, 0, errp(badByte(b, ProductionHeaderValue))
				}
				i++
			}
			if i > start {
				if !h.OnHeaderValue(buf[start:i]) {
					return i, OutcomeCallback, nil
				}
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == '"' {
				i++
				p.state = stateHeaderValue
				continue
			}
			// buf[i] == '\\'
			i++
			p.state = stateHeaderEscapedValue
			continue

		case stateHeaderEscapedValue:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			var tmp [1]byte
			tmp[0] = buf[i]
			if !h.OnHeaderValue(tmp[:]) {
				return i + 1, OutcomeCallback, nil
			}
			i++
			p.state = stateHeaderQuotedValue
			continue

		case stateHeaderValueCR:
			var err *Error
			i, err = p.skipCRLF(buf, i)
			if err != nil {
				return i, 0, err
			}
			if i < 0 {
				return -i - 1, OutcomeEos, nil
			}
			p.state = stateHeaderValueLWS
			continue

		case stateHeaderValueLWS:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == ' ' || buf[i] == '\t' {
				var sp [1]byte
				sp[0] = ' '
				if !h.OnHeaderValue(sp[:]) {
					return i, OutcomeCallback, nil
				}
				i = runEnd(buf, i, &isWSByte)
				p.state = stateStripHeaderValue
				continue
			}
			p.state = stateHeaderLineStart
			continue

		default:
			return i, 0, errp(badByte(0, ProductionHeaderName))
		}
	}
}
