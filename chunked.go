// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

// maxChunkLength is 2^32-1 (spec.md §3, §7): a chunk size is encoded on
// the wire as up to 8 hex digits and must fit a 32-bit value.
const maxChunkLength = 0xFFFFFFFF

// stepChunked drives ModeChunked: the chunk-size line (with optional
// extensions), the chunk data, repeated until a zero-length chunk, then
// trailer headers (reusing advanceHeaderBlock) and on_body_finished.
func (p *Parser) stepChunked(buf []byte, i int, h Handler) (int, Outcome, *Error) {
	for {
		switch p.state {
		case stateChunkLength:
			for {
				if i >= len(buf) {
					return i, OutcomeEos, nil
				}
				b := buf[i]
				if !isHexDigit[b] {
					break
				}
				if p.hexDigits >= 8 {
					return i, 0, errp(overflow(b, ProductionChunkLength))
				}
				p.chunkLength = p.chunkLength<<4 | uint64(hexVal(b))
				p.hexDigits++
				i++
			}
			if p.hexDigits == 0 {
				return i, 0, errp(badByte(buf[i], ProductionChunkLength))
			}
			if p.chunkLength > maxChunkLength {
				return i, 0, errp(overflow(buf[i], ProductionChunkLength))
			}
			p.length = p.chunkLength
			p.state = stateChunkExtensionStart
			if !h.OnChunkLength(p.chunkLength) {
				return i, OutcomeCallback, nil
			}
			if !h.OnChunkBegin() {
				return i, OutcomeCallback, nil
			}
			continue

		case stateChunkExtensionStart:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == ';' {
				i++
				p.state = stateStripChunkExtensionName
				continue
			}
			p.state = stateChunkExtensionsCR
			continue

		case stateStripChunkExtensionName:
			i = runEnd(buf, i, &isWSByte)
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			p.state = stateLowerChunkExtensionName
			continue

		case stateLowerChunkExtensionName:
			start := i
			end := runEnd(buf, i, &isTokenByte)
			if end > start {
				var ok bool
				i, ok = emitFolded(buf, start, end, h.OnChunkExtensionName)
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
			case '=':
				i++
				p.state = stateStripChunkExtensionValue
			case ';', '\r', '\n':
				p.state = stateChunkExtensionFinished
			default:
				return i, 0, errp(badByte(buf[i], ProductionChunkExtensionName))
			}
			continue

		case stateStripChunkExtensionValue:
			i = runEnd(buf, i, &isWSByte)
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == '"' {
				i++
				p.state = stateChunkExtensionQuotedValue
			} else {
				p.state = stateChunkExtensionValue
			}
			continue

		case stateChunkExtensionValue:
			start := i
			i = runEnd(buf, i, &isTokenByte)
			if i > start {
				if !h.OnChunkExtensionValue(buf[start:i]) {
					return i, OutcomeCallback, nil
				}
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != ';' && buf[i] != '\r' && buf[i] != '\n' {
				return i, 0, errp(badByte(buf[i], ProductionChunkExtensionValue))
			}
			p.state = stateChunkExtensionFinished
			continue

		case stateChunkExtensionQuotedValue:
			start := i
			for i < len(buf) {
				b := buf[i]
				if b == '"' || b == '\\' {
					break
				}
				if !isQuotedHeaderFieldByte[b] {
					return i, 0, errp(badByte(b, ProductionChunkExtensionValue))
				}
				i++
			}
			if i > start {
				if !h.OnChunkExtensionValue(buf[start:i]) {
					return i, OutcomeCallback, nil
				}
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == '"' {
				i++
				p.state = stateChunkExtensionFinished
				continue
			}
			i++
			p.state = stateChunkExtensionEscapedValue
			continue

		case stateChunkExtensionEscapedValue:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			var tmp [1]byte
			tmp[0] = buf[i]
			if !h.OnChunkExtensionValue(tmp[:]) {
				return i + 1, OutcomeCallback, nil
			}
			i++
			p.state = stateChunkExtensionQuotedValue
			continue

		case stateChunkExtensionFinished:
			p.state = stateChunkExtensionStart
			if !h.OnChunkExtensionFinished() {
				return i, OutcomeCallback, nil
			}
			continue

		case stateChunkExtensionsCR:
			p.state = stateChunkExtensionsLF
			if !h.OnChunkExtensionsFinished() {
				return i, OutcomeCallback, nil
			}
			continue

		case stateChunkExtensionsLF:
			var err *Error
			i, err = p.skipCRLF(buf, i)
			if err != nil {
				return i, 0, err
			}
			if i < 0 {
				return -i - 1, OutcomeEos, nil
			}
			if p.length == 0 {
				p.state = stateChunkTrailerHeaders
			} else {
				p.state = stateChunkData
			}
			continue

		case stateChunkData:
			start := i
			end := i + int(minU64(p.length, uint64(len(buf)-i)))
			if end > start {
				if !h.OnChunkData(buf[start:end]) {
					p.length -= uint64(end - start)
					return end, OutcomeCallback, nil
				}
				p.length -= uint64(end - start)
			}
			i = end
			if p.length > 0 {
				return i, OutcomeEos, nil
			}
			p.state = stateChunkDataCR
			continue

		case stateChunkDataCR:
			var err *Error
			i, err = p.skipCRLF(buf, i)
			if err != nil {
				return i, 0, err
			}
			if i < 0 {
				return -i - 1, OutcomeEos, nil
			}
			p.chunkLength = 0
			p.hexDigits = 0
			p.state = stateChunkLength
			continue

		case stateChunkTrailerHeaders:
			p.state = stateHeaderLineStart
			continue

		case stateHeaderLineStart, stateLowerHeaderName, stateStripHeaderValue,
			stateHeaderValue, stateHeaderQuotedValue, stateHeaderEscapedValue,
			stateHeaderValueCR, stateHeaderValueLF, stateHeaderValueLWS:
			var o Outcome
			var err *Error
			i, o, err = p.advanceHeaderBlock(buf, i, h)
			if err != nil {
				return i, 0, err
			}
			if o != outcomeContinue {
				return i, o, nil
			}
			continue

		case stateHeadersFinished:
			p.state = StateFinished
			if !h.OnBodyFinished() {
				return i, OutcomeCallback, nil
			}
			return i, OutcomeFinished, nil

		default:
			return i, 0, errp(badByte(0, ProductionChunkLength))
		}
	}
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
