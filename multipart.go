// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

// stepMultipart drives ModeMultipart: the opening "--boundary" delimiter,
// a sequence of parts (each a header block via advanceHeaderBlock
// followed by a data run watched for the next "\r\n--boundary"), and the
// closing "--boundary--" terminator (spec.md §4.1 "Multipart body").
//
// A boundary occurrence inside a part's data is recognized byte by byte
// against p.boundary; on a mismatch, the bytes provisionally consumed
// while attempting the match are re-emitted as data via OnMultipartData
// (spec.md "A false boundary ... must be re-emitted as data"). Those
// bytes are always exactly "\r\n--" plus a known-length prefix of
// p.boundary, so they can be reconstructed even when the mismatch is
// only discovered on a later Resume call with a different input slice.
func (p *Parser) stepMultipart(buf []byte, i int, h Handler) (int, Outcome, *Error) {
	for {
		switch p.state {
		case stateMultipartPreambleHyphen1:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != '-' {
				return i, 0, errp(badByte(buf[i], ProductionMultipartBoundary))
			}
			i++
			p.state = stateMultipartPreambleHyphen2
			continue

		case stateMultipartPreambleHyphen2:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != '-' {
				return i, 0, errp(badByte(buf[i], ProductionMultipartBoundary))
			}
			i++
			p.boundaryPos = 0
			p.state = stateMultipartBoundary
			continue

		case stateMultipartBoundary:
			for p.boundaryPos < len(p.boundary) {
				if i >= len(buf) {
					return i, OutcomeEos, nil
				}
				if buf[i] != p.boundary[p.boundaryPos] {
					return i, 0, errp(badByte(buf[i], ProductionMultipartBoundary))
				}
				i++
				p.boundaryPos++
			}
			p.state = stateMultipartBoundaryAlmostDone
			continue

		case stateMultipartBoundaryAlmostDone:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == '-' {
				i++
				p.state = stateMultipartDataFinalHyphen
				continue
			}
			p.state = stateMultipartBoundaryCR
			continue

		case stateMultipartBoundaryCR:
			var err *Error
			i, err = p.skipCRLF(buf, i)
			if err != nil {
				return i, 0, err
			}
			if i < 0 {
				return -i - 1, OutcomeEos, nil
			}
			p.state = stateMultipartHeaders
			continue

		case stateMultipartHeaders:
			p.state = stateHeaderLineStart
			if !h.OnMultipartBegin() {
				return i, OutcomeCallback, nil
			}
			continue

		case stateHeaderLineStart, stateLowerHeaderName, stateStripHeaderValue,
			stateHeaderValue, stateHeaderQuotedValue, stateHeaderEscapedValue,
			stateHeaderValueCR, stateHeaderValueLF, stateHeaderValueLWS:
			var err *Error
			var o Outcome
			i, o, err = p.advanceHeaderBlock(buf, i, h)
			if err != nil {
				return i, 0, err
			}
			if o != outcomeContinue {
				return i, o, nil
			}
			continue

		case stateHeadersFinished:
			p.state = stateMultipartDataByByte
			continue

		case stateMultipartDataByByte:
			start := i
			i = scanUntilByte(buf, i, '\r')
			if i > start {
				if !h.OnMultipartData(buf[start:i]) {
					return i, OutcomeCallback, nil
				}
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			i++ // tentatively consume '\r', not yet emitted
			p.state = stateMultipartDataCR
			continue

		case stateMultipartDataCR:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != '\n' {
				if !emitLiteral(h.OnMultipartData, crlfHyphens[:1]) {
					return i, OutcomeCallback, nil
				}
				p.state = stateMultipartDataByByte
				continue
			}
			i++
			p.state = stateMultipartDataHyphen1
			continue

		case stateMultipartDataHyphen1:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != '-' {
				if !emitLiteral(h.OnMultipartData, crlfHyphens[:2]) {
					return i, OutcomeCallback, nil
				}
				p.state = stateMultipartDataByByte
				continue
			}
			i++
			p.state = stateMultipartDataHyphen2
			continue

		case stateMultipartDataHyphen2:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != '-' {
				if !emitLiteral(h.OnMultipartData, crlfHyphens[:3]) {
					return i, OutcomeCallback, nil
				}
				p.state = stateMultipartDataByByte
				continue
			}
			i++
			p.boundaryPos = 0
			p.state = stateMultipartDataBoundary
			continue

		case stateMultipartDataBoundary:
			for p.boundaryPos < len(p.boundary) {
				if i >= len(buf) {
					return i, OutcomeEos, nil
				}
				if buf[i] != p.boundary[p.boundaryPos] {
					if !emitLiteral(h.OnMultipartData, crlfHyphens[:4]) {
						return i, OutcomeCallback, nil
					}
					if p.boundaryPos > 0 {
						if !h.OnMultipartData(p.boundary[:p.boundaryPos]) {
							return i, OutcomeCallback, nil
						}
					}
					p.state = stateMultipartDataByByte
					break
				}
				i++
				p.boundaryPos++
			}
			if p.state == stateMultipartDataBoundary && p.boundaryPos == len(p.boundary) {
				p.state = stateMultipartDataAlmostDone
			}
			continue

		case stateMultipartDataAlmostDone:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == '-' {
				i++
				p.state = stateMultipartDataFinalHyphen
				continue
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
				p.state = stateMultipartHeaders
				continue
			}
			return i, 0, errp(badByte(buf[i], ProductionMultipartBoundary))

		case stateMultipartDataFinalHyphen:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != '-' {
				return i, 0, errp(badByte(buf[i], ProductionMultipartBoundary))
			}
			i++
			p.state = StateFinished
			if !h.OnBodyFinished() {
				return i, OutcomeCallback, nil
			}
			return i, OutcomeFinished, nil

		default:
			return i, 0, errp(badByte(0, ProductionMultipartBoundary))
		}
	}
}

// scanUntilByte returns the offset of the first occurrence of b in
// buf[i:], or len(buf) if none is found.
func scanUntilByte(buf []byte, i int, b byte) int {
	for i < len(buf) && buf[i] != b {
		i++
	}
	return i
}

// crlfHyphens is the fixed literal a false multipart boundary match can
// diverge after: "\r\n--". Slicing a prefix of this static array re-emits
// exactly the bytes provisionally consumed so far, without allocating.
var crlfHyphens = [4]byte{'\r', '\n', '-', '-'}

// emitLiteral hands a prefix of a known static literal to emit as a
// single borrowed slice, for re-emitting a false boundary's fixed
// literal prefix as ordinary part data.
func emitLiteral(emit func([]byte) bool, lit []byte) bool {
	return emit(lit)
}
