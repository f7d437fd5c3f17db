// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

// stepURLEncoded drives ModeURLEncoded: exactly p.length raw bytes of
// application/x-www-form-urlencoded content, decoded in place as it is
// recognized -- "%XX" escapes and "+" folded to space -- and handed to
// the handler as name/value slices, never accumulated internally
// (spec.md §4.1 "URL-encoded body").
func (p *Parser) stepURLEncoded(buf []byte, i int, h Handler) (int, Outcome, *Error) {
	for {
		switch p.state {
		case stateURLEncodedBegin:
			if p.length == 0 {
				p.state = stateBodyFinished
			} else {
				p.state = stateURLEncodedName
			}
			if !h.OnURLEncodedBegin() {
				return i, OutcomeCallback, nil
			}
			continue

		case stateURLEncodedName:
			if p.length == 0 {
				p.state = stateBodyFinished
				continue
			}
			start := i
			end := runEndBounded(buf, i, p.length, &isURLEncodedPlainByte)
			if end > start {
				if !h.OnURLEncodedName(buf[start:end]) {
					p.length -= uint64(end - start)
					return end, OutcomeCallback, nil
				}
				p.length -= uint64(end - start)
			}
			i = end
			if p.length == 0 {
				p.state = stateBodyFinished
				continue
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			switch buf[i] {
			case '%':
				i++
				p.length--
				p.state = stateURLEncodedNameHex1
			case '+':
				var sp [1]byte
				sp[0] = ' '
				i++
				p.length--
				if !h.OnURLEncodedName(sp[:]) {
					return i, OutcomeCallback, nil
				}
			case '=':
				i++
				p.length--
				p.state = stateURLEncodedValue
			case '&', ';':
				i++
				p.length--
				p.state = stateURLEncodedName
			default:
				return i, 0, errp(badByte(buf[i], ProductionURLEncodedName))
			}
			continue

		case stateURLEncodedNameHex1:
			if p.length == 0 {
				return i, 0, errp(overflow(0, ProductionHexSequence))
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			b := buf[i]
			if !isHexDigit[b] {
				return i, 0, errp(badByte(b, ProductionHexSequence))
			}
			p.hexHi = b
			i++
			p.length--
			p.state = stateURLEncodedNameHex2
			continue

		case stateURLEncodedNameHex2:
			if p.length == 0 {
				return i, 0, errp(overflow(0, ProductionHexSequence))
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			b := buf[i]
			if !isHexDigit[b] {
				return i, 0, errp(badByte(b, ProductionHexSequence))
			}
			var decoded [1]byte
			decoded[0] = byte(hexVal(p.hexHi)<<4 | hexVal(b))
			i++
			p.length--
			p.state = stateURLEncodedName
			if !h.OnURLEncodedName(decoded[:]) {
				return i, OutcomeCallback, nil
			}
			continue

		case stateURLEncodedValue:
			if p.length == 0 {
				p.state = stateBodyFinished
				continue
			}
			start := i
			end := runEndBounded(buf, i, p.length, &isURLEncodedPlainByteValue)
			if end > start {
				if !h.OnURLEncodedValue(buf[start:end]) {
					p.length -= uint64(end - start)
					return end, OutcomeCallback, nil
				}
				p.length -= uint64(end - start)
			}
			i = end
			if p.length == 0 {
				p.state = stateBodyFinished
				continue
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			switch buf[i] {
			case '%':
				i++
				p.length--
				p.state = stateURLEncodedValueHex1
			case '+':
				var sp [1]byte
				sp[0] = ' '
				i++
				p.length--
				if !h.OnURLEncodedValue(sp[:]) {
					return i, OutcomeCallback, nil
				}
			case '&', ';':
				i++
				p.length--
				p.state = stateURLEncodedName
			default:
				return i, 0, errp(badByte(buf[i], ProductionURLEncodedValue))
			}
			continue

		case stateURLEncodedValueHex1:
			if p.length == 0 {
				return i, 0, errp(overflow(0, ProductionHexSequence))
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			b := buf[i]
			if !isHexDigit[b] {
				return i, 0, errp(badByte(b, ProductionHexSequence))
			}
			p.hexHi = b
			i++
			p.length--
			p.state = stateURLEncodedValueHex2
			continue

		case stateURLEncodedValueHex2:
			if p.length == 0 {
				return i, 0, errp(overflow(0, ProductionHexSequence))
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			b := buf[i]
			if !isHexDigit[b] {
				return i, 0, errp(badByte(b, ProductionHexSequence))
			}
			var decoded [1]byte
			decoded[0] = byte(hexVal(p.hexHi)<<4 | hexVal(b))
			i++
			p.length--
			p.state = stateURLEncodedValue
			if !h.OnURLEncodedValue(decoded[:]) {
				return i, OutcomeCallback, nil
			}
			continue

		case stateBodyFinished:
			p.state = StateFinished
			if !h.OnBodyFinished() {
				return i, OutcomeCallback, nil
			}
			return i, OutcomeFinished, nil

		default:
			return i, 0, errp(badByte(0, ProductionURLEncodedName))
		}
	}
}
