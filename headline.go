// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

// stepHead drives the request/response start line, then the header
// block, for ModeHead. It is re-entrant across Resume calls: p.state
// captures exactly where to continue.
func (p *Parser) stepHead(buf []byte, i int, h Handler) (int, Outcome, *Error) {
	for {
		switch p.state {
		case stateDetect1:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] == 'H' {
				p.state = stateDetect2
				i++
				continue
			}
			// any other token byte begins a request method
			p.state = stateRequestMethod
			continue

		case stateDetect2, stateDetect3, stateDetect4, stateDetect5:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			want := "TTP/"[int(p.state-stateDetect2)]
			if buf[i] != want {
				return i, 0, errp(badByte(buf[i], ProductionVersion))
			}
			i++
			if p.state == stateDetect5 {
				p.state = stateResponseVersionMajor
				p.digitCount = 0
				p.verMajor = 0
			} else {
				p.state++
			}
			continue

		// --- request line ------------------------------------------------
		case stateRequestMethod:
			start := i
			i = runEnd(buf, i, &isTokenByte)
			if i > start {
				p.methodSeen = true
				if !h.OnMethod(buf[start:i]) {
					return i, OutcomeCallback, nil
				}
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != ' ' {
				return i, 0, errp(badByte(buf[i], ProductionMethod))
			}
			if !p.methodSeen {
				return i, 0, errp(badByte(buf[i], ProductionMethod))
			}
			i++ // skip SP
			p.state = stateStripRequestURL
			continue

		case stateStripRequestURL:
			i = runEnd(buf, i, &isWSByte)
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			p.state = stateRequestURL
			continue

		case stateRequestURL:
			start := i
			i = runEnd(buf, i, &isVisible7Bit)
			if i > start {
				if !h.OnURL(buf[start:i]) {
					return i, OutcomeCallback, nil
				}
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != ' ' {
				return i, 0, errp(badByte(buf[i], ProductionURL))
			}
			i++
			p.state = stateStripRequestHTTP
			continue

		case stateStripRequestHTTP:
			i = runEnd(buf, i, &isWSByte)
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			p.state = stateRequestHTTP1
			continue

		case stateRequestHTTP1, stateRequestHTTP2, stateRequestHTTP3,
			stateRequestHTTP4, stateRequestHTTP5:
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			want := "HTTP/"[int(p.state-stateRequestHTTP1)]
			if buf[i] != want {
				return i, 0, errp(badByte(buf[i], ProductionVersion))
			}
			i++
			if p.state == stateRequestHTTP5 {
				p.state = stateRequestVersionMajor
				p.digitCount = 0
				p.verMajor = 0
			} else {
				p.state++
			}
			continue

		case stateRequestVersionMajor:
			var err *Error
			i, err = p.scanBoundedDigits(buf, i, &p.verMajor, 3, ProductionVersion)
			if err != nil {
				return i, 0, err
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != '.' {
				return i, 0, errp(badByte(buf[i], ProductionVersion))
			}
			i++
			p.state = stateRequestVersionMinor
			p.digitCount = 0
			p.verMinor = 0
			continue

		case stateRequestVersionMinor:
			var err *Error
			i, err = p.scanBoundedDigits(buf, i, &p.verMinor, 3, ProductionVersion)
			if err != nil {
				return i, 0, err
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != '\r' && buf[i] != '\n' {
				return i, 0, errp(badByte(buf[i], ProductionVersion))
			}
			if !h.OnVersion(p.verMajor, p.verMinor) {
				return i, OutcomeCallback, nil
			}
			p.state = stateRequestLineLF
			continue

		case stateRequestLineLF:
			var err *Error
			i, err = p.skipCRLF(buf, i)
			if err != nil {
				return i, 0, err
			}
			if i < 0 {
				return -i - 1, OutcomeEos, nil
			}
			p.state = stateInitialEnd
			continue

		// --- response line -------------------------------------------------
		case stateResponseVersionMajor:
			for {
				if i >= len(buf) {
					return i, OutcomeEos, nil
				}
				b := buf[i]
				if b == '.' {
					i++
					p.state = stateResponseVersionMinor
					p.digitCount = 0
					p.verMinor = 0
					break
				}
				if b == ' ' {
					// "HTTP/2" style: no minor version present
					i++
					p.verMinor = 0
					if !h.OnVersion(p.verMajor, p.verMinor) {
						return i, OutcomeCallback, nil
					}
					p.state = stateStripResponseStatusCode
					break
				}
				if b < '0' || b > '9' {
					return i, 0, errp(badByte(b, ProductionVersion))
				}
				if p.digitCount >= 3 {
					return i, 0, errp(overflow(b, ProductionVersion))
				}
				p.verMajor = p.verMajor*10 + uint16(b-'0')
				p.digitCount++
				i++
			}
			continue

		case stateResponseVersionMinor:
			var err *Error
			i, err = p.scanBoundedDigits(buf, i, &p.verMinor, 3, ProductionVersion)
			if err != nil {
				return i, 0, err
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			if buf[i] != ' ' {
				return i, 0, errp(badByte(buf[i], ProductionVersion))
			}
			i++
			if !h.OnVersion(p.verMajor, p.verMinor) {
				return i, OutcomeCallback, nil
			}
			p.state = stateStripResponseStatusCode
			continue

		case stateStripResponseStatusCode:
			i = runEnd(buf, i, &isWSByte)
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			p.state = stateResponseStatusCode
			p.digitCount = 0
			p.statusCode = 0
			continue

		case stateResponseStatusCode:
			for {
				if i >= len(buf) {
					return i, OutcomeEos, nil
				}
				b := buf[i]
				if p.digitCount == 3 {
					if b >= '0' && b <= '9' {
						return i, 0, errp(overflow(b, ProductionStatusCode))
					}
					if b != ' ' {
						return i, 0, errp(badByte(b, ProductionStatusCode))
					}
					i++
					if !h.OnStatusCode(p.statusCode) {
						return i, OutcomeCallback, nil
					}
					p.state = stateStripResponseStatus
					break
				}
				if b < '0' || b > '9' {
					return i, 0, errp(badByte(b, ProductionStatusCode))
				}
				p.statusCode = p.statusCode*10 + uint16(b-'0')
				p.digitCount++
				i++
			}
			continue

		case stateStripResponseStatus:
			i = runEnd(buf, i, &isWSByte)
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			p.state = stateResponseStatus
			continue

		case stateResponseStatus:
			start := i
			for i < len(buf) && buf[i] != '\r' && buf[i] != '\n' {
				i++
			}
			if i > start {
				if !h.OnStatus(buf[start:i]) {
					return i, OutcomeCallback, nil
				}
			}
			if i >= len(buf) {
				return i, OutcomeEos, nil
			}
			p.state = stateResponseLineLF
			continue

		case stateResponseLineLF:
			var err *Error
			i, err = p.skipCRLF(buf, i)
			if err != nil {
				return i, 0, err
			}
			if i < 0 {
				return -i - 1, OutcomeEos, nil
			}
			p.state = stateInitialEnd
			continue

		case stateInitialEnd:
			p.state = stateHeaderLineStart
			if !h.OnInitialFinished() {
				return i, OutcomeCallback, nil
			}
			continue

		// --- header block --------------------------------------------------
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
			p.state = StateFinished
			return i, OutcomeFinished, nil

		default:
			return i, 0, errp(badByte(0, ProductionNone))
		}
	}
}

// scanBoundedDigits accumulates ASCII decimal digits from buf[i:] into
// *acc, up to max digits total (counted in p.digitCount, which the
// caller resets before the first call for a given field). It stops
// (without consuming) at the first non-digit byte. A (max+1)-th digit
// is an overflow error reporting that digit.
func (p *Parser) scanBoundedDigits(buf []byte, i int, acc *uint16, max uint8, prod Production) (int, *Error) {
	for i < len(buf) {
		b := buf[i]
		if b < '0' || b > '9' {
			return i, nil
		}
		if p.digitCount >= max {
			return i, errp(overflow(b, prod))
		}
		*acc = *acc*10 + uint16(b-'0')
		p.digitCount++
		i++
	}
	return i, nil
}

// skipCRLF consumes a "\r\n" or a lone "\n" starting at buf[i]. On
// success it returns the offset right after the line terminator. If
// buf is exhausted before the terminator is fully seen it returns a
// negative sentinel -(n+1), n being the offset consumed so far, so the
// caller can recover the Eos offset without a separate bool. A '\r'
// that is the last byte of buf is consumed; the caller stays in its
// state and the next Resume call takes the '\n' that follows as a lone
// line terminator.
func (p *Parser) skipCRLF(buf []byte, i int) (int, *Error) {
	if i >= len(buf) {
		return -(i + 1), nil
	}
	if buf[i] == '\n' {
		return i + 1, nil
	}
	if buf[i] != '\r' {
		return i, errp(badByte(buf[i], ProductionVersion))
	}
	if i+1 >= len(buf) {
		return -(i + 2), nil
	}
	if buf[i+1] != '\n' {
		return i, errp(badByte(buf[i+1], ProductionVersion))
	}
	return i + 2, nil
}

func errp(e Error) *Error { return &e }
