// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

import "github.com/intuitivelabs/bytescase"

// Character classes used throughout the HTTP/1 FSM (spec.md §4.1,
// GLOSSARY). Tables are indexed by byte value, branch-light on purpose:
// a single array load replaces a chain of range comparisons in the hot
// per-byte loop.

var isTokenByte [256]bool
var isVisible7Bit [256]bool
var isHeaderFieldByte [256]bool
var isQuotedHeaderFieldByte [256]bool
var isHexDigit [256]bool
var isWSByte [256]bool
var isURLEncodedPlainByte [256]bool
var isURLEncodedPlainByteValue [256]bool

func init() {
	// token = 1*tchar, tchar per RFC 7230 3.2.6:
	//   "!" / "#" / "$" / "%" / "&" / "'" / "*" / "+" / "-" / "." /
	//   "^" / "_" / "`" / "|" / "~" / DIGIT / ALPHA
	const tchar = "!#$%&'*+-.^_`|~"
	for _, c := range []byte(tchar) {
		isTokenByte[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		isTokenByte[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		isTokenByte[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		isTokenByte[c] = true
	}

	for c := 0x21; c <= 0x7E; c++ {
		isVisible7Bit[c] = true
	}

	for c := 0; c < 256; c++ {
		isHeaderFieldByte[c] = isVisible7Bit[c]
	}
	isHeaderFieldByte[' '] = true
	isHeaderFieldByte['\t'] = true

	for c := 0x20; c <= 0x7E; c++ {
		isQuotedHeaderFieldByte[c] = true
	}
	isQuotedHeaderFieldByte['"'] = false
	isQuotedHeaderFieldByte['\\'] = false

	for c := '0'; c <= '9'; c++ {
		isHexDigit[c] = true
	}
	for c := 'a'; c <= 'f'; c++ {
		isHexDigit[c] = true
	}
	for c := 'A'; c <= 'F'; c++ {
		isHexDigit[c] = true
	}

	isWSByte[' '] = true
	isWSByte['\t'] = true

	for c := 0; c < 256; c++ {
		isURLEncodedPlainByte[c] = isVisible7Bit[c]
	}
	isURLEncodedPlainByte['%'] = false
	isURLEncodedPlainByte['+'] = false
	isURLEncodedPlainByte['='] = false
	isURLEncodedPlainByte['&'] = false
	isURLEncodedPlainByte[';'] = false

	// UrlEncodedValue accepts the same bytes as UrlEncodedName, minus the
	// "=" special case (spec.md "UrlEncodedValue (same rules without
	// `=`)"): "=" has no transition meaning here, so it is ordinary value
	// content rather than a rejected byte.
	for c := 0; c < 256; c++ {
		isURLEncodedPlainByteValue[c] = isURLEncodedPlainByte[c]
	}
	isURLEncodedPlainByteValue['='] = true
}

// IsToken reports whether b is a valid RFC 7230 token byte.
func IsToken(b byte) bool { return isTokenByte[b] }

// IsVisible7Bit reports whether b is in 0x21-0x7E.
func IsVisible7Bit(b byte) bool { return isVisible7Bit[b] }

// IsHeaderFieldByte reports whether b is valid inside an unquoted header
// value: visible-7bit, SP or HTAB.
func IsHeaderFieldByte(b byte) bool { return isHeaderFieldByte[b] }

// IsQuotedHeaderFieldByte reports whether b is valid inside a quoted
// header value (0x20-0x7E minus `"` and `\`).
func IsQuotedHeaderFieldByte(b byte) bool { return isQuotedHeaderFieldByte[b] }

// IsHexDigit reports whether b is an ASCII hex digit, case-insensitive.
func IsHexDigit(b byte) bool { return isHexDigit[b] }

// hexVal returns the numeric value of an ASCII hex digit; the caller
// must have already validated b with IsHexDigit.
func hexVal(b byte) uint32 {
	switch {
	case b >= '0' && b <= '9':
		return uint32(b - '0')
	case b >= 'a' && b <= 'f':
		return uint32(b-'a') + 10
	default: // 'A'-'F'
		return uint32(b-'A') + 10
	}
}

// foldLower lower-cases a single ASCII upper-case byte; used for
// emission-time case folding of header names and chunk extension names
// (spec.md §9 "Case folding on emission").
func foldLower(b byte) byte {
	return bytescase.ByteToLower(b)
}

// emitFolded walks buf[start:end], lower-casing ASCII upper-case bytes,
// and calls emit with maximal runs that need no folding directly (no
// copy) and single-byte scratch slices for the bytes that do. It is
// the "stream-level folding" option spec.md §9 describes for case
// folding on emission, chosen because it needs no buffer to hold a
// folded copy of an arbitrary-length run.
// emitFolded returns the offset up to which bytes were actually handed
// to emit (always advanced past whatever was last delivered, win or
// lose) and whether every segment's emit call returned true. Tracking
// the stop position this way keeps a false-returning emit mid-run from
// silently dropping the bytes that triggered it: the caller's resume
// offset must cover exactly what was delivered, not the whole run.
func emitFolded(buf []byte, start, end int, emit func([]byte) bool) (int, bool) {
	i := start
	for i < end {
		if buf[i] >= 'A' && buf[i] <= 'Z' {
			var tmp [1]byte
			tmp[0] = foldLower(buf[i])
			i++
			if !emit(tmp[:]) {
				return i, false
			}
			continue
		}
		j := i
		for j < end && !(buf[j] >= 'A' && buf[j] <= 'Z') {
			j++
		}
		ok := emit(buf[i:j])
		i = j
		if !ok {
			return i, false
		}
	}
	return i, true
}

// runEnd scans buf[i:] and returns the offset of the first byte for which
// class(b) is false (or len(buf) if the whole remainder matches). This is
// the "collect a maximal run" optimization spec.md §9 describes: within
// any state that accepts a whole character class, consume the run in one
// pass instead of transitioning byte by byte.
func runEnd(buf []byte, i int, class *[256]bool) int {
	for i < len(buf) && class[buf[i]] {
		i++
	}
	return i
}

// runEndBounded is runEnd limited to at most max further bytes, for
// scanning a run within a length-delimited sub-phase (the URL-encoded
// body's configured length).
func runEndBounded(buf []byte, i int, max uint64, class *[256]bool) int {
	limit := len(buf)
	if uint64(limit-i) > max {
		limit = i + int(max)
	}
	for i < limit && class[buf[i]] {
		i++
	}
	return i
}
