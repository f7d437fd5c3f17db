// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

// State identifies a point in the HTTP/1 grammar that a Parser can be
// suspended at between two resume() calls. The numeric values are not
// part of the API contract, only the State type and the two terminal
// values (StateFinished, StateDead) are.
type State uint16

const (
	// StateDead is entered after any grammar error; only Reset() leaves it.
	StateDead State = iota
	// StateUninit is the state of a freshly constructed, un-initialized Parser.
	StateUninit
	// StateFinished is the terminal accepting state for the current mode.
	StateFinished

	// --- start line detection -------------------------------------------
	stateDetect1 // first byte of the start line
	stateDetect2 // matched 'H', expecting 'T'
	stateDetect3 // matched "HT", expecting 'T'
	stateDetect4 // matched "HTT", expecting 'P'
	stateDetect5 // matched "HTTP", expecting '/'

	// --- request line ----------------------------------------------------
	stateRequestMethod
	stateStripRequestURL
	stateRequestURL
	stateStripRequestHTTP
	stateRequestHTTP1
	stateRequestHTTP2
	stateRequestHTTP3
	stateRequestHTTP4
	stateRequestHTTP5
	stateRequestVersionMajor
	stateRequestVersionMinor
	stateRequestLineLF

	// --- response line -----------------------------------------------------
	stateResponseVersionMajor
	stateResponseVersionMinor
	stateStripResponseStatusCode
	stateResponseStatusCode
	stateStripResponseStatus
	stateResponseStatus
	stateResponseLineLF

	stateInitialEnd // on_initial_finished fires on entry, then falls to headers

	// --- headers (shared by head, trailers) -------------------------------
	stateHeaderLineStart // either CRLF (end of block) or a header name byte
	stateHeaderAlmostDone
	stateLowerHeaderName
	stateStripHeaderValue
	stateHeaderValue
	stateHeaderQuotedValue
	stateHeaderEscapedValue
	stateHeaderValueCR
	stateHeaderValueLF
	stateHeaderValueLWS // first byte after header CRLF: continuation or new header
	stateHeadersFinished

	// --- chunked body ------------------------------------------------------
	stateChunkLength
	stateChunkExtensionStart
	stateStripChunkExtensionName
	stateLowerChunkExtensionName
	stateStripChunkExtensionValue
	stateChunkExtensionValue
	stateChunkExtensionQuotedValue
	stateChunkExtensionEscapedValue
	stateChunkExtensionFinished
	stateChunkExtensionsCR
	stateChunkExtensionsLF
	stateChunkData
	stateChunkDataCR
	stateChunkDataLF
	stateChunkTrailerHeaders

	// --- multipart body ------------------------------------------------------
	stateMultipartPreambleHyphen1
	stateMultipartPreambleHyphen2
	stateMultipartBoundary
	stateMultipartBoundaryAlmostDone
	stateMultipartBoundaryCR
	stateMultipartBoundaryLF
	stateMultipartHeaders
	stateMultipartDataByByte
	stateMultipartDataCR
	stateMultipartDataLF
	stateMultipartDataHyphen1
	stateMultipartDataHyphen2
	stateMultipartDataBoundary
	stateMultipartDataAlmostDone
	stateMultipartDataFinalHyphen

	// --- url-encoded body ------------------------------------------------------
	stateURLEncodedBegin // on_url_encoded_begin fires on entry, then falls to name
	stateURLEncodedName
	stateURLEncodedNameHex1
	stateURLEncodedNameHex2
	stateURLEncodedValue
	stateURLEncodedValueHex1
	stateURLEncodedValueHex2

	stateBodyFinished
)

// Mode selects which grammar a Parser is configured to accept. Set by the
// corresponding InitXxx call.
type Mode uint8

const (
	// ModeNone marks a parser that has not been initialized yet.
	ModeNone Mode = iota
	// ModeHead parses a request or response start line + header block.
	ModeHead
	// ModeChunked parses a chunked-transfer-coding body (+ trailers).
	ModeChunked
	// ModeMultipart parses a multipart body delimited by a boundary.
	ModeMultipart
	// ModeURLEncoded parses a length-delimited application/x-www-form-urlencoded body.
	ModeURLEncoded
)
