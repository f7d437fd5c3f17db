// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package httpbox implements an incremental, allocation-free, resumable
// parser for HTTP/1.x messages: the request/response start line, the
// header block, chunked transfer coding, multipart bodies and
// URL-encoded bodies. See the httpbox/http2 subpackage for the HTTP/2
// frame parser.
//
// A Parser never buffers payload bytes internally: every recognized
// token is handed to a Handler as a borrowed slice of the input passed
// to Resume, valid only for the duration of that call. Callers drive
// the parser with Resume, feeding bytes in whatever chunks happen to be
// available (a single byte at a time, or an entire message at once)
// until it reports Finished, suspends on Eos (more bytes needed) or a
// Handler-requested Callback suspension, or returns an Error.
package httpbox

// outcomeContinue is an internal-only Outcome value: a phase function
// returns it to tell Resume's dispatcher that the parser moved into a
// different phase's states and should be re-entered with the same
// cursor, rather than returning control to the caller.
const outcomeContinue Outcome = 0xFF

// Parser is a single HTTP/1 finite-state machine instance. The zero
// value is not ready to use; call one of the InitXxx methods first.
//
// Parser holds only primitive fields (spec.md "Shared resources: none.
// Each parser owns only primitive fields"); it performs no allocation
// and retains no pointers beyond the duration of a single Resume call,
// except for the caller-supplied multipart boundary slice, which must
// outlive the multipart parsing phase.
type Parser struct {
	state State
	mode  Mode

	byteCount uint64

	// start-line scratch (spec.md "bit_data16a/bit_data16b"): version
	// numbers and the numeric status code, bounded at 999.
	verMajor   uint16
	verMinor   uint16
	digitCount uint8
	statusCode uint16

	// whether any request-method byte has been handed to OnMethod yet
	// for the start line in progress. Unlike digitCount (reset per
	// field as each field begins), this must survive every Resume call
	// across the whole method token, since a call boundary can fall
	// exactly on the byte after the last method byte.
	methodSeen bool

	// chunked-body scratch: hex chunk-size accumulator and digit count,
	// bounded at 2^32-1 (a 9th hex digit overflows).
	chunkLength uint64
	hexDigits   uint8

	// length-delimited sub-phases: remaining bytes of the current run
	// (chunk data, or the configured URL-encoded body length).
	length       uint64
	totalLength  uint64
	totalLengthSet bool

	// multipart: borrowed boundary (without the leading "--") and how
	// far into it the current partial match has progressed.
	boundary    []byte
	boundaryPos int

	// a %XX escape in progress (url-encoded name/value), first nibble.
	hexHi byte

	// whether stateHeaderLineStart (generic header-block grammar) was
	// entered for request/response headers, chunk trailers, or a
	// multipart part's headers. InitHead sets it and nothing reads it:
	// what follows OnHeadersFinished is decided by the step function of
	// the current mode.
	headerContext headerContext
}

type headerContext uint8

const (
	headerContextNone headerContext = iota
	headerContextHead
	headerContextTrailer
	headerContextMultipart
)

// NewParser returns an uninitialized Parser; call an InitXxx method
// before Resume.
func NewParser() *Parser {
	return &Parser{state: StateUninit}
}

// InitHead configures p to parse a request or response start line
// followed by a header block. The parser auto-detects request vs.
// response from the first byte: 'H' begins matching the literal
// "HTTP/" response-version prefix, any other token byte begins a
// request method.
func (p *Parser) InitHead() {
	p.Reset()
	p.mode = ModeHead
	p.state = stateDetect1
	p.headerContext = headerContextHead
}

// InitChunked configures p to parse a chunked-transfer-encoding body,
// including optional chunk extensions and trailers.
func (p *Parser) InitChunked() {
	p.Reset()
	p.mode = ModeChunked
	p.state = stateChunkLength
}

// InitMultipart configures p to parse a multipart body delimited by
// "--" + boundary + optional "--" terminator. boundary is borrowed and
// must outlive the multipart parsing phase (spec.md §5).
func (p *Parser) InitMultipart(boundary []byte) {
	p.Reset()
	p.mode = ModeMultipart
	p.boundary = boundary
	p.state = stateMultipartPreambleHyphen1
}

// InitURLEncoded configures p to parse a length-delimited
// application/x-www-form-urlencoded body. SetLength must be called
// before the first Resume call.
func (p *Parser) InitURLEncoded() {
	p.Reset()
	p.mode = ModeURLEncoded
	p.state = stateURLEncodedBegin
}

// SetLength configures the total body length for ModeURLEncoded. It
// must be called once, after InitURLEncoded and before the first
// Resume.
func (p *Parser) SetLength(n uint64) {
	p.totalLength = n
	p.totalLengthSet = true
	p.length = n
}

// State returns the parser's current state, for debugging and for
// composite parsers that need to verify position between resumes.
func (p *Parser) State() State { return p.state }

// ByteCount returns the total number of bytes consumed across all
// Resume calls since the last Reset/Init.
func (p *Parser) ByteCount() uint64 { return p.byteCount }

// Reset returns p to an uninitialized state, ready for a fresh
// InitXxx call. It is the only way to leave StateDead after an error.
func (p *Parser) Reset() {
	*p = Parser{state: StateUninit}
}

// Resume drives the FSM over input, calling back into h as grammatical
// tokens are recognized, until one of three things happens: the
// grammar for the configured mode reaches its accepting state
// (Result.Finished()), input is exhausted and more bytes are needed
// (Result.Eos()), or h returned false from some callback
// (Result.Callback()). Result.N is always the number of bytes of input
// consumed before returning.
//
// On a grammar error, Resume returns a non-nil Error identifying the
// offending byte and production; p enters StateDead and only Reset
// makes it usable again.
func (p *Parser) Resume(h Handler, input []byte) (Result, error) {
	if h == nil {
		h = NopHandler{}
	}
	var (
		i   int
		o   Outcome
		err *Error
	)
	for {
		switch p.mode {
		case ModeHead:
			i, o, err = p.stepHead(input, i, h)
		case ModeChunked:
			i, o, err = p.stepChunked(input, i, h)
		case ModeMultipart:
			i, o, err = p.stepMultipart(input, i, h)
		case ModeURLEncoded:
			i, o, err = p.stepURLEncoded(input, i, h)
		default:
			p.byteCount += uint64(i)
			e := badByte(0, ProductionNone)
			return Result{N: i}, e
		}
		if err != nil {
			p.state = StateDead
			p.byteCount += uint64(i)
			return Result{N: i}, *err
		}
		if o == outcomeContinue {
			continue
		}
		p.byteCount += uint64(i)
		return Result{Outcome: o, N: i}, nil
	}
}
