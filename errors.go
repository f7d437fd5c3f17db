// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

import "fmt"

// Production identifies the grammar production a byte-level Error was
// raised from. It lets a caller build a message without string-matching
// the first line of Error() or branch on the failure class.
type Production uint8

const (
	ProductionNone Production = iota
	ProductionMethod
	ProductionURL
	ProductionVersion
	ProductionStatus
	ProductionStatusCode
	ProductionHeaderName
	ProductionHeaderValue
	ProductionChunkLength
	ProductionChunkExtensionName
	ProductionChunkExtensionValue
	ProductionURLEncodedName
	ProductionURLEncodedValue
	ProductionHexSequence
	ProductionMultipartBoundary
)

var productionNames = [...]string{
	ProductionNone:                 "none",
	ProductionMethod:               "method",
	ProductionURL:                  "url",
	ProductionVersion:              "version",
	ProductionStatus:               "status",
	ProductionStatusCode:           "status code",
	ProductionHeaderName:           "header name",
	ProductionHeaderValue:          "header value",
	ProductionChunkLength:          "chunk length",
	ProductionChunkExtensionName:   "chunk extension name",
	ProductionChunkExtensionValue:  "chunk extension value",
	ProductionURLEncodedName:       "url-encoded name",
	ProductionURLEncodedValue:      "url-encoded value",
	ProductionHexSequence:          "hex sequence",
	ProductionMultipartBoundary:    "multipart boundary",
}

// String implements fmt.Stringer.
func (p Production) String() string {
	if int(p) < len(productionNames) {
		return productionNames[p]
	}
	return "unknown production"
}

// ErrorKind distinguishes a byte-level grammar violation from a
// quantitative overflow (spec.md §7).
type ErrorKind uint8

const (
	// ErrByteViolation: the offending byte failed its class check.
	ErrByteViolation ErrorKind = iota
	// ErrOverflow: a bounded numeric value (version, status code, chunk
	// length) would exceed its maximum with the next digit.
	ErrOverflow
)

// Error is returned by Parser.Resume on any grammar violation. It carries
// enough information to reproduce spec.md's "error minimality" property:
// the offending byte and the production it was rejected from.
type Error struct {
	Kind       ErrorKind
	Production Production
	Byte       byte
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Kind == ErrOverflow {
		return fmt.Sprintf("httpbox: %s overflow at byte %q", e.Production, e.Byte)
	}
	return fmt.Sprintf("httpbox: invalid byte %q in %s", e.Byte, e.Production)
}

func badByte(b byte, p Production) Error {
	return Error{Kind: ErrByteViolation, Production: p, Byte: b}
}

func overflow(b byte, p Production) Error {
	return Error{Kind: ErrOverflow, Production: p, Byte: b}
}

// Sentinel overflow errors referenced by spec.md's error enumeration;
// kept as values (not just Production tags) since they carry no offending
// byte of their own when raised at end-of-run instead of on the next digit.
var (
	// ErrMaxChunkLength describes a chunk length that would exceed
	// 2^32-1. Resume does not return this value: it reports that overflow
	// as an Error of the same Kind and Production carrying the offending
	// digit byte.
	ErrMaxChunkLength = Error{Kind: ErrOverflow, Production: ProductionChunkLength}
	// ErrMaxHeadersLength describes a header block exceeding a size
	// limit. The core has no such limit and nothing in this module
	// returns it; consumer.HeaderAssembler's MaxHeaderBytes budget has
	// its own consumer.ErrMaxHeaderBytes.
	ErrMaxHeadersLength = Error{Kind: ErrOverflow, Production: ProductionHeaderName}
)
