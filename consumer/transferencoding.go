// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package consumer

import (
	"bytes"

	"github.com/intuitivelabs/bytescase"
)

// TransferCoding is a parsed Transfer-Encoding/TE token, classified per
// RFC 7230 §4 and the IANA HTTP transfer-coding registry.
type TransferCoding uint

const (
	TransferCodingNone     TransferCoding = 0
	TransferCodingChunked  TransferCoding = 1 << iota
	TransferCodingCompress
	TransferCodingDeflate
	TransferCodingGzip
	TransferCodingIdentity
	TransferCodingTrailers  // not an actual encoding, only valid in TE
	TransferCodingXCompress // obsolete
	TransferCodingXGzip     // obsolete
	TransferCodingOther     // unknown/unrecognized token
)

var transferCodingNames = map[TransferCoding]string{
	TransferCodingNone:      "none",
	TransferCodingChunked:   "chunked",
	TransferCodingCompress:  "compress",
	TransferCodingDeflate:   "deflate",
	TransferCodingGzip:      "gzip",
	TransferCodingIdentity:  "identity",
	TransferCodingTrailers:  "trailers",
	TransferCodingXCompress: "x-compress",
	TransferCodingXGzip:     "x-gzip",
	TransferCodingOther:     "other",
}

func (c TransferCoding) String() string {
	if name, ok := transferCodingNames[c]; ok {
		return name
	}
	return "other"
}

// ClassifyTransferCoding maps a single Transfer-Encoding/TE list token
// (as split out of a header value by parameter.Iterator or a caller's
// own comma-splitting) to its TransferCoding flag.
func ClassifyTransferCoding(token []byte) TransferCoding {
	switch len(token) {
	case 4:
		if bytescase.CmpEq(token, []byte("gzip")) {
			return TransferCodingGzip
		}
	case 6:
		if bytescase.CmpEq(token, []byte("x-gzip")) {
			return TransferCodingXGzip
		}
	case 7:
		if bytescase.CmpEq(token, []byte("chunked")) {
			return TransferCodingChunked
		}
		if bytescase.CmpEq(token, []byte("deflate")) {
			return TransferCodingDeflate
		}
	case 8:
		if bytescase.CmpEq(token, []byte("compress")) {
			return TransferCodingCompress
		}
		if bytescase.CmpEq(token, []byte("identity")) {
			return TransferCodingIdentity
		}
		if bytescase.CmpEq(token, []byte("trailers")) {
			return TransferCodingTrailers
		}
	case 10:
		if bytescase.CmpEq(token, []byte("x-compress")) {
			return TransferCodingXCompress
		}
	}
	return TransferCodingOther
}

// TransferCodings scans an assembled header block for Transfer-Encoding
// (and TE) fields and classifies each comma-separated token, in order.
// Header names in fields are expected already lower-cased, as
// HeaderAssembler.Fields produces.
func TransferCodings(fields []HeaderField) []TransferCoding {
	var codings []TransferCoding
	for _, f := range fields {
		if f.Name != "transfer-encoding" && f.Name != "te" {
			continue
		}
		for _, tok := range bytes.Split([]byte(f.Value), []byte(",")) {
			tok = bytes.TrimSpace(tok)
			if len(tok) == 0 {
				continue
			}
			codings = append(codings, ClassifyTransferCoding(tok))
		}
	}
	return codings
}
