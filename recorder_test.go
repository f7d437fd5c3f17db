// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

import (
	"fmt"
	"math/rand"
	"testing"
)

// recorder implements Handler, turning every callback into a line of
// text in Events, in arrival order. It never suspends.
type recorder struct {
	NopHandler

	Events []string
}

var _ Handler = (*recorder)(nil)

func (r *recorder) push(format string, args ...interface{}) bool {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
	return true
}

func (r *recorder) OnMethod(name []byte) bool  { return r.push("method %q", name) }
func (r *recorder) OnURL(url []byte) bool      { return r.push("url %q", url) }
func (r *recorder) OnVersion(major, minor uint16) bool {
	return r.push("version %d.%d", major, minor)
}
func (r *recorder) OnStatusCode(code uint16) bool { return r.push("status_code %d", code) }
func (r *recorder) OnStatus(status []byte) bool   { return r.push("status %q", status) }
func (r *recorder) OnInitialFinished() bool        { return r.push("initial_finished") }
func (r *recorder) OnHeaderName(name []byte) bool  { return r.push("header_name %q", name) }
func (r *recorder) OnHeaderValue(value []byte) bool {
	return r.push("header_value %q", value)
}
func (r *recorder) OnHeadersFinished() bool { return r.push("headers_finished") }
func (r *recorder) OnChunkLength(length uint64) bool {
	return r.push("chunk_length %d", length)
}
func (r *recorder) OnChunkBegin() bool { return r.push("chunk_begin") }
func (r *recorder) OnChunkExtensionName(name []byte) bool {
	return r.push("chunk_ext_name %q", name)
}
func (r *recorder) OnChunkExtensionValue(value []byte) bool {
	return r.push("chunk_ext_value %q", value)
}
func (r *recorder) OnChunkExtensionFinished() bool  { return r.push("chunk_ext_finished") }
func (r *recorder) OnChunkExtensionsFinished() bool { return r.push("chunk_exts_finished") }
func (r *recorder) OnChunkData(data []byte) bool    { return r.push("chunk_data %q", data) }
func (r *recorder) OnMultipartBegin() bool          { return r.push("multipart_begin") }
func (r *recorder) OnMultipartData(data []byte) bool {
	return r.push("multipart_data %q", data)
}
func (r *recorder) OnURLEncodedBegin() bool { return r.push("url_encoded_begin") }
func (r *recorder) OnURLEncodedName(name []byte) bool {
	return r.push("url_encoded_name %q", name)
}
func (r *recorder) OnURLEncodedValue(value []byte) bool {
	return r.push("url_encoded_value %q", value)
}
func (r *recorder) OnBodyFinished() bool { return r.push("body_finished") }

// feedAtOnce drives p over the whole of buf in a single Resume call and
// fails the test unless the result is Finished.
func feedAtOnce(t *testing.T, p *Parser, h Handler, buf []byte) Result {
	t.Helper()
	res, err := p.Resume(h, buf)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !res.Finished() {
		t.Fatalf("want Finished, got outcome %v (n=%d, len=%d)", res.Outcome, res.N, len(buf))
	}
	return res
}

// feedSplit drives a freshly constructed parser/recorder pair over buf,
// split into pieces at the offsets split yields, and returns the
// recorded events. split(remaining) must return a value in [1,
// remaining]; passing a constant 1 feeds one byte at a time.
func feedSplit(t *testing.T, newParser func() (*Parser, *recorder), buf []byte, split func(remaining int) int) []string {
	t.Helper()
	p, h := newParser()
	off := 0
	for off < len(buf) {
		n := split(len(buf) - off)
		res, err := p.Resume(h, buf[off:off+n])
		if err != nil {
			t.Fatalf("Resume at byte %d: %v", off, err)
		}
		off += res.N
		if res.Finished() {
			break
		}
		if res.N == 0 && n > 0 {
			t.Fatalf("Resume made no progress at byte %d (outcome %v)", off, res.Outcome)
		}
	}
	if off != len(buf) {
		t.Fatalf("consumed %d of %d bytes", off, len(buf))
	}
	return h.Events
}

// checkRestartability feeds buf through newParser as one call, one byte
// at a time, and at several random split points, asserting every
// feeding style records the identical event sequence -- spec.md's
// restartability property: a Resume call sequence's externally visible
// behavior never depends on how input was chunked.
func checkRestartability(t *testing.T, newParser func() (*Parser, *recorder), buf []byte) {
	t.Helper()

	whole := feedSplit(t, newParser, buf, func(remaining int) int { return remaining })
	perByte := feedSplit(t, newParser, buf, func(remaining int) int { return 1 })
	assertEventsEqual(t, "byte-at-a-time", perByte, whole)

	for trial := 0; trial < 20; trial++ {
		random := feedSplit(t, newParser, buf, func(remaining int) int { return 1 + rand.Intn(remaining) })
		assertEventsEqual(t, fmt.Sprintf("random split trial %d", trial), random, whole)
	}
}

func assertEventsEqual(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d events, want %d\ngot:  %v\nwant: %v", label, len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: event %d = %q, want %q", label, i, got[i], want[i])
		}
	}
}
