// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

import "testing"

func newHeadParser() (*Parser, *recorder) {
	p := NewParser()
	p.InitHead()
	return p, &recorder{}
}

func TestResumeRequestLine(t *testing.T) {
	msg := "GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n"
	p, h := newHeadParser()
	feedAtOnce(t, p, h, []byte(msg))

	want := []string{
		`method "GET"`,
		`url "/index.html"`,
		`version 1.1`,
		`initial_finished`,
		`header_name "host"`,
		`header_value "example.com"`,
		`headers_finished`,
	}
	assertEventsEqual(t, "request line", h.Events, want)
}

func TestResumeResponseLine(t *testing.T) {
	msg := "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n"
	p, h := newHeadParser()
	feedAtOnce(t, p, h, []byte(msg))

	want := []string{
		`version 1.1`,
		`status_code 404`,
		`status "Not Found"`,
		`initial_finished`,
		`header_name "content-length"`,
		`header_value "0"`,
		`headers_finished`,
	}
	assertEventsEqual(t, "response line", h.Events, want)
}

func TestResumeResponseLineNoMinorVersion(t *testing.T) {
	// "HTTP/2 200 OK" (HTTP/2-over-cleartext-style status line, no
	// "." minor version) -- stateResponseVersionMajor's ' ' branch.
	msg := "HTTP/2 200 OK\r\n\r\n"
	p, h := newHeadParser()
	feedAtOnce(t, p, h, []byte(msg))

	want := []string{
		`version 2.0`,
		`status_code 200`,
		`status "OK"`,
		`initial_finished`,
		`headers_finished`,
	}
	assertEventsEqual(t, "response line no minor version", h.Events, want)
}

func TestResumeRequestLineRestartability(t *testing.T) {
	msg := "POST /submit?x=1 HTTP/1.1\r\nHost: a.example\r\nX-Trace: a\r\n b\r\n\r\n"
	checkRestartability(t, newHeadParser, []byte(msg))
}

func TestResumeBadMethodByte(t *testing.T) {
	p, h := newHeadParser()
	_, err := p.Resume(h, []byte("GET\x01 / HTTP/1.1\r\n\r\n"))
	if err == nil {
		t.Fatal("want error for control byte in method, got nil")
	}
	perr, ok := err.(Error)
	if !ok {
		t.Fatalf("err is %T, want Error", err)
	}
	if perr.Kind != ErrByteViolation || perr.Production != ProductionMethod {
		t.Fatalf("err = %+v, want ByteViolation/Method", perr)
	}
}

func TestResumeEmptyMethod(t *testing.T) {
	p, h := newHeadParser()
	_, err := p.Resume(h, []byte(" / HTTP/1.1\r\n\r\n"))
	if err == nil {
		t.Fatal("want error for a request line with no method, got nil")
	}
	perr, ok := err.(Error)
	if !ok {
		t.Fatalf("err is %T, want Error", err)
	}
	if perr.Kind != ErrByteViolation || perr.Production != ProductionMethod {
		t.Fatalf("err = %+v, want ByteViolation/Method", perr)
	}
}

func TestResumeVersionOverflow(t *testing.T) {
	p, h := newHeadParser()
	_, err := p.Resume(h, []byte("GET / HTTP/1111.1\r\n\r\n"))
	if err == nil {
		t.Fatal("want overflow error for a 4-digit version component, got nil")
	}
	perr, ok := err.(Error)
	if !ok {
		t.Fatalf("err is %T, want Error", err)
	}
	if perr.Kind != ErrOverflow || perr.Production != ProductionVersion {
		t.Fatalf("err = %+v, want Overflow/Version", perr)
	}
}
