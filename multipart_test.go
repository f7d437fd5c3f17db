// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

import "testing"

func newMultipartParser(boundary string) func() (*Parser, *recorder) {
	return func() (*Parser, *recorder) {
		p := NewParser()
		p.InitMultipart([]byte(boundary))
		return p, &recorder{}
	}
}

func TestResumeMultipartBasic(t *testing.T) {
	body := "--BOUNDARY\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"hello\r\n" +
		"--BOUNDARY--"

	p, h := newMultipartParser("BOUNDARY")()
	feedAtOnce(t, p, h, []byte(body))

	want := []string{
		`multipart_begin`,
		`header_name "content-type"`,
		`header_value "text/plain"`,
		`headers_finished`,
		`multipart_data "hello"`,
		`body_finished`,
	}
	assertEventsEqual(t, "basic multipart body", h.Events, want)
}

func TestResumeMultipartTwoParts(t *testing.T) {
	body := "--BOUNDARY\r\n\r\none\r\n--BOUNDARY\r\n\r\ntwo\r\n--BOUNDARY--"

	p, h := newMultipartParser("BOUNDARY")()
	feedAtOnce(t, p, h, []byte(body))

	want := []string{
		`multipart_begin`,
		`headers_finished`,
		`multipart_data "one"`,
		`multipart_begin`,
		`headers_finished`,
		`multipart_data "two"`,
		`body_finished`,
	}
	assertEventsEqual(t, "two-part multipart body", h.Events, want)
}

func TestResumeMultipartBoundaryLookalike(t *testing.T) {
	body := "--BOUNDARY\r\n\r\nfoo\r\n--BOUND bar\r\n--BOUNDARY--"

	p, h := newMultipartParser("BOUNDARY")()
	feedAtOnce(t, p, h, []byte(body))

	want := []string{
		`multipart_begin`,
		`headers_finished`,
		`multipart_data "foo"`,
		`multipart_data "\r\n--"`,
		`multipart_data "BOUND"`,
		`multipart_data " bar"`,
		`body_finished`,
	}
	assertEventsEqual(t, "false boundary match re-emitted as data", h.Events, want)
}

func TestResumeMultipartRestartability(t *testing.T) {
	body := "--BOUNDARY\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"part one data\r\n" +
		"--BOUNDARY\r\n" +
		"\r\n" +
		"part two data\r\n" +
		"--BOUNDARY--"
	checkRestartability(t, newMultipartParser("BOUNDARY"), []byte(body))
}

func TestResumeMultipartBadPreamble(t *testing.T) {
	p, h := newMultipartParser("BOUNDARY")()
	_, err := p.Resume(h, []byte("-X"))
	if err == nil {
		t.Fatal("want error for a preamble that doesn't start with \"--\", got nil")
	}
	perr, ok := err.(Error)
	if !ok {
		t.Fatalf("err is %T, want Error", err)
	}
	if perr.Kind != ErrByteViolation || perr.Production != ProductionMultipartBoundary {
		t.Fatalf("err = %+v, want ByteViolation/MultipartBoundary", perr)
	}
}
