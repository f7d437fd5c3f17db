// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

import "testing"

func newURLEncodedParser(length uint64) func() (*Parser, *recorder) {
	return func() (*Parser, *recorder) {
		p := NewParser()
		p.InitURLEncoded()
		p.SetLength(length)
		return p, &recorder{}
	}
}

func TestResumeURLEncodedBasic(t *testing.T) {
	body := "name=a+b&enc=%2Fx"
	p, h := newURLEncodedParser(uint64(len(body)))()
	feedAtOnce(t, p, h, []byte(body))

	want := []string{
		`url_encoded_begin`,
		`url_encoded_name "name"`,
		`url_encoded_value "a"`,
		`url_encoded_value " "`,
		`url_encoded_value "b"`,
		`url_encoded_name "enc"`,
		`url_encoded_value "/"`,
		`url_encoded_value "x"`,
		`body_finished`,
	}
	assertEventsEqual(t, "basic url-encoded body", h.Events, want)
}

func TestResumeURLEncodedBareName(t *testing.T) {
	body := "a=1&bare"
	p, h := newURLEncodedParser(uint64(len(body)))()
	feedAtOnce(t, p, h, []byte(body))

	want := []string{
		`url_encoded_begin`,
		`url_encoded_name "a"`,
		`url_encoded_value "1"`,
		`url_encoded_name "bare"`,
		`body_finished`,
	}
	assertEventsEqual(t, "bare trailing name", h.Events, want)
}

func TestResumeURLEncodedEmptyBody(t *testing.T) {
	p, h := newURLEncodedParser(0)()
	feedAtOnce(t, p, h, nil)

	want := []string{
		`url_encoded_begin`,
		`body_finished`,
	}
	assertEventsEqual(t, "empty url-encoded body", h.Events, want)
}

func TestResumeURLEncodedRestartability(t *testing.T) {
	body := "name=a+b&enc=%2Fx&bare"
	checkRestartability(t, newURLEncodedParser(uint64(len(body))), []byte(body))
}

func TestResumeURLEncodedBadNameByte(t *testing.T) {
	body := "bad name=1"
	p, h := newURLEncodedParser(uint64(len(body)))()
	_, err := p.Resume(h, []byte(body))
	if err == nil {
		t.Fatal("want error for a raw space in a url-encoded name, got nil")
	}
	perr, ok := err.(Error)
	if !ok {
		t.Fatalf("err is %T, want Error", err)
	}
	if perr.Kind != ErrByteViolation || perr.Production != ProductionURLEncodedName {
		t.Fatalf("err = %+v, want ByteViolation/URLEncodedName", perr)
	}
}
