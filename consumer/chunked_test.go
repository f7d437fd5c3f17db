// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package consumer

import (
	"testing"

	"github.com/intuitivelabs/httpbox"
)

func TestChunkedBodyAssemblerBasic(t *testing.T) {
	body := "5\r\nhello\r\n6\r\n world\r\n0\r\nX-Trailer: yes\r\n\r\n"

	p := httpbox.NewParser()
	p.InitChunked()
	a := &ChunkedBodyAssembler{}

	res, err := p.Resume(a, []byte(body))
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !res.Finished() {
		t.Fatalf("want Finished, got outcome %v", res.Outcome)
	}
	if !a.Done {
		t.Fatal("a.Done not set")
	}
	if got := a.Body.String(); got != "hello world" {
		t.Fatalf("Body = %q, want %q", got, "hello world")
	}
	if len(a.Extensions) != 3 {
		t.Fatalf("Extensions = %+v, want 3 entries (one per chunk, including the final zero-length one)", a.Extensions)
	}
	for _, ext := range a.Extensions {
		if ext != nil {
			t.Fatalf("Extensions = %+v, want every entry nil (no extensions present)", a.Extensions)
		}
	}
	want := []HeaderField{{Name: "x-trailer", Value: "yes"}}
	if len(a.Fields) != len(want) || a.Fields[0] != want[0] {
		t.Fatalf("trailer Fields = %+v, want %+v", a.Fields, want)
	}
}

func TestChunkedBodyAssemblerExtensions(t *testing.T) {
	body := "5;foo=bar;baz\r\nhello\r\n0\r\n\r\n"

	p := httpbox.NewParser()
	p.InitChunked()
	a := &ChunkedBodyAssembler{}

	res, err := p.Resume(a, []byte(body))
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !res.Finished() {
		t.Fatalf("want Finished, got outcome %v", res.Outcome)
	}
	if got := a.Body.String(); got != "hello" {
		t.Fatalf("Body = %q, want %q", got, "hello")
	}
	want := []ChunkExtension{{Name: "foo", Value: "bar"}, {Name: "baz"}}
	if len(a.Extensions) != 2 || len(a.Extensions[0]) != 2 {
		t.Fatalf("Extensions = %+v, want first chunk to carry %+v", a.Extensions, want)
	}
	for i, ext := range want {
		if a.Extensions[0][i] != ext {
			t.Errorf("Extensions[0][%d] = %+v, want %+v", i, a.Extensions[0][i], ext)
		}
	}
	if a.Extensions[1] != nil {
		t.Fatalf("Extensions[1] = %+v, want nil (final chunk has none)", a.Extensions[1])
	}
}

func TestChunkedBodyAssemblerNoTrailers(t *testing.T) {
	body := "0\r\n\r\n"

	p := httpbox.NewParser()
	p.InitChunked()
	a := &ChunkedBodyAssembler{}

	res, err := p.Resume(a, []byte(body))
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !res.Finished() {
		t.Fatalf("want Finished, got outcome %v", res.Outcome)
	}
	if a.Body.Len() != 0 {
		t.Fatalf("Body = %q, want empty", a.Body.String())
	}
	if len(a.Fields) != 0 {
		t.Fatalf("Fields = %+v, want empty", a.Fields)
	}
}
