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

func TestMultipartAssemblerBasic(t *testing.T) {
	body := "--BOUNDARY\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"part1 data\r\n" +
		"--BOUNDARY\r\n" +
		"\r\n" +
		"part2 data\r\n" +
		"--BOUNDARY--"

	p := httpbox.NewParser()
	p.InitMultipart([]byte("BOUNDARY"))
	a := &MultipartAssembler{}

	res, err := p.Resume(a, []byte(body))
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !res.Finished() {
		t.Fatalf("want Finished, got outcome %v (n=%d, len=%d)", res.Outcome, res.N, len(body))
	}
	if !a.Done {
		t.Fatal("a.Done not set")
	}
	if len(a.Parts) != 2 {
		t.Fatalf("Parts = %d, want 2", len(a.Parts))
	}

	p1 := a.Parts[0]
	if len(p1.Headers) != 1 || p1.Headers[0] != (HeaderField{Name: "content-type", Value: "text/plain"}) {
		t.Errorf("Parts[0].Headers = %+v", p1.Headers)
	}
	if got := p1.Data.String(); got != "part1 data" {
		t.Errorf("Parts[0].Data = %q, want %q", got, "part1 data")
	}

	p2 := a.Parts[1]
	if len(p2.Headers) != 0 {
		t.Errorf("Parts[1].Headers = %+v, want empty", p2.Headers)
	}
	if got := p2.Data.String(); got != "part2 data" {
		t.Errorf("Parts[1].Data = %q, want %q", got, "part2 data")
	}
}

func TestMultipartAssemblerBoundaryLookalike(t *testing.T) {
	// "--BOUND" within the data is a false match against "--BOUNDARY" and
	// must be re-emitted verbatim as data once it diverges.
	body := "--BOUNDARY\r\n\r\nfoo\r\n--BOUND bar\r\n--BOUNDARY--"

	p := httpbox.NewParser()
	p.InitMultipart([]byte("BOUNDARY"))
	a := &MultipartAssembler{}

	res, err := p.Resume(a, []byte(body))
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !res.Finished() {
		t.Fatalf("want Finished, got outcome %v", res.Outcome)
	}
	if len(a.Parts) != 1 {
		t.Fatalf("Parts = %d, want 1", len(a.Parts))
	}
	if got, want := a.Parts[0].Data.String(), "foo\r\n--BOUND bar"; got != want {
		t.Errorf("Data = %q, want %q", got, want)
	}
}
