// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package parameter

import "testing"

func collect(t *testing.T, s string, opts Options) []Pair {
	t.Helper()
	it := New([]byte(s), opts)
	var got []Pair
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, p)
	}
	if err := it.Err(); err != nil {
		t.Fatalf("parameter %q: %v", s, err)
	}
	return got
}

func TestIteratorBareAndValued(t *testing.T) {
	got := collect(t, "compress; gzip=1.0", Options{Delimiter: ';'})
	want := []Pair{
		{Name: "compress"},
		{Name: "gzip", Value: OptionalValue{Set: true, Value: "1.0"}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIteratorQuotedValue(t *testing.T) {
	got := collect(t, `type=text/plain; charset="utf-8"`, Options{Delimiter: ';'})
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[1].Name != "charset" || got[1].Value.Value != "utf-8" {
		t.Errorf("pair 1 = %+v, want charset=utf-8", got[1])
	}
}

func TestIteratorEscapedQuote(t *testing.T) {
	got := collect(t, `name="a \"quoted\" value"`, Options{Delimiter: ';'})
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	want := `a "quoted" value`
	if got[0].Value.Value != want {
		t.Errorf("value = %q, want %q", got[0].Value.Value, want)
	}
}

func TestIteratorCaseFolding(t *testing.T) {
	got := collect(t, "Foo=Bar", Options{Delimiter: ';', FoldCase: true})
	if len(got) != 1 || got[0].Name != "foo" {
		t.Fatalf("got %+v, want folded name \"foo\"", got)
	}
	if got[0].Value.Value != "Bar" {
		t.Errorf("value = %q, want %q (value case is untouched)", got[0].Value.Value, "Bar")
	}
}

func TestIteratorUnterminatedQuote(t *testing.T) {
	it := New([]byte(`name="unterminated`), Options{Delimiter: ';'})
	_, ok := it.Next()
	if ok {
		t.Fatalf("Next() = true, want false on unterminated quoted value")
	}
	if it.Err() == nil {
		t.Fatalf("Err() = nil, want an error")
	}
}
