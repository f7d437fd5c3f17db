// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package urlencode

import "testing"

type decodeTestCase struct {
	in      string
	want    string
	wantErr bool
}

var decodeTests = [...]decodeTestCase{
	{in: "Name+1%21", want: "Name 1!"},
	{in: "Value%201%21", want: "Value 1!"},
	{in: "no-escapes-here", want: "no-escapes-here"},
	{in: "", want: ""},
	{in: "100%25", want: "100%"},
	{in: "a+b+c", want: "a b c"},
	{in: "%2F%2E%2E", want: "/.."},
	{in: "%", wantErr: true},
	{in: "%2", wantErr: true},
	{in: "%2Z", wantErr: true},
	{in: "%Z2", wantErr: true},
}

func TestDecode(t *testing.T) {
	for _, c := range decodeTests {
		got, err := Decode([]byte(c.in))
		if c.wantErr {
			if err == nil {
				t.Errorf("Decode(%q) = %q, nil; want error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Decode(%q) returned error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Decode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
