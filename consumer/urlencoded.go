// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package consumer

import "github.com/intuitivelabs/httpbox"

// URLEncodedPair is one decoded name/value pair of a
// x-www-form-urlencoded body.
type URLEncodedPair struct {
	Name  string
	Value string
}

// URLEncodedAssembler implements httpbox.Handler for ModeURLEncoded,
// accumulating Pairs in arrival order. The core parser already
// percent-decodes and "+"-folds name/value bytes before calling back
// (spec.md §4.1), so this assembler only needs to concatenate runs and
// track field boundaries.
type URLEncodedAssembler struct {
	httpbox.NopHandler

	Pairs []URLEncodedPair
	// Done is set once on_body_finished fires.
	Done bool

	building URLEncodedPair
	inName   bool
	inValue  bool
}

var _ httpbox.Handler = (*URLEncodedAssembler)(nil)

// OnURLEncodedName implements httpbox.Handler.
func (a *URLEncodedAssembler) OnURLEncodedName(name []byte) bool {
	if !a.inName && (a.inValue || a.building.Name != "") {
		a.Pairs = append(a.Pairs, a.building)
		a.building = URLEncodedPair{}
	}
	a.inName, a.inValue = true, false
	a.building.Name += string(name)
	return true
}

// OnURLEncodedValue implements httpbox.Handler.
func (a *URLEncodedAssembler) OnURLEncodedValue(value []byte) bool {
	a.inName, a.inValue = false, true
	a.building.Value += string(value)
	return true
}

// OnBodyFinished implements httpbox.Handler.
func (a *URLEncodedAssembler) OnBodyFinished() bool {
	if a.inName || a.inValue {
		a.Pairs = append(a.Pairs, a.building)
		a.building = URLEncodedPair{}
		a.inName, a.inValue = false, false
	}
	a.Done = true
	return true
}
