// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http2

// Outcome reports why Resume returned control to the caller.
type Outcome uint8

const (
	// OutcomeEos: input was exhausted; more bytes are needed to continue.
	OutcomeEos Outcome = iota
	// OutcomeFinished: never actually returned by Resume -- frames repeat
	// indefinitely -- kept for symmetry with the HTTP/1 Outcome vocabulary
	// and for composite parsers that want to treat end-of-stream uniformly.
	OutcomeFinished
	// OutcomeCallback: a Handler callback returned false, requesting
	// cooperative suspension.
	OutcomeCallback
)

// Result is returned by every Parser.Resume call. N is always the
// number of input bytes consumed before returning, regardless of Outcome.
type Result struct {
	Outcome Outcome
	N       int
}

func (r Result) Eos() bool      { return r.Outcome == OutcomeEos }
func (r Result) Finished() bool { return r.Outcome == OutcomeFinished }
func (r Result) Callback() bool { return r.Outcome == OutcomeCallback }
