// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpbox

// Outcome classifies why Resume returned control to the caller.
type Outcome uint8

const (
	// OutcomeEos: the supplied input was fully consumed; more bytes are
	// expected before the current mode can reach StateFinished.
	OutcomeEos Outcome = iota
	// OutcomeFinished: the grammar for the current mode reached its
	// accepting state. N is the offset of the first unconsumed byte.
	OutcomeFinished
	// OutcomeCallback: a Handler method returned false, cooperatively
	// suspending the parser mid-input. N is the offset of the first
	// byte not yet consumed; a further Resume call with the remainder
	// of the same logical stream continues seamlessly.
	OutcomeCallback
)

// Result is returned by Parser.Resume on every non-error return.
type Result struct {
	Outcome Outcome
	// N is the number of bytes of the input slice passed to Resume that
	// were consumed before this Result was produced.
	N int
}

// Eos reports whether r is an Outcome-Eos result.
func (r Result) Eos() bool { return r.Outcome == OutcomeEos }

// Finished reports whether r is an Outcome-Finished result.
func (r Result) Finished() bool { return r.Outcome == OutcomeFinished }

// Callback reports whether a handler suspended the parser cooperatively.
func (r Result) Callback() bool { return r.Outcome == OutcomeCallback }
