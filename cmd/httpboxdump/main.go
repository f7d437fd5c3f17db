// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Command httpboxdump drives the httpbox HTTP/1 or HTTP/2 parser over a
// captured stream, logging the Handler callbacks that
// consumer.DebugHandler and consumer.DebugHandler2 log. It is a
// manual inspection tool and a runnable example of wiring a Handler.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "httpboxdump",
		Short: "Dump httpbox parser callbacks for a captured stream",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	newLogger := func() (*zap.Logger, error) {
		cfg := zap.NewDevelopmentConfig()
		if !verbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
		return cfg.Build()
	}

	root.AddCommand(newHTTP1Cmd(newLogger))
	root.AddCommand(newHTTP2Cmd(newLogger))
	return root
}
