package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/intuitivelabs/httpbox/consumer"
	"github.com/intuitivelabs/httpbox/http2"
)

func newHTTP2Cmd(newLogger func() (*zap.Logger, error)) *cobra.Command {
	var maxFrames int

	cmd := &cobra.Command{
		Use:   "http2 <file>",
		Short: "Parse a captured HTTP/2 frame stream and dump every callback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return fmt.Errorf("httpboxdump: building logger: %w", err)
			}
			defer log.Sync() //nolint:errcheck

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("httpboxdump: reading %s: %w", args[0], err)
			}

			p := http2.NewParser()
			h := consumer.DebugHandler2{Log: log}

			off := 0
			frames := 0
			for off < len(data) {
				res := p.Resume(h, data[off:])
				off += res.N
				switch {
				case res.Callback():
					return fmt.Errorf("httpboxdump: handler suspended parsing at byte %d", off)
				case res.Eos():
					log.Info("frame stream exhausted", zap.Int("consumed", off), zap.Int("total", len(data)))
					return nil
				}
				frames++
				if maxFrames > 0 && frames >= maxFrames {
					log.Info("stopping at --max-frames", zap.Int("frames", frames))
					return nil
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxFrames, "max-frames", 0, "stop after this many frame headers have been dispatched (0 = no limit)")

	return cmd
}
