package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/intuitivelabs/httpbox"
	"github.com/intuitivelabs/httpbox/consumer"
)

// dumpHandler1 logs HTTP/1 callbacks via the embedded DebugHandler,
// additionally enforcing an optional header-block byte budget the way
// consumer.HeaderAssembler does, so --max-header-bytes has an effect.
// It also feeds the header fields to a HeaderAssembler (headers), whose
// own budget is left unset.
type dumpHandler1 struct {
	consumer.DebugHandler

	maxHeaderBytes int
	headerBytes    int
	headers        consumer.HeaderAssembler
}

func (h *dumpHandler1) overBudget(n int) bool {
	if h.maxHeaderBytes == 0 {
		return false
	}
	h.headerBytes += n
	return h.headerBytes > h.maxHeaderBytes
}

func (h *dumpHandler1) OnMethod(name []byte) bool {
	h.Log.Info("method_classified", zap.String("method", consumer.ClassifyMethod(name).String()))
	return h.DebugHandler.OnMethod(name)
}

func (h *dumpHandler1) OnHeaderName(name []byte) bool {
	if h.overBudget(len(name)) {
		h.Log.Error("header block exceeds max-header-bytes", zap.Int("limit", h.maxHeaderBytes))
		return false
	}
	h.headers.OnHeaderName(name)
	return h.DebugHandler.OnHeaderName(name)
}

func (h *dumpHandler1) OnHeaderValue(value []byte) bool {
	if h.overBudget(len(value)) {
		h.Log.Error("header block exceeds max-header-bytes", zap.Int("limit", h.maxHeaderBytes))
		return false
	}
	h.headers.OnHeaderValue(value)
	return h.DebugHandler.OnHeaderValue(value)
}

func (h *dumpHandler1) OnHeadersFinished() bool {
	h.headers.OnHeadersFinished()
	if codings := consumer.TransferCodings(h.headers.Fields); len(codings) > 0 {
		names := make([]string, len(codings))
		for i, c := range codings {
			names[i] = c.String()
		}
		h.Log.Info("transfer_encoding_classified", zap.Strings("codings", names))
	}
	return h.DebugHandler.OnHeadersFinished()
}

func newHTTP1Cmd(newLogger func() (*zap.Logger, error)) *cobra.Command {
	var (
		mode           string
		boundary       string
		maxHeaderBytes int
	)

	cmd := &cobra.Command{
		Use:   "http1 <file>",
		Short: "Parse a captured HTTP/1 message and dump every callback",
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

			p := httpbox.NewParser()
			switch mode {
			case "head":
				p.InitHead()
			case "chunked":
				p.InitChunked()
			case "multipart":
				if boundary == "" {
					return fmt.Errorf("httpboxdump: --boundary is required for --mode=multipart")
				}
				p.InitMultipart([]byte(boundary))
			case "urlencoded":
				p.InitURLEncoded()
				p.SetLength(uint64(len(data)))
			default:
				return fmt.Errorf("httpboxdump: unknown --mode %q", mode)
			}

			h := &dumpHandler1{DebugHandler: consumer.DebugHandler{Log: log}, maxHeaderBytes: maxHeaderBytes}

			off := 0
			for {
				res, err := p.Resume(h, data[off:])
				off += res.N
				if err != nil {
					return fmt.Errorf("httpboxdump: parse error at byte %d: %w", off, err)
				}
				switch {
				case res.Finished():
					log.Info("finished", zap.Int("consumed", off), zap.Int("total", len(data)))
					return nil
				case res.Callback():
					return fmt.Errorf("httpboxdump: handler suspended parsing at byte %d", off)
				case res.Eos():
					if off >= len(data) {
						log.Warn("input exhausted before the grammar finished", zap.Int("consumed", off))
						return nil
					}
					// off < len(data) with Eos shouldn't happen mid-buffer;
					// treat it the same as "need more bytes we don't have".
					log.Warn("parser stalled without consuming all input", zap.Int("consumed", off))
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "head", "parse mode: head, chunked, multipart, urlencoded")
	cmd.Flags().StringVar(&boundary, "boundary", "", "multipart boundary (required for --mode=multipart)")
	cmd.Flags().IntVar(&maxHeaderBytes, "max-header-bytes", 0, "suspend parsing once the header block exceeds this many bytes (0 = unbounded)")

	return cmd
}
