package server

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gwillem/roboarm/pkg/command"
)

// maxLineLen bounds a single command line; longer input is rejected
// rather than truncated.
const maxLineLen = 256

// LineServer runs the line-oriented command channel over any
// io.ReadWriter, typically a serial port. One command is processed to
// completion before the next line is read.
type LineServer struct {
	rw   io.ReadWriter
	exec *command.Executor
}

// NewLineServer creates a line server on rw.
func NewLineServer(rw io.ReadWriter, exec *command.Executor) *LineServer {
	return &LineServer{rw: rw, exec: exec}
}

// Serve reads command lines until EOF, read error, or context
// cancellation. Cancellation is observed between commands; closing the
// underlying port unblocks a pending read. A line that overflows the
// read buffer is discarded and answered with an error, the channel
// keeps serving.
func (s *LineServer) Serve(ctx context.Context) error {
	// Buffer fits the longest legal line plus CRLF, so an oversized line
	// always surfaces as ErrBufferFull rather than an unbounded read.
	reader := bufio.NewReaderSize(s.rw, maxLineLen+2)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := reader.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			// Swallow the rest of the oversized line, reject it, go on.
			for err == bufio.ErrBufferFull {
				_, err = reader.ReadSlice('\n')
			}
			fmt.Fprintln(s.rw, "error: command too long")
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read commands: %w", err)
			}
			continue
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("read commands: %w", err)
		}

		line := strings.TrimSpace(string(raw))
		if line != "" {
			if len(line) > maxLineLen {
				fmt.Fprintln(s.rw, "error: command too long")
			} else {
				res := s.exec.Execute(line)
				msg := res.Message
				if msg == "" {
					msg = "ok"
				}
				fmt.Fprintln(s.rw, msg)
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}
