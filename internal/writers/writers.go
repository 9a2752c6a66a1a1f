// internal/writers/writers.go

// Package writers runs the serialization goroutine for gene rows. The
// writer consumes a channel so the parsing pipeline can stream rows
// without buffering whole annotation files, and input order is
// preserved (single producer, single consumer).
package writers

import (
	"fmt"
	"io"

	"gtfetch-core/gene"
	"gtfetch/internal/output"
)

// StartRowWriter spins up a writer goroutine for gene rows. It returns
// the input channel and a one-shot error channel that yields after the
// input channel is closed and the writer has drained it.
func StartRowWriter(out io.Writer, p gene.Projection, format string, header bool, bufSize int) (chan<- gene.Row, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan gene.Row, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case output.FormatTSV:
			err = output.StreamTSV(out, p, in, header)
		case output.FormatCSV:
			err = output.StreamCSV(out, p, in, header)
		case output.FormatJSON:
			var buf []gene.Row
			for r := range in {
				buf = append(buf, r)
			}
			err = output.WriteJSON(out, p, buf)
		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		// Drain so a failed writer never blocks the producer.
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}
