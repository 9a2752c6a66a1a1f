// core/gtf/scan.go
package gtf

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ScanOptions controls one streaming pass over a GTF source.
type ScanOptions struct {
	// Feature keeps only records of this feature type ("gene" for the
	// gene table). Empty keeps every record.
	Feature string
	// Strict aborts the scan on the first malformed line instead of
	// skipping it. The chosen policy applies uniformly to every line.
	Strict bool
}

// ScanStats summarizes one pass.
type ScanStats struct {
	Lines   int // feature lines examined (comments and blanks excluded)
	Records int // records that passed the feature filter and were emitted
	Skipped int // malformed lines skipped (always 0 under Strict)
}

// Scan reads GTF text from r line by line and calls emit for every
// record that passes the feature filter. Lines starting with '#' carry
// no record and are never column-split. The sequence is single-pass and
// finite; re-scanning requires re-supplying the source.
//
// Malformed lines (wrong column count, unparsable coordinates) are
// counted and skipped, or abort the scan when opts.Strict is set.
// Cancellation via ctx is honored between lines.
func Scan(ctx context.Context, r io.Reader, opts ScanOptions, emit func(Record) error) (ScanStats, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024 // attribute columns can get long
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var stats ScanStats
	lineNum := 0
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}
		lineNum++
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		stats.Lines++
		rec, err := ParseLine(line, lineNum)
		if err != nil {
			if opts.Strict {
				return stats, err
			}
			stats.Skipped++
			continue
		}
		if opts.Feature != "" && rec.Feature != opts.Feature {
			continue
		}
		if err := emit(rec); err != nil {
			return stats, err
		}
		stats.Records++
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("gtf scan: %w", err)
	}
	return stats, nil
}
