// core/gtf/record.go
package gtf

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one feature line of a GTF file. Start and End are 1-based
// inclusive coordinates, exactly as they appear in the source text.
type Record struct {
	SeqID   string
	Source  string
	Feature string
	Start   int
	End     int
	Score   string // "." when absent
	Strand  string // "+", "-" or "."
	Frame   string // "0", "1", "2" or "."
	Attrs   Attributes
}

// ParseLine splits one non-comment GTF line into a Record. lineNum is
// 1-based and is carried in every error so a bad line can be located in
// multi-megabyte annotation files. A line that does not split into
// exactly 9 tab-separated fields is rejected outright; it is never
// truncated or shifted into a misaligned column layout.
func ParseLine(line string, lineNum int) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 9 {
		return Record{}, fmt.Errorf("line %d: expected 9 tab-separated fields, got %d", lineNum, len(fields))
	}
	start, err := strconv.Atoi(fields[3])
	if err != nil {
		return Record{}, fmt.Errorf("line %d: bad start coordinate %q", lineNum, fields[3])
	}
	end, err := strconv.Atoi(fields[4])
	if err != nil {
		return Record{}, fmt.Errorf("line %d: bad end coordinate %q", lineNum, fields[4])
	}
	if start <= 0 || end <= 0 {
		return Record{}, fmt.Errorf("line %d: coordinates must be positive, got %d..%d", lineNum, start, end)
	}
	return Record{
		SeqID:   fields[0],
		Source:  fields[1],
		Feature: fields[2],
		Start:   start,
		End:     end,
		Score:   fields[5],
		Strand:  fields[6],
		Frame:   fields[7],
		Attrs:   ParseAttributes(fields[8]),
	}, nil
}
