// internal/output/output.go

// Package output serializes gene rows. The default delimiter is the
// tab: GTF forbids literal tabs inside any field, so values can never
// collide with it. The csv format goes through encoding/csv and gets
// real quoting; json emits a pretty-printed array.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gtfetch-core/gene"
)

const (
	FormatTSV  = "tsv"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Ext returns the output file extension for a format.
func Ext(format string) string {
	if format == FormatJSON {
		return "json"
	}
	return format
}

// HeaderTSV is the canonical header row for a projection. Writers must
// derive their header from the projection's Columns so every format
// agrees on order.
func HeaderTSV(p gene.Projection) string {
	return strings.Join(p.Columns(), "\t")
}

// FormatRowTSV returns one tab-joined data row (no trailing newline).
func FormatRowTSV(r gene.Row) string {
	return strings.Join(r.Strings(), "\t")
}

// StreamTSV writes rows from in as they arrive.
func StreamTSV(w io.Writer, p gene.Projection, in <-chan gene.Row, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, HeaderTSV(p)); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// StreamCSV writes rows through encoding/csv.
func StreamCSV(w io.Writer, p gene.Projection, in <-chan gene.Row, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(p.Columns()); err != nil {
			return err
		}
	}
	for r := range in {
		if err := cw.Write(r.Strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON buffers rows and writes one pretty-printed array of
// objects keyed by column name. JSON object key order is not
// significant; consumers needing the fixed order use tsv/csv.
func WriteJSON(w io.Writer, p gene.Projection, rows []gene.Row) error {
	cols := p.Columns()
	objs := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		obj := make(map[string]any, len(cols))
		obj["seq_id"] = r.SeqID
		obj["source"] = r.Source
		obj["start"] = r.Start
		obj["end"] = r.End
		obj["strand"] = r.Strand
		for i, f := range p.Fields() {
			obj[f.Column] = r.Values[i]
		}
		objs = append(objs, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(objs)
}
