// core/gene/project.go

// Package gene projects parsed GTF feature records onto flat gene-table
// rows. The projection is 1:1 and never fails: an attribute key absent
// from a record maps to the empty string, not an error.
package gene

import (
	"fmt"
	"strconv"
	"strings"

	"gtfetch-core/gtf"
)

// Field maps one output column to the GTF attribute key it is read from.
type Field struct {
	Column string
	Key    string
}

// DefaultFields is the standard gene-table projection for Ensembl GTFs.
func DefaultFields() []Field {
	return []Field{
		{Column: "gene_id", Key: "gene_id"},
		{Column: "gene_name", Key: "gene_name"},
		{Column: "gene_biotype", Key: "gene_biotype"},
	}
}

// ParseFields turns CLI/config specs of the form "column=key" (or a
// bare "key", meaning the column is named after the key) into Fields.
func ParseFields(specs []string) ([]Field, error) {
	fields := make([]Field, 0, len(specs))
	for _, s := range specs {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("empty attribute spec")
		}
		col, key, ok := strings.Cut(s, "=")
		if !ok {
			key = col
		}
		if col == "" || key == "" {
			return nil, fmt.Errorf("bad attribute spec %q (want column=key)", s)
		}
		fields = append(fields, Field{Column: col, Key: key})
	}
	return fields, nil
}

// Row is one line of the simplified gene table. Values is parallel to
// the projection's fields.
type Row struct {
	SeqID  string
	Source string
	Start  int
	End    int
	Strand string
	Values []string
}

// Projection extracts a fixed set of attribute-derived columns from
// feature records.
type Projection struct {
	fields []Field
}

// NewProjection returns a projection over the given fields; nil falls
// back to DefaultFields.
func NewProjection(fields []Field) Projection {
	if fields == nil {
		fields = DefaultFields()
	}
	return Projection{fields: fields}
}

// Fields returns the configured attribute fields in output order.
func (p Projection) Fields() []Field { return p.fields }

// Columns returns the full output header: the fixed coordinate columns
// first, then one column per configured field. Every writer derives its
// header from this single source of truth.
func (p Projection) Columns() []string {
	cols := []string{"seq_id", "source", "start", "end", "strand"}
	for _, f := range p.fields {
		cols = append(cols, f.Column)
	}
	return cols
}

// Project maps one record to exactly one row.
func (p Projection) Project(rec gtf.Record) Row {
	row := Row{
		SeqID:  rec.SeqID,
		Source: rec.Source,
		Start:  rec.Start,
		End:    rec.End,
		Strand: rec.Strand,
		Values: make([]string, len(p.fields)),
	}
	for i, f := range p.fields {
		row.Values[i] = rec.Attrs.Value(f.Key)
	}
	return row
}

// Strings returns the row as one string per column, aligned with
// Columns().
func (r Row) Strings() []string {
	out := []string{r.SeqID, r.Source, strconv.Itoa(r.Start), strconv.Itoa(r.End), r.Strand}
	return append(out, r.Values...)
}
