package gtf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttributesRoundTrip(t *testing.T) {
	a := ParseAttributes(`gene_id "ABC123"; gene_name "foo"; biotype "protein_coding";`)

	assert.Equal(t, []string{"gene_id", "gene_name", "biotype"}, a.Keys())
	assert.Equal(t, "ABC123", a.Value("gene_id"))
	assert.Equal(t, "foo", a.Value("gene_name"))
	assert.Equal(t, "protein_coding", a.Value("biotype"))
}

func TestParseAttributesLastWriteWins(t *testing.T) {
	a := ParseAttributes(`gene_id "X"; gene_id "Y";`)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, "Y", a.Value("gene_id"))
}

func TestParseAttributesMalformedSegmentsSkipped(t *testing.T) {
	a := ParseAttributes(`; nokeyvalue ;gene_id "G1";; "orphan"`)

	// "nokeyvalue" has no value and `"orphan"`'s key is the quoted
	// string itself with no value; both are dropped without failing
	// the record.
	assert.Equal(t, []string{"gene_id"}, a.Keys())
	assert.Equal(t, "G1", a.Value("gene_id"))
}

func TestParseAttributesUnquotedValue(t *testing.T) {
	// GTF allows unquoted numeric values (e.g. exon_number 3).
	a := ParseAttributes(`exon_number 3; gene_id "G1"`)
	assert.Equal(t, "3", a.Value("exon_number"))
	assert.Equal(t, "G1", a.Value("gene_id"))
}

func TestParseAttributesAbsentKey(t *testing.T) {
	a := ParseAttributes(`gene_id "G1";`)
	v, ok := a.Get("gene_name")
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestParseAttributesEmpty(t *testing.T) {
	a := ParseAttributes("")
	assert.Equal(t, 0, a.Len())
}
