package gtf

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGTF = `#!genome-build TAIR10
# comment text
1	src	gene	100	200	.	+	.	gene_id "G1"; gene_biotype "protein_coding";
1	src	exon	100	150	.	+	.	gene_id "G1"; exon_number 1;
1	src	gene	300	400	.	-	.	gene_id "G2";
1	src	exon	300	350	.	-	.	gene_id "G2"; exon_number 1;
2	src	gene	10	20	.	+	.	gene_id "G3"; gene_name "foo";
`

func collect(t *testing.T, in string, opts ScanOptions) ([]Record, ScanStats, error) {
	t.Helper()
	var recs []Record
	stats, err := Scan(context.Background(), strings.NewReader(in), opts, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	return recs, stats, err
}

func TestScanFiltersFeatureType(t *testing.T) {
	recs, stats, err := collect(t, sampleGTF, ScanOptions{Feature: "gene"})
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, []string{"G1", "G2", "G3"}, []string{
		recs[0].Attrs.Value("gene_id"),
		recs[1].Attrs.Value("gene_id"),
		recs[2].Attrs.Value("gene_id"),
	})
	assert.Equal(t, 5, stats.Lines) // comments not counted
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 0, stats.Skipped)
}

func TestScanNoFilterKeepsEverything(t *testing.T) {
	recs, _, err := collect(t, sampleGTF, ScanOptions{})
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestScanCommentsNeverColumnSplit(t *testing.T) {
	// A comment whose text would be a malformed record must not show
	// up as a skipped line.
	in := "# one\ttwo\tthree\n1\tsrc\tgene\t1\t2\t.\t+\t.\tgene_id \"G\";\n"
	recs, stats, err := collect(t, in, ScanOptions{Feature: "gene"})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, 0, stats.Skipped)
}

func TestScanSkipPolicyCountsMalformed(t *testing.T) {
	in := "1\tsrc\tgene\t1\t2\t.\t+\n" + // 7 columns
		"1\tsrc\tgene\t5\t9\t.\t+\t.\tgene_id \"G\";\n"
	recs, stats, err := collect(t, in, ScanOptions{Feature: "gene"})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, 1, stats.Skipped)
}

func TestScanStrictAbortsWithLineNumber(t *testing.T) {
	in := "1\tsrc\tgene\t5\t9\t.\t+\t.\tgene_id \"G\";\n" +
		"1\tsrc\tgene\tbad\t9\t.\t+\t.\tgene_id \"H\";\n"
	recs, _, err := collect(t, in, ScanOptions{Feature: "gene", Strict: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Len(t, recs, 1)
}

func TestScanEmitErrorStopsScan(t *testing.T) {
	calls := 0
	_, err := Scan(context.Background(), strings.NewReader(sampleGTF), ScanOptions{}, func(Record) error {
		calls++
		return context.Canceled
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestScanCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, strings.NewReader(sampleGTF), ScanOptions{}, func(Record) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
