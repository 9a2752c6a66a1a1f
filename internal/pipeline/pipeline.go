// internal/pipeline/pipeline.go

// Package pipeline streams one decompressed GTF file through
// parse → filter → project → send. Execution is strictly sequential
// and single-pass; row order follows input line order.
package pipeline

import (
	"context"
	"fmt"

	"gtfetch-core/gene"
	"gtfetch-core/gtf"
)

// Config controls one extraction pass.
type Config struct {
	Feature string       // feature type to keep (default "gene")
	Strict  bool         // abort on first malformed line
	Fields  []gene.Field // attribute projection; nil = defaults
}

// File scans the GTF at path and sends one projected row per retained
// feature record. It returns the scan statistics for the file.
func File(ctx context.Context, cfg Config, path string, send func(gene.Row) error) (gtf.ScanStats, error) {
	feature := cfg.Feature
	if feature == "" {
		feature = "gene"
	}
	proj := gene.NewProjection(cfg.Fields)

	rc, err := gtf.Open(path)
	if err != nil {
		return gtf.ScanStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	stats, err := gtf.Scan(ctx, rc, gtf.ScanOptions{Feature: feature, Strict: cfg.Strict}, func(rec gtf.Record) error {
		return send(proj.Project(rec))
	})
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	return stats, nil
}
