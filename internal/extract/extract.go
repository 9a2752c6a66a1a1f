// internal/extract/extract.go

// Package extract decompresses staged .gtf.gz archives in place,
// producing the plain-text annotation files the parser consumes.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
	"go.uber.org/zap"
)

// File decompresses one .gtf.gz archive next to itself and returns the
// path of the plain .gtf. The archive is removed after a successful
// extraction unless keep is set. A corrupt or non-gzip archive is a
// fatal error for the run.
func File(gzPath string, keep bool) (string, error) {
	if !strings.HasSuffix(gzPath, ".gz") {
		return "", fmt.Errorf("extract %s: not a .gz archive", gzPath)
	}
	outPath := strings.TrimSuffix(gzPath, ".gz")

	in, err := os.Open(gzPath)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", gzPath, err)
	}
	defer in.Close()

	gr, err := pgzip.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("extract %s: corrupt or unexpected archive: %w", gzPath, err)
	}
	defer gr.Close()

	// Decompress into a temp file and rename, so a corrupt tail never
	// leaves a truncated .gtf that a later run would mistake for done.
	tmp, err := os.CreateTemp(filepath.Dir(outPath), filepath.Base(outPath)+".part*")
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", gzPath, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, gr); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("extract %s: corrupt or unexpected archive: %w", gzPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("extract %s: %w", gzPath, err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return "", fmt.Errorf("extract %s: %w", gzPath, err)
	}

	if !keep {
		if err := os.Remove(gzPath); err != nil {
			return "", fmt.Errorf("remove archive %s: %w", gzPath, err)
		}
	}
	return outPath, nil
}

// Files decompresses every archive in paths, logging progress.
func Files(paths []string, keep bool, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		gtfPath, err := File(p, keep)
		if err != nil {
			return nil, err
		}
		logger.Info("extracted annotation file",
			zap.String("archive", p),
			zap.String("gtf", gtfPath),
			zap.Bool("kept_archive", keep))
		out = append(out, gtfPath)
	}
	return out, nil
}
