// internal/fetch/fetch.go

// Package fetch retrieves compressed GTF annotation files from an
// Ensembl Genomes mirror. The Fetcher interface keeps retrieval
// injectable so the parsing core is testable without network access.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// DefaultBaseURL is the Ensembl Genomes plants mirror. The same tree
// the original FTP server exposes is served over HTTPS.
const DefaultBaseURL = "https://ftp.ensemblgenomes.ebi.ac.uk/pub/plants"

// Fetcher retrieves the compressed annotation files for one
// species/release and returns the staged local paths.
type Fetcher interface {
	Fetch(ctx context.Context, species string, release int) ([]string, error)
}

// HTTP downloads *.gtf.gz files listed in the release directory index.
// Per-chromosome (*.chr*) and ab initio (*abinitio*) annotation files
// are rejected, mirroring the accept/reject patterns of the original
// mirror layout.
type HTTP struct {
	BaseURL    string
	StagingDir string
	Client     *http.Client

	logger *zap.Logger
}

// NewHTTP returns a fetcher staging downloads under stagingDir.
// An empty baseURL falls back to DefaultBaseURL.
func NewHTTP(baseURL, stagingDir string) *HTTP {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTP{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		StagingDir: stagingDir,
		Client:     http.DefaultClient,
		logger:     zap.NewNop(),
	}
}

// SetLogger installs a logger for download progress. The default is a
// no-op logger.
func (f *HTTP) SetLogger(l *zap.Logger) {
	if l != nil {
		f.logger = l
	}
}

var hrefRe = regexp.MustCompile(`href="([^"?#/]+\.gtf\.gz)"`)

// DirURL returns the release directory for a species, the remote
// location reported in every retrieval error.
func (f *HTTP) DirURL(species string, release int) string {
	return fmt.Sprintf("%s/release-%d/gtf/%s/", f.BaseURL, release, species)
}

// Fetch lists the release directory and downloads every accepted
// .gtf.gz file into the staging directory, creating it if absent.
func (f *HTTP) Fetch(ctx context.Context, species string, release int) ([]string, error) {
	dirURL := f.DirURL(species, release)

	names, err := f.listGTFs(ctx, dirURL)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .gtf.gz files listed at %s", dirURL)
	}

	if err := os.MkdirAll(f.StagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		local := filepath.Join(f.StagingDir, name)
		f.logger.Info("downloading annotation file",
			zap.String("url", dirURL+name),
			zap.String("to", local))
		if err := f.download(ctx, dirURL+name, local); err != nil {
			return nil, err
		}
		paths = append(paths, local)
	}
	return paths, nil
}

// listGTFs scans the directory index for accepted annotation files.
func (f *HTTP) listGTFs(ctx context.Context, dirURL string) ([]string, error) {
	body, err := f.get(ctx, dirURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	b, err := io.ReadAll(io.LimitReader(body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read index at %s: %w", dirURL, err)
	}

	seen := map[string]bool{}
	var names []string
	for _, m := range hrefRe.FindAllStringSubmatch(string(b), -1) {
		name := path.Base(m[1])
		if !wantGTF(name) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// wantGTF applies the accept/reject patterns: only whole-genome
// .gtf.gz files, no per-chromosome splits, no ab initio predictions.
func wantGTF(name string) bool {
	if !strings.HasSuffix(name, ".gtf.gz") {
		return false
	}
	if strings.Contains(name, ".chr") || strings.Contains(name, "abinitio") {
		return false
	}
	return true
}

func (f *HTTP) download(ctx context.Context, url, local string) error {
	body, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	// Stage through a temp file so an interrupted download never
	// leaves a plausible-looking partial archive behind.
	tmp, err := os.CreateTemp(filepath.Dir(local), filepath.Base(local)+".part*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", local, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage %s: %w", local, err)
	}
	return os.Rename(tmp.Name(), local)
}

func (f *HTTP) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("not found at %s (unknown species or release?)", url)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}
