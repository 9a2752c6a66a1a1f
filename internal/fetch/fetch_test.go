package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexHTML = `<html><body>
<a href="Arabidopsis_thaliana.TAIR10.58.gtf.gz">whole genome</a>
<a href="Arabidopsis_thaliana.TAIR10.58.chr.gtf.gz">per chromosome</a>
<a href="Arabidopsis_thaliana.TAIR10.58.abinitio.gtf.gz">ab initio</a>
<a href="Arabidopsis_thaliana.TAIR10.58.gff3.gz">wrong format</a>
<a href="CHECKSUMS">checksums</a>
</body></html>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pub/plants/release-58/gtf/arabidopsis_thaliana/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(indexHTML))
	})
	mux.HandleFunc("/pub/plants/release-58/gtf/arabidopsis_thaliana/Arabidopsis_thaliana.TAIR10.58.gtf.gz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("gzbytes"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchDownloadsAcceptedFilesOnly(t *testing.T) {
	srv := testServer(t)
	staging := t.TempDir()

	f := NewHTTP(srv.URL+"/pub/plants", staging)
	paths, err := f.Fetch(context.Background(), "arabidopsis_thaliana", 58)
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(staging, "Arabidopsis_thaliana.TAIR10.58.gtf.gz"), paths[0])

	b, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "gzbytes", string(b))
}

func TestFetchUnknownSpeciesIs404Error(t *testing.T) {
	srv := testServer(t)
	f := NewHTTP(srv.URL+"/pub/plants", t.TempDir())

	_, err := f.Fetch(context.Background(), "zea_mays", 58)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found at")
	assert.Contains(t, err.Error(), "zea_mays")
}

func TestFetchEmptyIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer srv.Close()

	f := NewHTTP(srv.URL, t.TempDir())
	_, err := f.Fetch(context.Background(), "zea_mays", 58)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .gtf.gz files listed")
}

func TestWantGTF(t *testing.T) {
	cases := map[string]bool{
		"Zea_mays.B73.58.gtf.gz":          true,
		"Zea_mays.B73.58.chr.gtf.gz":      false,
		"Zea_mays.B73.58.abinitio.gtf.gz": false,
		"Zea_mays.B73.58.gff3.gz":         false,
		"README":                          false,
	}
	for name, want := range cases {
		assert.Equal(t, want, wantGTF(name), name)
	}
}

func TestFetchCanceledContext(t *testing.T) {
	srv := testServer(t)
	f := NewHTTP(srv.URL+"/pub/plants", t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Fetch(ctx, "arabidopsis_thaliana", 58)
	assert.Error(t, err)
}
