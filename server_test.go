package pdfbook

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildServerServesDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "book.html"), []byte("<html>hello</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv, err := newBuildServer(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Shutdown()

	if !strings.HasPrefix(srv.URL(), "http://127.0.0.1:") {
		t.Fatalf("URL = %q, want loopback address", srv.URL())
	}

	resp, err := http.Get(srv.URL() + "/book.html")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "<html>hello</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestBuildServerNotFound(t *testing.T) {
	t.Parallel()

	srv, err := newBuildServer(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Shutdown()

	resp, err := http.Get(srv.URL() + "/missing.html")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
