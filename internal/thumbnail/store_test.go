package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"
)

var hexDigest = regexp.MustCompile(`^[a-f0-9]{32}$`)

// testImage encodes a solid-color PNG of the given dimensions
func testImage(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestFromReader(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	raw := testImage(t, 300, 200, color.RGBA{R: 200, A: 255})
	digest, err := store.FromReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to store thumbnail: %v", err)
	}
	if !hexDigest.MatchString(digest) {
		t.Errorf("Expected a 32 char hex digest, got %q", digest)
	}

	f, err := os.Open(store.Path(digest))
	if err != nil {
		t.Fatalf("Failed to open stored thumbnail: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode stored thumbnail: %v", err)
	}

	// 300x200 scaled to fit the 100px bounding square
	b := img.Bounds()
	if b.Dx() != 100 {
		t.Errorf("Expected width 100, got %d", b.Dx())
	}
	if b.Dy() != 66 {
		t.Errorf("Expected height 66, got %d", b.Dy())
	}
}

func TestFromReaderDeduplicates(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	raw := testImage(t, 300, 200, color.RGBA{G: 200, A: 255})

	first, err := store.FromReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to store thumbnail: %v", err)
	}
	second, err := store.FromReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to store thumbnail again: %v", err)
	}

	if first != second {
		t.Errorf("Expected identical digests, got %q and %q", first, second)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list store directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected one stored file, got %d", len(entries))
	}
}

func TestFromReaderSmallImageUnscaled(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	raw := testImage(t, 40, 30, color.RGBA{B: 200, A: 255})
	digest, err := store.FromReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to store thumbnail: %v", err)
	}

	f, err := os.Open(store.Path(digest))
	if err != nil {
		t.Fatalf("Failed to open stored thumbnail: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode stored thumbnail: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("Expected 40x30 unscaled, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestFromReaderRejectsGarbage(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, err := store.FromReader(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Expected an error for undecodable input")
	}
}

func TestFromURL(t *testing.T) {
	raw := testImage(t, 120, 120, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(raw)
	}))
	defer server.Close()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	digest, err := store.FromURL(server.URL)
	if err != nil {
		t.Fatalf("Failed to store thumbnail from URL: %v", err)
	}
	if !hexDigest.MatchString(digest) {
		t.Errorf("Expected a 32 char hex digest, got %q", digest)
	}

	if _, err := os.Stat(store.Path(digest)); err != nil {
		t.Errorf("Expected stored file for digest: %v", err)
	}
}

func TestFromURLErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, err := store.FromURL(server.URL); err == nil {
		t.Error("Expected an error for a non-200 response")
	}
}
