// store.go
//
// Content-addressed thumbnail storage. Incoming images are decoded, scaled
// down to fit a fixed canvas, re-encoded as PNG and written once under their
// md5 digest.

package thumbnail

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// DefaultSize is the bounding square for generated thumbnails, in pixels.
const DefaultSize = 100

// maxFetchBytes caps remote image downloads.
const maxFetchBytes = 10 << 20

// Store writes thumbnails into a directory, keyed by content digest.
type Store struct {
	Dir    string
	Size   int
	Client *http.Client
}

// NewStore returns a Store writing into dir, creating it if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}
	return &Store{
		Dir:    dir,
		Size:   DefaultSize,
		Client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// FromReader decodes an image, thumbnails it and persists it. Returns the
// hex md5 digest of the encoded PNG, which is also the cache key: two inputs
// with identical decoded pixel content produce the same digest and at most
// one file.
func (s *Store) FromReader(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	encoded, err := s.encode(img)
	if err != nil {
		return "", err
	}

	digest := fmt.Sprintf("%x", md5.Sum(encoded))
	path := filepath.Join(s.Dir, digest+".png")

	// Write-once: an existing file with this digest already holds this content.
	if _, err := os.Stat(path); err == nil {
		return digest, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat thumbnail: %w", err)
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return "", fmt.Errorf("failed to write thumbnail: %w", err)
	}
	return digest, nil
}

// FromURL fetches a remote image and stores its thumbnail.
func (s *Store) FromURL(rawURL string) (string, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	return s.FromReader(io.LimitReader(resp.Body, maxFetchBytes))
}

// Path returns the file path for a stored digest.
func (s *Store) Path(digest string) string {
	return filepath.Join(s.Dir, digest+".png")
}

// encode scales img down to fit the bounding square, preserving aspect ratio,
// and returns the PNG bytes. Images already within bounds are re-encoded
// unscaled so the digest stays content-derived.
func (s *Store) encode(img image.Image) ([]byte, error) {
	size := s.Size
	if size <= 0 {
		size = DefaultSize
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > size || h > size {
		if w >= h {
			h = h * size / w
			w = size
		} else {
			w = w * size / h
			h = size
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
