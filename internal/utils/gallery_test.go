package utils

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// minimal valid PNG header, enough for content sniffing
var pngBytes = []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 100))

func TestEncodeResolveRoundTrip(t *testing.T) {
	root := t.TempDir()
	folder := "clio-v-abc123"
	if err := os.MkdirAll(filepath.Join(root, folder), 0o755); err != nil {
		t.Fatal(err)
	}
	name := "front-3f2a.png"
	path := filepath.Join(root, folder, name)
	if err := os.WriteFile(path, pngBytes, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveGalleryFile(root, folder, EncodeImageName(name))
	if err != nil {
		t.Fatalf("ResolveGalleryFile: %v", err)
	}
	if got != path {
		t.Errorf("resolved %q, want %q", got, path)
	}

	// padded tokens from older clients resolve too
	padded := base64.URLEncoding.EncodeToString([]byte(name))
	if _, err := ResolveGalleryFile(root, folder, padded); err != nil {
		t.Errorf("padded token rejected: %v", err)
	}
}

func TestResolveGalleryFileRejects(t *testing.T) {
	root := t.TempDir()
	folder := "clio-v-abc123"
	if err := os.MkdirAll(filepath.Join(root, folder), 0o755); err != nil {
		t.Fatal(err)
	}
	// a file outside the gallery that a traversal token would target
	secret := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(secret, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	tokens := map[string]string{
		"not base64":      "not%%base64!!",
		"empty name":      EncodeImageName(""),
		"parent escape":   EncodeImageName("../secret.txt"),
		"absolute path":   EncodeImageName(secret),
		"backslash":       EncodeImageName("..\\secret.txt"),
		"missing file":    EncodeImageName("nothere.png"),
		"directory":       EncodeImageName("."),
		"nested traversal": EncodeImageName("sub/../../secret.txt"),
	}
	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			if _, err := ResolveGalleryFile(root, folder, token); !errors.Is(err, ErrNotFound) {
				t.Errorf("token resolved or wrong error: %v", err)
			}
		})
	}
}

func TestGalleryURLs(t *testing.T) {
	root := t.TempDir()
	folder := "golf-7-def456"
	dir := filepath.Join(root, folder)
	if err := os.MkdirAll(filepath.Join(dir, "ignored-subdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.png", "b.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), pngBytes, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	urls := GalleryURLs(root, folder, "https://api.example.com/", 9)
	if len(urls) != 2 {
		t.Fatalf("got %d urls, want 2 (subdirectory must be skipped): %v", len(urls), urls)
	}
	want := "https://api.example.com/image/9/" + EncodeImageName("a.png")
	if urls[0] != want {
		t.Errorf("urls[0] = %q, want %q", urls[0], want)
	}
}

func TestGalleryURLsMissingDir(t *testing.T) {
	if urls := GalleryURLs(t.TempDir(), "does-not-exist", "http://x", 1); urls == nil || len(urls) != 0 {
		t.Errorf("missing directory: got %v, want empty non-nil slice", urls)
	}
	if urls := GalleryURLs(t.TempDir(), "", "http://x", 1); len(urls) != 0 {
		t.Errorf("empty folder: got %v, want empty slice", urls)
	}
}

func TestValidateImage(t *testing.T) {
	if mime, err := ValidateImage(pngBytes); err != nil || mime != "image/png" {
		t.Errorf("png rejected: mime=%q err=%v", mime, err)
	}
	if _, err := ValidateImage(nil); err == nil {
		t.Error("empty file accepted")
	}
	if _, err := ValidateImage([]byte("%PDF-1.4 not an image at all......")); err == nil {
		t.Error("non-image content accepted")
	}
	big := make([]byte, MaxImageBytes+1)
	copy(big, pngBytes)
	if _, err := ValidateImage(big); err == nil {
		t.Error("oversized file accepted")
	}
}

func TestDataURI(t *testing.T) {
	uri := DataURI("image/png", []byte{1, 2, 3})
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("uri = %q", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	if err != nil || string(raw) != "\x01\x02\x03" {
		t.Errorf("payload does not round-trip: %v %v", raw, err)
	}
}
