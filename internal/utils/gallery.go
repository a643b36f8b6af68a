package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Gallery helpers.  An offer's images live in one directory under the
// configured gallery root; filenames are exposed to clients base64-encoded
// so URLs stay opaque and extension-free.

// ErrNotFound is returned when an encoded filename does not resolve to a
// regular file inside the offer's gallery directory.
var ErrNotFound = errors.New("gallery file not found")

// MaxImageBytes caps uploaded gallery and service images at 8 MiB.
const MaxImageBytes = 8 << 20

// allowedImageTypes is the upload whitelist, checked against the sniffed
// content type, never against the client-supplied filename or header.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// EncodeImageName returns the URL token for a gallery filename.
func EncodeImageName(name string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(name))
}

// GalleryURLs scans the gallery directory of an offer and returns one public
// URL per file, in directory-listing order.  A missing or unreadable
// directory yields an empty list, never an error.
func GalleryURLs(root, folder, publicRoot string, offerID uint64) []string {
	urls := []string{}
	if folder == "" {
		return urls
	}
	entries, err := os.ReadDir(filepath.Join(root, folder))
	if err != nil {
		return urls
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		urls = append(urls, fmt.Sprintf("%s/image/%d/%s",
			strings.TrimSuffix(publicRoot, "/"), offerID, EncodeImageName(e.Name())))
	}
	return urls
}

// ResolveGalleryFile decodes a base64 filename token and resolves it inside
// the offer's gallery directory.  The decoded name is canonicalized and
// checked for containment so a crafted token cannot escape the directory.
// Only an existing regular file resolves; everything else is ErrNotFound.
func ResolveGalleryFile(root, folder, token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// tolerate padded tokens from older clients
		raw, err = base64.URLEncoding.DecodeString(token)
		if err != nil {
			return "", ErrNotFound
		}
	}
	name := string(raw)
	if name == "" || strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		return "", ErrNotFound
	}
	dir := filepath.Clean(filepath.Join(root, folder))
	path := filepath.Clean(filepath.Join(dir, name))
	if !strings.HasPrefix(path, dir+string(filepath.Separator)) {
		return "", ErrNotFound
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrNotFound
	}
	return path, nil
}

// SniffMIME returns the detected content type of a byte slice.
func SniffMIME(data []byte) string {
	return http.DetectContentType(data)
}

// ValidateImage checks an uploaded image against the size cap and the
// content-type whitelist.  It returns the sniffed MIME type on success.
func ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty file")
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("file exceeds %d bytes", MaxImageBytes)
	}
	mime := http.DetectContentType(data)
	if !allowedImageTypes[mime] {
		return "", fmt.Errorf("unsupported image type %s", mime)
	}
	return mime, nil
}

// DataURI encodes validated image bytes as a data URI for inline storage
// (used by services images).
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
