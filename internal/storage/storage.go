package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Store is an opaque blob store for profile pictures, keyed by a generated
// filename. Save returns the public URL or path callers record on the user.
type Store interface {
	Save(filename string, data []byte) (string, error)
}

// allowed image extensions and their content types.
var allowedExts = map[string]bool{".jpeg": true, ".jpg": true, ".png": true}

// AllowedImage reports whether the upload passes the extension and
// content-type restrictions (jpeg/jpg/png only).
func AllowedImage(filename, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExts[ext] {
		return false
	}
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png":
		return true
	}
	return false
}

// Filename generates the stored name for an upload: a millisecond timestamp
// prefix keeps names unique while preserving the original for operators.
func Filename(original string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(original))
}
