package main

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// detectContentType prefers the extension, since sniffing reports text/plain
// for css and js. Files without a known extension are sniffed. An empty
// result means the store picks its default.
func detectContentType(fullPath string) string {
	if ext := strings.ToLower(filepath.Ext(fullPath)); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	mt, err := mimetype.DetectFile(fullPath)
	if err != nil {
		return ""
	}
	return mt.String()
}
