package util

import (
	"path"
	"strings"
)

const fallbackFileName = "resume.pdf"

// DisplayFileName reduces a client-supplied upload name to a safe base name.
// Directory parts are dropped and an empty or dot-only name becomes resume.pdf.
func DisplayFileName(name string) string {
	s := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	s = path.Base(s)
	s = strings.Trim(s, ". ")
	if s == "" || s == "/" {
		return fallbackFileName
	}
	return s
}
