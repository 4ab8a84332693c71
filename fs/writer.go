// Package fs provides file-based storage for extracted resume text.
package fs

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/tailor"
)

// NameToPath converts a document file name to a relative text file path.
// Directories are dropped and the extension is replaced with .txt.
// Example: uploads/jane-doe.pdf → jane-doe.txt
func NameToPath(name string) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", tailor.Errorf(tailor.EINVALID, "invalid document name %q", name)
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return stem + ".txt", nil
}

// FormatExtraction formats extracted text with YAML frontmatter recording
// where it came from and how it was recovered.
func FormatExtraction(name string, ext *tailor.Extraction, now time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(name)
	b.WriteString("\nmethod: ")
	b.WriteString(string(ext.Method))
	b.WriteString("\noutcome: ")
	b.WriteString(string(ext.Outcome))
	b.WriteString("\nextracted: ")
	b.WriteString(now.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(ext.Text)
	b.WriteString("\n")
	return b.String()
}
