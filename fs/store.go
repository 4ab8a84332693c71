package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/tailor"
)

// Ensure Store implements tailor.ExtractionWriter at compile time.
var _ tailor.ExtractionWriter = (*Store)(nil)

// Store implements tailor.ExtractionWriter with atomic update semantics.
// Files are written to a temporary directory, then moved into place on Commit.
// Documents whose names map to the same text file get numbered suffixes
// (resume.txt, resume-2.txt) so every document keeps its own file.
type Store struct {
	baseDir string
	name    string
	now     func() time.Time

	mu      sync.Mutex
	written map[string]struct{}
}

// NewStore creates a new Store.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewStore(baseDir, name string) *Store {
	return &Store{
		baseDir: baseDir,
		name:    name,
		now:     time.Now,
		written: make(map[string]struct{}),
	}
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *Store) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// WriteExtraction saves the extraction for the named document.
func (s *Store) WriteExtraction(name string, ext *tailor.Extraction) error {
	relPath, err := NameToPath(name)
	if err != nil {
		return err
	}
	relPath = s.reserve(relPath)

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	content := FormatExtraction(filepath.Base(name), ext, s.now())
	return os.WriteFile(filepath.Join(s.tempDir(), relPath), []byte(content), 0644)
}

// reserve returns relPath, or the first free numbered variant of it when
// an earlier document already claimed that file.
func (s *Store) reserve(relPath string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ext := filepath.Ext(relPath)
	stem := strings.TrimSuffix(relPath, ext)
	candidate := relPath
	for n := 2; ; n++ {
		// Names differing only in case count as taken.
		key := strings.ToLower(candidate)
		if _, taken := s.written[key]; !taken {
			s.written[key] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
}

// Commit replaces the output directory with everything written so far.
func (s *Store) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything written so far.
func (s *Store) Abort() error {
	return os.RemoveAll(s.tempDir())
}
