package lint

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

var (
	// ErrFixOutOfRange is returned when a fix does not fit in the file.
	ErrFixOutOfRange = errors.New("lint: fix out of range")
	// ErrFileChanged is returned when the file no longer holds the content the typos were found in.
	ErrFileChanged = errors.New("lint: file changed since it was checked")
)

// Fixer collects the fixes of one file and writes them back in one go.
type Fixer struct {
	path    string
	content []byte
	mode    os.FileMode
	fixes   []Fix
}

// NewFixer reads path so fixes can be applied to it.
func NewFixer(path string) (*Fixer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &Fixer{
		path:    path,
		content: content,
		mode:    info.Mode().Perm(),
	}, nil
}

// Add records the fix of typo. Typos without an automated fix are ignored.
func (f *Fixer) Add(typo Typo) {
	fix := typo.Fix()
	if fix.Kind == FixNone {
		return
	}
	f.fixes = append(f.fixes, fix)
}

// Len returns the number of recorded fixes.
func (f *Fixer) Len() int {
	return len(f.fixes)
}

// Apply writes the file with every recorded fix applied and returns how many were applied.
// Nothing is written when no fix was recorded.
func (f *Fixer) Apply() (int, error) {
	if len(f.fixes) == 0 {
		return 0, nil
	}

	fixed, applied, err := applyFixes(f.content, f.fixes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", f.path, err)
	}
	if err := atomicWriteFile(f.path, fixed, f.mode); err != nil {
		return 0, err
	}

	f.content = fixed
	f.fixes = nil
	return applied, nil
}

// ApplyFixes applies the fixes of typos to the file at path.
// Nothing is written if the file differs from the source of any typo.
func ApplyFixes(path string, typos []Typo) (int, error) {
	fixer, err := NewFixer(path)
	if err != nil {
		return 0, err
	}
	for _, typo := range typos {
		if src := typo.Source(); src != nil && !bytes.Equal(src.Content, fixer.content) {
			return 0, fmt.Errorf("%s: %w", path, ErrFileChanged)
		}
		fixer.Add(typo)
	}
	return fixer.Apply()
}

// applyFixes removes the ranges of fixes from a copy of content.
// Fixes are applied from the highest offset down so earlier offsets stay valid.
// Several fixes at the same offset are applied once.
func applyFixes(content []byte, fixes []Fix) ([]byte, int, error) {
	sorted := slices.Clone(fixes)
	slices.SortStableFunc(sorted, func(a, b Fix) int {
		return b.Offset - a.Offset
	})

	out := slices.Clone(content)
	applied := 0
	last := -1
	for _, fix := range sorted {
		if fix.Offset == last {
			continue
		}
		if fix.Offset < 0 || fix.Length < 0 || fix.Offset+fix.Length > len(out) {
			return nil, 0, fmt.Errorf("%w: offset %d length %d", ErrFixOutOfRange, fix.Offset, fix.Length)
		}
		out = slices.Delete(out, fix.Offset, fix.Offset+fix.Length)
		last = fix.Offset
		applied++
	}
	return out, applied, nil
}

// atomicWriteFile replaces path with data through a temporary file in the same directory.
func atomicWriteFile(path string, data []byte, mode os.FileMode) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("write %s: %w", tempPath, err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("sync %s: %w", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tempPath, err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", tempPath, err)
	}

	success = true
	return nil
}
