// Package localfs provides the read-only filesystem enumeration used by the
// log directory resolver. Unlike a lenient walk, every OS error encountered while
// enumerating is returned to the caller so a resolution can abort cleanly.
// Dot files are ordinary entries.
package localfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileEntry represents a file or directory in the local filesystem.
type FileEntry struct {
	Path    string      // Full path to the file
	Name    string      // Base name of the file
	IsDir   bool        // True if this is a directory
	Regular bool        // True for regular files (symlinks are resolved)
	Mode    fs.FileMode // Type bits as reported by the directory read
	ModTime time.Time   // Last modification time (zero when InfoErr is set)

	// InfoErr is set when the entry was enumerated but its metadata could not
	// be read. Enumeration itself did not fail.
	InfoErr error
}

// IsDirectory reports whether path exists and is a directory.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListDirectory returns the immediate children of a directory, filtered by options.
// Entries are returned in the order the OS enumerates them; no sorting is applied.
// Any error opening or reading the directory is returned.
func ListDirectory(path string, opts ListOptions) ([]FileEntry, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	result := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		fe := newEntry(filepath.Join(path, entry.Name()), entry)
		if opts.FilesOnly && !fe.Regular {
			continue
		}
		result = append(result, fe)
	}

	return result, nil
}

// WalkFunc is the callback signature for Walk.
// Return filepath.SkipDir to skip a directory, or any other error to stop walking.
type WalkFunc func(entry FileEntry) error

// Walk traverses a directory tree, calling fn for each file and directory below root.
// The root itself is not passed to fn.
//
// The walk is depth-first and does not follow directory symlinks. The first error
// reading any directory stops the walk and is returned.
func Walk(root string, fn WalkFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if path == root {
			return nil
		}
		return fn(newEntry(path, d))
	})
}

// WalkFiles is a convenience wrapper around Walk that only visits regular files.
func WalkFiles(root string, fn WalkFunc) error {
	return Walk(root, func(entry FileEntry) error {
		if !entry.Regular {
			return nil // Skip directories, continue walking
		}
		return fn(entry)
	})
}

func newEntry(path string, d fs.DirEntry) FileEntry {
	fe := FileEntry{
		Path:    path,
		Name:    d.Name(),
		IsDir:   d.IsDir(),
		Regular: d.Type().IsRegular(),
		Mode:    d.Type(),
	}

	var info fs.FileInfo
	var err error
	if d.Type()&fs.ModeSymlink != 0 {
		// Classify and timestamp the link target, as a stat-based check would.
		info, err = os.Stat(path)
		if err == nil {
			fe.Regular = info.Mode().IsRegular()
		}
	} else {
		info, err = d.Info()
	}

	if err != nil {
		fe.InfoErr = err
		return fe
	}
	fe.ModTime = info.ModTime()
	return fe
}
