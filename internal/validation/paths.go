// Package validation checks untrusted names before they are joined onto
// filesystem paths.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidName is wrapped by every rejection from ValidateServiceName.
var ErrInvalidName = errors.New("invalid name")

// ValidateServiceName checks that a service name supplied by a web page is a
// single path element. It rejects:
//   - empty names
//   - names containing null bytes
//   - names containing path separators (/ or \)
//   - the special names "." and ".."
//
// Other dots are allowed, so "Foo..Bar" is a valid (if unusual) name.
func ValidateServiceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: name contains null byte: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: name cannot contain path separators: %s", ErrInvalidName, name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: name cannot be %q", ErrInvalidName, name)
	}
	// Drive-relative names such as "C:" resolve outside the base on Windows.
	if filepath.VolumeName(name) != "" {
		return fmt.Errorf("%w: name cannot carry a volume: %s", ErrInvalidName, name)
	}
	return nil
}

// ValidatePathInDirectory checks that path, once cleaned and resolved against
// baseDir, stays within baseDir. Relative baseDirs are made absolute first.
//
//	ValidatePathInDirectory("../../etc", "/data")  // error: escapes base dir
//	ValidatePathInDirectory("svc/1", "/data")      // ok
func ValidatePathInDirectory(path, baseDir string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if baseDir == "" {
		return fmt.Errorf("base directory cannot be empty")
	}

	base, err := filepath.Abs(filepath.Clean(baseDir))
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %w", err)
	}

	resolved := filepath.Clean(path)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(base, resolved)
	}

	rel, err := filepath.Rel(base, resolved)
	if err != nil {
		return fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory: %s (base: %s)", path, baseDir)
	}
	return nil
}
