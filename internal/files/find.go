// Package files implements the filesystem collaborators of the converters:
// discovering input files, reading schema validated JSON and writing output.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrNotDirectory    = errors.New("not a directory")
	ErrConflictingName = errors.New("exact and prefix filters are mutually exclusive")
	ErrMissingFile     = errors.New("required file not found")
	ErrMultipleFiles   = errors.New("multiple files found where one is required")
)

// FindOptions filters discovered files. Extension is matched without the
// leading dot. At most one of Exact and Prefix may be set; both compare
// against the basename with its extension removed.
type FindOptions struct {
	Extension string
	Exact     string
	Prefix    string
}

// Find walks root recursively and returns the sorted absolute paths of every
// regular file matching opts. No matches is not an error.
func Find(root string, opts FindOptions) ([]string, error) {
	if opts.Exact != "" && opts.Prefix != "" {
		return nil, ErrConflictingName
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}

	ext := strings.TrimPrefix(opts.Extension, ".")
	var out []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if matches(d.Name(), ext, opts) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func matches(name, ext string, opts FindOptions) bool {
	fileExt := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext != "" && fileExt != ext {
		return false
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	switch {
	case opts.Exact != "":
		return base == opts.Exact
	case opts.Prefix != "":
		return strings.HasPrefix(base, opts.Prefix)
	default:
		return true
	}
}

// FindOne is Find for singleton inputs: exactly one match is required.
func FindOne(root string, opts FindOptions) (string, error) {
	paths, err := Find(root, opts)
	if err != nil {
		return "", err
	}
	name := opts.Exact + opts.Prefix
	switch len(paths) {
	case 0:
		return "", fmt.Errorf("%s: %w", name, ErrMissingFile)
	case 1:
		return paths[0], nil
	default:
		return "", fmt.Errorf("%s: %w (%d)", name, ErrMultipleFiles, len(paths))
	}
}
