package source

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// Extension selects the files Walk returns.
const Extension = ".el"

// Walk returns the Emacs Lisp files below root. Directories are visited in
// lexical order of their paths, and each directory's own files come sorted.
func Walk(root string) ([]string, error) {
	root = filepath.Clean(root)
	files := map[string][]string{}
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if strings.HasSuffix(path, Extension) {
			dir := filepath.Dir(path)
			files[dir] = append(files[dir], path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(dirs)
	var paths []string
	for _, dir := range dirs {
		names := files[dir]
		slices.Sort(names)
		paths = append(paths, names...)
	}
	return paths, nil
}
