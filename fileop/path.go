package fileop

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/arloliu/rle/errs"
)

// SplitExt splits path into the part before its final extension and the
// extension without the leading dot.
//
// Returns ErrUnsupportedExtension when the final path element has no extension.
func SplitExt(path string) (string, string, error) {
	ext := filepath.Ext(path)
	if len(ext) <= 1 {
		return "", "", fmt.Errorf("%w: %q has no extension", errs.ErrUnsupportedExtension, path)
	}

	return path[:len(path)-len(ext)], ext[1:], nil
}

// CheckExtension verifies that path ends in ".<want>". The match is case sensitive.
func CheckExtension(path, want string) error {
	_, ext, err := SplitExt(path)
	if err != nil {
		return err
	}
	if ext != want {
		return fmt.Errorf("%w: %q, expected .%s", errs.ErrUnsupportedExtension, path, want)
	}

	return nil
}

// UniqueOutputPath derives the output path of input by replacing its extension
// with ext. When that path exists, _1, _2 and so on are appended to the base
// name until an unused path is found.
//
// Example: with notes.rle and notes_1.rle present, notes.txt maps to notes_2.rle.
func UniqueOutputPath(fs afero.Fs, input, ext string) (string, error) {
	base, _, err := SplitExt(input)
	if err != nil {
		return "", err
	}

	candidate := base + "." + ext
	for i := 1; ; i++ {
		exists, err := afero.Exists(fs, candidate)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d.%s", base, i, ext)
	}
}
