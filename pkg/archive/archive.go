package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extract unpacks a zip archive into the destination directory and returns
// the extracted paths in archive order. Entries resolving outside the
// destination are rejected.
func Extract(src, destination string) (paths []string, err error) {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("Open archive %s - %v", src, err)
	}
	defer zr.Close()

	if destination == "" {
		destination = "."
	}
	if err := os.MkdirAll(destination, 0755); err != nil {
		return nil, err
	}

	for _, file := range zr.File {
		path := filepath.Join(destination, file.Name)

		rel, err := filepath.Rel(destination, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			return paths, fmt.Errorf("Entry escapes destination - %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(path, file.Mode()); err != nil {
				return paths, err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return paths, err
		}

		fr, err := file.Open()
		if err != nil {
			return paths, err
		}

		fw, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, file.Mode())
		if err != nil {
			fr.Close()
			return paths, err
		}

		_, err = io.Copy(fw, fr)
		fw.Close()
		fr.Close()
		if err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}
