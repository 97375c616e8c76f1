package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

type walkFunc func(string) ([]LocalFile, error)

// walkDirectory lists the regular files below dirPath with paths relative
// to it.
func walkDirectory(dirPath string) ([]LocalFile, error) {
	localFiles := make([]LocalFile, 0)
	walkErr := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		relPath, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			return fmt.Errorf("relative path of %s: %w", path, relErr)
		}

		localFiles = append(localFiles, LocalFile{
			FileRecord: FileRecord{Path: filepath.ToSlash(relPath), ModTime: info.ModTime()},
			Dir:        dirPath,
		})
		return nil
	})

	return localFiles, walkErr
}
