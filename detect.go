package main

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

const hashChunkSize = 4096

type ChangeDetector interface {
	ShouldReplace(local LocalFile, remote RemoteObject) (bool, error)
}

// ContentDetector replaces a remote object only when the local file is newer
// and its bytes differ. Size is checked before the file is hashed.
//
// A file whose content changed without its mtime moving past the remote
// timestamp is not replaced.
type ContentDetector struct{}

func (ContentDetector) ShouldReplace(local LocalFile, remote RemoteObject) (bool, error) {
	if !local.ModTime.After(remote.ModTime) {
		return false, nil
	}

	fullPath := local.FullPath()
	info, statErr := os.Stat(fullPath)
	if statErr != nil {
		return false, fmt.Errorf("stat %s: %w", fullPath, statErr)
	}
	if info.Size() != remote.Size {
		return true, nil
	}

	// S3 ETags of single-part uploads are the md5 of the content
	localHash, hashErr := fileHash(fullPath)
	if hashErr != nil {
		return false, hashErr
	}

	return localHash != remote.ETag, nil
}

func fileHash(path string) (string, error) {
	fd, openErr := os.Open(path)
	if openErr != nil {
		return "", fmt.Errorf("open %s: %w", path, openErr)
	}
	defer fd.Close()

	hash := md5.New()
	chunk := make([]byte, hashChunkSize)
	for {
		n, readErr := fd.Read(chunk)
		hash.Write(chunk[:n])
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("read %s: %w", path, readErr)
		}
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
