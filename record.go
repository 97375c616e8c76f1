package main

import (
	"path/filepath"
	"time"
)

// FileRecord is the part of a manifest entry shared by local files and
// remote objects. Path is relative and slash separated.
type FileRecord struct {
	Path    string
	ModTime time.Time
}

// LocalFile is a file found under Dir.
type LocalFile struct {
	FileRecord
	Dir string
}

func (f LocalFile) FullPath() string {
	return filepath.Join(f.Dir, filepath.FromSlash(f.Path))
}

// ObjectHandle is only meaningful to the BucketClient that listed the object.
type ObjectHandle interface{}

// RemoteObject is an object found in the destination bucket. ETag is the
// dequoted content hash reported by the store.
type RemoteObject struct {
	FileRecord
	ETag   string
	Size   int64
	Handle ObjectHandle
}
