package main

import (
	"context"
	"fmt"
	"os"
)

// BucketClient is the remote side of a sync: it lists a bucket as a
// manifest and applies uploads and deletes to it.
type BucketClient interface {
	ListObjects(ctx context.Context, bucket string) ([]RemoteObject, error)
	UploadFile(ctx context.Context, bucket string, req UploadRequest) error
	DeleteObject(ctx context.Context, handle ObjectHandle) error
}

type UploadRequest struct {
	Key          string
	File         *os.File
	ContentType  string
	CacheControl string
}

// objectRef is the handle both bundled clients attach to listed objects.
type objectRef struct {
	Bucket string
	Key    string
}

func refFromHandle(handle ObjectHandle) (objectRef, error) {
	ref, ok := handle.(objectRef)
	if !ok {
		return objectRef{}, fmt.Errorf("unsupported object handle %T", handle)
	}
	return ref, nil
}
