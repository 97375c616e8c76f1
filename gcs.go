package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSClient mirrors into a Google Cloud Storage bucket. Object MD5s are
// reported as hex so they compare like S3 ETags.
type GCSClient struct {
	Client *storage.Client
}

func NewGCSBucketClient(ctx context.Context) (BucketClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating gcs client: %w", err)
	}
	return &GCSClient{Client: client}, nil
}

func (s *GCSClient) ListObjects(ctx context.Context, bucketName string) ([]RemoteObject, error) {
	objects := make([]RemoteObject, 0)
	objIter := s.Client.Bucket(bucketName).Objects(ctx, nil)
	for {
		attrs, err := objIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return objects, fmt.Errorf("Bucket(%q).Objects: %w", bucketName, err)
		}
		objects = append(objects, RemoteObject{
			FileRecord: FileRecord{Path: attrs.Name, ModTime: attrs.Updated},
			ETag:       hex.EncodeToString(attrs.MD5),
			Size:       attrs.Size,
			Handle:     objectRef{Bucket: bucketName, Key: attrs.Name},
		})
	}

	return objects, nil
}

func (s *GCSClient) UploadFile(ctx context.Context, bucketName string, req UploadRequest) error {
	objWriter := s.Client.Bucket(bucketName).Object(req.Key).NewWriter(ctx)
	objWriter.ContentType = req.ContentType
	objWriter.CacheControl = req.CacheControl
	if _, uploadErr := io.Copy(objWriter, req.File); uploadErr != nil {
		objWriter.Close()
		return uploadErr
	}

	return objWriter.Close()
}

func (s *GCSClient) DeleteObject(ctx context.Context, handle ObjectHandle) error {
	ref, refErr := refFromHandle(handle)
	if refErr != nil {
		return refErr
	}

	return s.Client.Bucket(ref.Bucket).Object(ref.Key).Delete(ctx)
}
