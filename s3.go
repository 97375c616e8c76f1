package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Client struct {
	Client *s3.Client
}

func loadAWSConfig(ctx context.Context, settings Settings) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}
	if settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(settings.Profile))
	}
	if settings.Region != "" {
		opts = append(opts, config.WithRegion(settings.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("loading aws config: %w", err)
	}
	return cfg, nil
}

func NewS3BucketClient(ctx context.Context, settings Settings) (BucketClient, error) {
	cfg, err := loadAWSConfig(ctx, settings)
	if err != nil {
		return nil, err
	}
	return &S3Client{Client: s3.NewFromConfig(cfg)}, nil
}

func (s *S3Client) ListObjects(ctx context.Context, bucketName string) ([]RemoteObject, error) {
	objects := make([]RemoteObject, 0)
	listParams := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucketName),
	}
	paginator := s3.NewListObjectsV2Paginator(s.Client, listParams)
	for paginator.HasMorePages() {
		currentPage, pageErr := paginator.NextPage(ctx)
		if pageErr != nil {
			return objects, pageErr
		}
		for _, object := range currentPage.Contents {
			key := aws.ToString(object.Key)
			objects = append(objects, RemoteObject{
				FileRecord: FileRecord{Path: key, ModTime: aws.ToTime(object.LastModified)},
				ETag:       strings.Trim(aws.ToString(object.ETag), `"`),
				Size:       object.Size,
				Handle:     objectRef{Bucket: bucketName, Key: key},
			})
		}
	}

	return objects, nil
}

func (s *S3Client) UploadFile(ctx context.Context, bucketName string, req UploadRequest) error {
	putReq := &s3.PutObjectInput{
		Bucket:       aws.String(bucketName),
		Key:          aws.String(req.Key),
		Body:         req.File,
		CacheControl: aws.String(req.CacheControl),
	}
	if req.ContentType != "" {
		putReq.ContentType = aws.String(req.ContentType)
	}

	uploader := manager.NewUploader(s.Client)
	_, putErr := uploader.Upload(ctx, putReq)
	return putErr
}

func (s *S3Client) DeleteObject(ctx context.Context, handle ObjectHandle) error {
	ref, refErr := refFromHandle(handle)
	if refErr != nil {
		return refErr
	}

	delReq := &s3.DeleteObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	}
	_, delErr := s.Client.DeleteObject(ctx, delReq)

	return delErr
}
