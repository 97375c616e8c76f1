package main

import (
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type MockS3Client struct {
	UploadRequests []MockRequest
	DeleteRequests []MockRequest
	ListCalls      int
	mockList       []RemoteObject
	uploadErrs     map[string]error
	lock           sync.Mutex
}

type MockRequest struct {
	Bucket       string
	Key          string
	Body         string
	ContentType  string
	CacheControl string
}

func NewMockClient(mocked []RemoteObject) *MockS3Client {
	return &MockS3Client{
		UploadRequests: make([]MockRequest, 0),
		DeleteRequests: make([]MockRequest, 0),
		mockList:       mocked,
		uploadErrs:     make(map[string]error),
	}
}

func (s *MockS3Client) ListObjects(ctx context.Context, bucket string) ([]RemoteObject, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.ListCalls++
	return s.mockList, nil
}

func (s *MockS3Client) UploadFile(ctx context.Context, bucketName string, req UploadRequest) error {
	body, readErr := io.ReadAll(req.File)
	if readErr != nil {
		return readErr
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.UploadRequests = append(s.UploadRequests, MockRequest{
		Bucket:       bucketName,
		Key:          req.Key,
		Body:         string(body),
		ContentType:  req.ContentType,
		CacheControl: req.CacheControl,
	})
	return s.uploadErrs[req.Key]
}

func (s *MockS3Client) DeleteObject(ctx context.Context, handle ObjectHandle) error {
	ref, refErr := refFromHandle(handle)
	if refErr != nil {
		return refErr
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.DeleteRequests = append(s.DeleteRequests, MockRequest{Bucket: ref.Bucket, Key: ref.Key})
	return nil
}

type MockInvalidator struct {
	DistributionIDs []string
	Batches         []InvalidationBatch
}

func (m *MockInvalidator) CreateInvalidation(ctx context.Context, distributionID string, batch InvalidationBatch) error {
	m.DistributionIDs = append(m.DistributionIDs, distributionID)
	m.Batches = append(m.Batches, batch)
	return nil
}

type MockSNSClient struct {
	PublishRequests []*sns.PublishInput
}

func (c *MockSNSClient) PublishMessage(msg *sns.PublishInput) error {
	c.PublishRequests = append(c.PublishRequests, msg)
	return nil
}

func NewMockSNSClient() *MockSNSClient {
	return &MockSNSClient{
		PublishRequests: make([]*sns.PublishInput, 0),
	}
}

// mapDetector replaces exactly the paths in replace.
type mapDetector struct {
	replace map[string]bool
	err     error
}

func (d mapDetector) ShouldReplace(local LocalFile, remote RemoteObject) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.replace[local.Path], nil
}
