package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
)

type Invalidator interface {
	CreateInvalidation(ctx context.Context, distributionID string, batch InvalidationBatch) error
}

type CloudFrontInvalidator struct {
	Client *cloudfront.Client
}

func NewCloudFrontInvalidator(ctx context.Context, settings Settings) (Invalidator, error) {
	cfg, err := loadAWSConfig(ctx, settings)
	if err != nil {
		return nil, err
	}
	return &CloudFrontInvalidator{Client: cloudfront.NewFromConfig(cfg)}, nil
}

// CreateInvalidation sends the batch's CallerReference so CloudFront treats
// a resubmitted diff as the same request.
func (c *CloudFrontInvalidator) CreateInvalidation(ctx context.Context, distributionID string, batch InvalidationBatch) error {
	_, err := c.Client.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(distributionID),
		InvalidationBatch: &types.InvalidationBatch{
			CallerReference: aws.String(batch.CallerReference),
			Paths: &types.Paths{
				Quantity: aws.Int32(int32(len(batch.Paths))),
				Items:    batch.Paths,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("invalidating %s: %w", distributionID, err)
	}
	return nil
}
