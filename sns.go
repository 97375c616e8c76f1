package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// snsMaxMessageBytes is the SNS publish limit. snsTrailerBytes is kept free
// for the omitted-errors line.
const (
	snsMaxMessageBytes = 256 * 1024
	snsTrailerBytes    = 64
)

func NewSNSNotifier(ctx context.Context, settings Settings) (Notifier, error) {
	var notifier Notifier

	cfg, cfgErr := loadAWSConfig(ctx, settings)
	if cfgErr != nil {
		return notifier, cfgErr
	}
	snsClient := &SNSClient{sns.NewFromConfig(cfg)}
	notifier = &SNSNotifier{Client: snsClient, Topic: settings.SNSTopic}

	return notifier, nil
}

type SNSClientIface interface {
	PublishMessage(msg *sns.PublishInput) error
}

type SNSClient struct {
	Client *sns.Client
}

func (s *SNSClient) PublishMessage(msg *sns.PublishInput) error {
	_, publishErr := s.Client.Publish(context.TODO(), msg)
	return publishErr
}

// SNSNotifier publishes a message listing failed actions. Runs without
// failures publish nothing.
type SNSNotifier struct {
	Client SNSClientIface
	Topic  string
}

type NotificationContext struct {
	Action string
	Key    string
	Error  error
}

func (s *SNSNotifier) NotifySyncResults(settings Settings, resultMap *ResultMap) error {
	errors := make([]NotificationContext, 0)

	for key, err := range resultMap.Delete {
		if err != nil {
			errors = append(errors, NotificationContext{Action: "Delete", Key: key, Error: err})
		}
	}
	for key, err := range resultMap.Upload {
		if err != nil {
			errors = append(errors, NotificationContext{Action: "Upload", Key: key, Error: err})
		}
	}
	if resultMap.Invalidation != nil {
		errors = append(errors, NotificationContext{
			Action: "Invalidate",
			Key:    settings.Distribution,
			Error:  resultMap.Invalidation,
		})
	}

	// if no errors we dont need to send any notification
	if len(errors) == 0 {
		return nil
	}

	sort.Slice(errors, func(i, j int) bool {
		if errors[i].Action != errors[j].Action {
			return errors[i].Action < errors[j].Action
		}
		return errors[i].Key < errors[j].Key
	})

	notificationBody := ""
	for i, ctx := range errors {
		entry := fmt.Sprintf(
			"Action: %s\nKey: %s\nError: %s\n\n\n",
			ctx.Action,
			ctx.Key,
			ctx.Error,
		)
		if len(notificationBody)+len(entry) > snsMaxMessageBytes-snsTrailerBytes {
			notificationBody += fmt.Sprintf("%d more errors omitted\n", len(errors)-i)
			break
		}
		notificationBody += entry
	}

	snsPublishReq := &sns.PublishInput{
		Message:  aws.String(notificationBody),
		TopicArn: aws.String(s.Topic),
		Subject:  aws.String(fmt.Sprintf("Sync Errors: %s -> %s", settings.Dir, settings.Bucket)),
	}

	return s.Client.PublishMessage(snsPublishReq)
}
