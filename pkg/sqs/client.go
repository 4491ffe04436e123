package sqs

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSClient is the subset of *sqs.Client the worker and sender use
type SQSClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

var _ SQSClient = (*sqs.Client)(nil)

// queueURLCache resolves queue names to URLs once per name
type queueURLCache struct {
	client SQSClient
	mu     sync.RWMutex
	urls   map[string]string
}

func newQueueURLCache(client SQSClient) *queueURLCache {
	return &queueURLCache{client: client, urls: make(map[string]string)}
}

func (c *queueURLCache) get(ctx context.Context, queueName string) (string, error) {
	c.mu.RLock()
	url, ok := c.urls[queueName]
	c.mu.RUnlock()
	if ok {
		return url, nil
	}

	result, err := c.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: &queueName})
	if err != nil {
		return "", fmt.Errorf("unable to get queue URL for %s: %w", queueName, err)
	}
	if result.QueueUrl == nil {
		return "", fmt.Errorf("queue %s has no URL", queueName)
	}

	c.mu.Lock()
	c.urls[queueName] = *result.QueueUrl
	c.mu.Unlock()
	return *result.QueueUrl, nil
}
