package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Sender handles sending messages to SQS queues
type Sender struct {
	sqsClient SQSClient
	queueURLs *queueURLCache
}

// NewSender creates and returns a new Sender
func NewSender(sqsClient SQSClient) *Sender {
	return &Sender{
		sqsClient: sqsClient,
		queueURLs: newQueueURLCache(sqsClient),
	}
}

// SendMessage serializes the provided body to JSON and sends it to the specified queue.
// It returns the SQS message id.
func (s *Sender) SendMessage(ctx context.Context, queueName string, body any) (string, error) {
	queueURL, err := s.queueURLs.get(ctx, queueName)
	if err != nil {
		return "", err
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to serialize message body to JSON: %w", err)
	}

	messageBody := string(jsonBody)
	output, err := s.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    &queueURL,
		MessageBody: &messageBody,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send message to queue %s: %w", queueName, err)
	}

	if output.MessageId == nil {
		return "", nil
	}
	return *output.MessageId, nil
}
