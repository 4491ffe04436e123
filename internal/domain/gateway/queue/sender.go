package queue

import "context"

// Sender publishes messages to a named queue
type Sender interface {
	// SendMessage encodes body as JSON and returns the broker message id
	SendMessage(ctx context.Context, queueName string, body any) (string, error)
}
