// Package busclient narrows the Service Bus SDK surface to the handful of
// session-queue operations the trials need. The harness never reimplements
// protocol logic; everything below these interfaces is the SDK's.
package busclient

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

// Message is a received queue message.
type Message struct {
	Body []byte

	raw *azservicebus.ReceivedMessage
}

// Sender sends messages into a queue.
type Sender interface {
	Send(ctx context.Context, body []byte, sessionID string) error
	Close(ctx context.Context) error
}

// SessionReceiver consumes a single session of a session-enabled queue.
type SessionReceiver interface {
	Receive(ctx context.Context, maxMessages int) ([]Message, error)
	Complete(ctx context.Context, message Message) error
	Close(ctx context.Context) error
}

// Client is a session-queue client bound to one namespace connection.
type Client interface {
	NewSender(queueName string) (Sender, error)
	AcceptSession(ctx context.Context, queueName, sessionID string) (SessionReceiver, error)
	Close(ctx context.Context) error
}

// Factory opens a fresh client; each trial gets its own connection so the
// trials stay independent.
type Factory func() (Client, error)

// NewFactory returns a Factory backed by the azservicebus SDK.
func NewFactory(connectionString string) Factory {
	return func() (Client, error) {
		inner, err := azservicebus.NewClientFromConnectionString(connectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Service Bus client: %w", err)
		}
		return &client{inner: inner}, nil
	}
}

type client struct {
	inner *azservicebus.Client
}

func (c *client) NewSender(queueName string) (Sender, error) {
	inner, err := c.inner.NewSender(queueName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender for queue %s: %w", queueName, err)
	}
	return &sender{inner: inner}, nil
}

func (c *client) AcceptSession(ctx context.Context, queueName, sessionID string) (SessionReceiver, error) {
	inner, err := c.inner.AcceptSessionForQueue(ctx, queueName, sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to accept session %s on queue %s: %w", sessionID, queueName, err)
	}
	return &sessionReceiver{inner: inner}, nil
}

func (c *client) Close(ctx context.Context) error {
	return c.inner.Close(ctx)
}

type sender struct {
	inner *azservicebus.Sender
}

func (s *sender) Send(ctx context.Context, body []byte, sessionID string) error {
	return s.inner.SendMessage(ctx, &azservicebus.Message{
		Body:      body,
		SessionID: &sessionID,
	}, nil)
}

func (s *sender) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

type sessionReceiver struct {
	inner *azservicebus.SessionReceiver
}

func (r *sessionReceiver) Receive(ctx context.Context, maxMessages int) ([]Message, error) {
	received, err := r.inner.ReceiveMessages(ctx, maxMessages, nil)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(received))
	for _, message := range received {
		messages = append(messages, Message{Body: message.Body, raw: message})
	}
	return messages, nil
}

func (r *sessionReceiver) Complete(ctx context.Context, message Message) error {
	if message.raw == nil {
		return fmt.Errorf("message was not produced by this receiver")
	}
	return r.inner.CompleteMessage(ctx, message.raw, nil)
}

func (r *sessionReceiver) Close(ctx context.Context) error {
	return r.inner.Close(ctx)
}
