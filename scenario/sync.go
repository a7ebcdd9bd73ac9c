package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/msgdiag/servicebus-sockopt-repro/busclient"
)

// syncTrial sends the whole batch, then receives it back, on a single
// goroutine with blocking calls. It deliberately stays off the harness's
// socket-option path: this is the trial that passes everywhere, patched or
// not, establishing that the queue and credentials are fine.
type syncTrial struct {
	clients busclient.Factory
	logger  log.Logger
}

// NewSyncTrial ...
func NewSyncTrial(clients busclient.Factory, logger log.Logger) Runner {
	return &syncTrial{
		clients: clients,
		logger:  logger,
	}
}

func (t *syncTrial) Name() string {
	return "sync send/receive"
}

func (t *syncTrial) Transport() string {
	return "sync"
}

func (t *syncTrial) Run(ctx context.Context, params Params) Result {
	started := time.Now()
	err := t.run(ctx, params)
	return newResult(t.Name(), t.Transport(), started, err)
}

func (t *syncTrial) run(ctx context.Context, params Params) error {
	client, err := t.clients()
	if err != nil {
		return err
	}
	defer closeQuietly(ctx, client, "client", t.logger)

	sender, err := client.NewSender(params.QueueName)
	if err != nil {
		return err
	}
	defer closeQuietly(ctx, sender, "sender", t.logger)

	bodies := messageBodies("sync", params)
	for _, body := range bodies {
		if err := sender.Send(ctx, []byte(body), params.SessionID); err != nil {
			return fmt.Errorf("send failed: %w", err)
		}
	}
	t.logger.Debugf("sent %d messages into session %s", len(bodies), params.SessionID)

	receiver, err := client.AcceptSession(ctx, params.QueueName, params.SessionID)
	if err != nil {
		return err
	}
	defer closeQuietly(ctx, receiver, "session receiver", t.logger)

	received, err := receiveBatch(ctx, receiver, params)
	if err != nil {
		return err
	}

	return verifyBodies(bodies, received)
}

// receiveBatch drains the session until the batch is complete or the bounded
// window elapses. Messages are completed as they arrive; an incomplete batch
// is a failure, not a retry trigger.
func receiveBatch(ctx context.Context, receiver busclient.SessionReceiver, params Params) ([]string, error) {
	windowCtx, cancel := context.WithTimeout(ctx, params.ReceiveTimeout)
	defer cancel()

	var bodies []string
	for len(bodies) < params.MessageCount {
		messages, err := receiver.Receive(windowCtx, params.MessageCount-len(bodies))
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("receive failed: %w", err)
		}

		for _, message := range messages {
			// Complete with the parent context: the window bounds waiting
			// for delivery, not settlement of messages already in hand.
			if err := receiver.Complete(ctx, message); err != nil {
				return nil, fmt.Errorf("complete failed: %w", err)
			}
			bodies = append(bodies, string(message.Body))
		}

		if windowCtx.Err() != nil {
			break
		}
	}

	if len(bodies) < params.MessageCount {
		return nil, fmt.Errorf("received %d of %d messages within %s", len(bodies), params.MessageCount, params.ReceiveTimeout)
	}
	return bodies, nil
}
