package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/msgdiag/servicebus-sockopt-repro/sockopt"
	amqp "github.com/rabbitmq/amqp091-go"
)

// controlTrial runs the same send/receive batch against a plain AMQP 0.9.1
// broker. Unlike the Service Bus SDK, amqp091 exposes a dial hook, so here
// the option-applying dialer carries the real traffic end to end. A passing
// control with a failing async trial points the finger at the SDK, not the
// container network.
type controlTrial struct {
	url    string
	dialer *sockopt.Dialer
	logger log.Logger
}

// NewControlTrial ...
func NewControlTrial(url string, dialer *sockopt.Dialer, logger log.Logger) Runner {
	return &controlTrial{
		url:    url,
		dialer: dialer,
		logger: logger,
	}
}

func (t *controlTrial) Name() string {
	return "control send/receive (amqp 0.9.1)"
}

func (t *controlTrial) Transport() string {
	return "control"
}

func (t *controlTrial) Run(ctx context.Context, params Params) Result {
	started := time.Now()
	err := t.run(ctx, params)
	return newResult(t.Name(), t.Transport(), started, err)
}

func (t *controlTrial) run(ctx context.Context, params Params) error {
	conn, err := amqp.DialConfig(t.url, amqp.Config{Dial: t.dialer.Dial})
	if err != nil {
		return fmt.Errorf("broker dial failed: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			t.logger.Warnf("Failed to close broker connection: %s", err)
		}
	}()

	channel, err := conn.Channel()
	if err != nil {
		return err
	}

	queue, err := channel.QueueDeclare("repro-"+params.SessionID, false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare failed: %w", err)
	}

	bodies := messageBodies("control", params)
	for _, body := range bodies {
		err := channel.PublishWithContext(ctx, "", queue.Name, false, false, amqp.Publishing{
			ContentType: "text/plain",
			Body:        []byte(body),
		})
		if err != nil {
			return fmt.Errorf("publish failed: %w", err)
		}
	}

	deliveries, err := channel.Consume(queue.Name, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	window := time.NewTimer(params.ReceiveTimeout)
	defer window.Stop()

	var received []string
	for len(received) < params.MessageCount {
		select {
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("received %d of %d messages before the broker closed the channel", len(received), params.MessageCount)
			}
			if err := delivery.Ack(false); err != nil {
				return fmt.Errorf("ack failed: %w", err)
			}
			received = append(received, string(delivery.Body))
		case <-window.C:
			return fmt.Errorf("received %d of %d messages within %s", len(received), params.MessageCount, params.ReceiveTimeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return verifyBodies(bodies, received)
}
