package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/msgdiag/servicebus-sockopt-repro/busclient"
	"golang.org/x/sync/errgroup"
)

// asyncTrial runs the sender and the receiver concurrently over one client
// connection, the closest Go analog of the original's asyncio client. This
// is the trial that fails with an invalid-argument socket error inside
// containers when no patch is armed.
type asyncTrial struct {
	clients   busclient.Factory
	preflight Preflight
	logger    log.Logger
}

// NewAsyncTrial ...
func NewAsyncTrial(clients busclient.Factory, preflight Preflight, logger log.Logger) Runner {
	return &asyncTrial{
		clients:   clients,
		preflight: preflight,
		logger:    logger,
	}
}

func (t *asyncTrial) Name() string {
	return "async send/receive"
}

func (t *asyncTrial) Transport() string {
	return "async"
}

func (t *asyncTrial) Run(ctx context.Context, params Params) Result {
	started := time.Now()
	err := t.run(ctx, params)
	return newResult(t.Name(), t.Transport(), started, err)
}

func (t *asyncTrial) run(ctx context.Context, params Params) error {
	if t.preflight != nil {
		if err := t.preflight(ctx); err != nil {
			return fmt.Errorf("transport preflight failed: %w", err)
		}
	}

	client, err := t.clients()
	if err != nil {
		return err
	}
	defer closeQuietly(ctx, client, "client", t.logger)

	bodies := messageBodies("async", params)

	var received []string
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		sender, err := client.NewSender(params.QueueName)
		if err != nil {
			return err
		}
		defer closeQuietly(ctx, sender, "sender", t.logger)

		for _, body := range bodies {
			if err := sender.Send(groupCtx, []byte(body), params.SessionID); err != nil {
				return fmt.Errorf("send failed: %w", err)
			}
		}
		return nil
	})

	group.Go(func() error {
		receiver, err := client.AcceptSession(groupCtx, params.QueueName, params.SessionID)
		if err != nil {
			return err
		}
		defer closeQuietly(ctx, receiver, "session receiver", t.logger)

		received, err = receiveBatch(groupCtx, receiver, params)
		return err
	})

	if err := group.Wait(); err != nil {
		return err
	}

	return verifyBodies(bodies, received)
}
