// Package scenario holds the reproduction trials. Each trial is one-shot:
// it opens its own connection, sends a batch into a session, receives the
// batch back, and reports a Result. Failures are converted at the trial
// boundary; a trial never terminates the process.
package scenario

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
)

// Result is the outcome of a single trial.
type Result struct {
	Name      string        `json:"name"`
	Transport string        `json:"transport"`
	Passed    bool          `json:"passed"`
	Error     string        `json:"error,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Params are shared by every trial of a run.
type Params struct {
	QueueName      string
	SessionID      string
	MessageCount   int
	ReceiveTimeout time.Duration
}

// Runner is a single reproduction trial.
type Runner interface {
	Name() string
	Transport() string
	Run(ctx context.Context, params Params) Result
}

// Preflight dials the transport endpoint through the harness's own
// socket-option path before any SDK client is constructed. Inside containers
// this is where the unpatched defect surfaces.
type Preflight func(ctx context.Context) error

func newResult(name, transport string, started time.Time, err error) Result {
	result := Result{
		Name:      name,
		Transport: transport,
		Passed:    err == nil,
		Elapsed:   time.Since(started),
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// verifyBodies checks that the received batch is exactly the sent batch.
// Session queues are FIFO, but the comparison is order-insensitive so a
// redelivery does not mask the interesting failure modes.
func verifyBodies(sent, received []string) error {
	if len(received) != len(sent) {
		return fmt.Errorf("received %d of %d messages", len(received), len(sent))
	}

	wanted := append([]string(nil), sent...)
	got := append([]string(nil), received...)
	sort.Strings(wanted)
	sort.Strings(got)

	for i := range wanted {
		if wanted[i] != got[i] {
			return fmt.Errorf("body mismatch: sent %q, got %q", wanted[i], got[i])
		}
	}
	return nil
}

func messageBodies(prefix string, params Params) []string {
	bodies := make([]string, 0, params.MessageCount)
	for i := 0; i < params.MessageCount; i++ {
		bodies = append(bodies, fmt.Sprintf("%s-%s-%d", prefix, params.SessionID, i))
	}
	return bodies
}

type closer interface {
	Close(ctx context.Context) error
}

func closeQuietly(ctx context.Context, c closer, what string, logger log.Logger) {
	if err := c.Close(ctx); err != nil {
		logger.Warnf("Failed to close %s: %s", what, err)
	}
}
