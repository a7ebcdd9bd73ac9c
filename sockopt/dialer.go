package sockopt

import (
	"context"
	"fmt"
	"net"
	"syscall"
	"time"
)

const defaultDialTimeout = 10 * time.Second

// Dialer opens TCP connections and applies the option table to each socket
// right after it is created, before the connect call completes. It is the
// explicit stand-in for the option-application routine the Python
// reproduction had to monkey-patch: both the table and the setter are
// injected, so the patch strategies compose without touching any library.
type Dialer struct {
	table   Table
	setter  Setter
	timeout time.Duration
}

// NewDialer returns a dialer applying the given table through the given
// setter.
func NewDialer(table Table, setter Setter) *Dialer {
	return &Dialer{
		table:   table,
		setter:  setter,
		timeout: defaultDialTimeout,
	}
}

// Table exposes the option set this dialer attempts, for reporting.
func (d *Dialer) Table() Table {
	return d.table
}

// DialContext opens a TCP connection with the socket options applied.
func (d *Dialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	dialer := net.Dialer{
		Timeout: d.timeout,
		Control: d.control,
	}
	return dialer.DialContext(ctx, network, address)
}

// Dial matches the amqp091.Config.Dial signature, so the control scenario
// can hand the whole option path to the broker client.
func (d *Dialer) Dial(network, address string) (net.Conn, error) {
	return d.DialContext(context.Background(), network, address)
}

func (d *Dialer) control(network, address string, rawConn syscall.RawConn) error {
	var applyErr error
	controlErr := rawConn.Control(func(fd uintptr) {
		for _, opt := range d.table {
			if err := d.setter(fd, opt); err != nil {
				applyErr = fmt.Errorf("setsockopt(%s) on %s: %w", opt, address, err)
				return
			}
		}
	})
	if controlErr != nil {
		return controlErr
	}
	return applyErr
}
