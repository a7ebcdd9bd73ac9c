package sockopt

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSetter never touches the kernel, it only records the attempts;
// syscall behavior is covered by the patch tests with injected errnos.
func recordingSetter(attempted *[]string) Setter {
	return func(fd uintptr, opt Option) error {
		*attempted = append(*attempted, opt.Name)
		return nil
	}
}

func newLocalListener(t *testing.T) net.Listener {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = listener.Close()
	})
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()
	return listener
}

func Test_GivenDialer_WhenDial_ThenAppliesTableInOrder(t *testing.T) {
	listener := newLocalListener(t)

	var attempted []string
	table := Table{
		{Name: "TCP_NODELAY", Value: 1},
		{Name: "TCP_MAXSEG", Value: 16384},
	}
	dialer := NewDialer(table, recordingSetter(&attempted))

	conn, err := dialer.DialContext(context.Background(), "tcp", listener.Addr().String())

	require.NoError(t, err)
	require.NoError(t, conn.Close())
	assert.Equal(t, []string{"TCP_NODELAY", "TCP_MAXSEG"}, attempted)
}

func Test_GivenPatchBDialer_WhenDial_ThenMaxSegNeverAttempted(t *testing.T) {
	listener := newLocalListener(t)

	table, _ := Configure(PatchDropMaxSeg, nil, log.NewLogger())
	var attempted []string
	dialer := NewDialer(table, recordingSetter(&attempted))

	conn, err := dialer.DialContext(context.Background(), "tcp", listener.Addr().String())

	require.NoError(t, err)
	require.NoError(t, conn.Close())
	assert.NotContains(t, attempted, MaxSegOptionName)
	assert.NotEmpty(t, attempted)
}

func Test_GivenFailingSetter_WhenDial_ThenDialFails(t *testing.T) {
	listener := newLocalListener(t)

	applyErr := errors.New("option rejected")
	table := Table{{Name: "TCP_MAXSEG", Value: 16384}}
	dialer := NewDialer(table, func(fd uintptr, opt Option) error { return applyErr })

	_, err := dialer.DialContext(context.Background(), "tcp", listener.Addr().String())

	require.Error(t, err)
	assert.ErrorIs(t, err, applyErr)
	assert.Contains(t, err.Error(), "TCP_MAXSEG")
}
