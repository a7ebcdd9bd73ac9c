package sockopt

import (
	"errors"

	"github.com/bitrise-io/go-utils/v2/log"
	"golang.org/x/sys/unix"
)

// Setter applies a single option to a connected socket's file descriptor.
type Setter func(fd uintptr, opt Option) error

// RawSetter issues the setsockopt system call with no error handling. This
// is the unpatched behavior: any failure aborts the connection attempt,
// which is exactly how the SDK defect surfaces.
func RawSetter() Setter {
	return func(fd uintptr, opt Option) error {
		return unix.SetsockoptInt(int(fd), opt.Level, opt.Opt, opt.Value)
	}
}

// ResilientSetter wraps a setter so that EINVAL and ENOPROTOOPT are logged
// and skipped (Patch A). Every other error still propagates: the whitelist
// is exactly the two codes the kernel returns for options it rejects inside
// containers, nothing broader.
func ResilientSetter(next Setter, logger log.Logger) Setter {
	return func(fd uintptr, opt Option) error {
		err := next(fd, opt)
		if err == nil {
			return nil
		}
		if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOPROTOOPT) {
			logger.Warnf("[patch] skipping setsockopt(%s): %s", opt, err)
			return nil
		}
		return err
	}
}
