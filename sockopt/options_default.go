//go:build unix && !linux

package sockopt

import "golang.org/x/sys/unix"

// MaxSegOptionName is the option Patch B removes from the table.
const MaxSegOptionName = "TCP_MAXSEG"

// Non-Linux platforms only expose a subset of the TCP options the pyamqp
// transport uses; the reproduction itself targets Linux containers.
var defaultOptionOrder = []string{
	"TCP_NODELAY",
	"TCP_MAXSEG",
}

var knownOptions = map[string]knownOption{
	"TCP_NODELAY": {level: unix.IPPROTO_TCP, opt: unix.TCP_NODELAY, value: 1},
	"TCP_MAXSEG":  {level: unix.IPPROTO_TCP, opt: unix.TCP_MAXSEG, value: 16384},
}
