package sockopt

import "golang.org/x/sys/unix"

// MaxSegOptionName is the option Patch B removes from the table.
const MaxSegOptionName = "TCP_MAXSEG"

// The pyamqp transport applies these to every socket, in this order.
// TCP_USER_TIMEOUT is milliseconds, keepalive values are seconds.
var defaultOptionOrder = []string{
	"TCP_NODELAY",
	"TCP_MAXSEG",
	"TCP_KEEPIDLE",
	"TCP_KEEPINTVL",
	"TCP_KEEPCNT",
	"TCP_USER_TIMEOUT",
}

var knownOptions = map[string]knownOption{
	"TCP_NODELAY":      {level: unix.IPPROTO_TCP, opt: unix.TCP_NODELAY, value: 1},
	"TCP_MAXSEG":       {level: unix.IPPROTO_TCP, opt: unix.TCP_MAXSEG, value: 16384},
	"TCP_KEEPIDLE":     {level: unix.IPPROTO_TCP, opt: unix.TCP_KEEPIDLE, value: 60},
	"TCP_KEEPINTVL":    {level: unix.IPPROTO_TCP, opt: unix.TCP_KEEPINTVL, value: 10},
	"TCP_KEEPCNT":      {level: unix.IPPROTO_TCP, opt: unix.TCP_KEEPCNT, value: 9},
	"TCP_USER_TIMEOUT": {level: unix.IPPROTO_TCP, opt: unix.TCP_USER_TIMEOUT, value: 1000},
}
