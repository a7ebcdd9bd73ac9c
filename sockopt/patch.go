package sockopt

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
)

// PatchMode selects the workaround applied to the socket-option path before
// any client is constructed.
type PatchMode int

const (
	// PatchNone leaves the option path untouched; inside containers the
	// asynchronous trial is expected to fail with EINVAL.
	PatchNone PatchMode = iota
	// PatchResilientSetter (Patch A) tolerates EINVAL/ENOPROTOOPT per option.
	PatchResilientSetter
	// PatchDropMaxSeg (Patch B) removes TCP_MAXSEG from the option table.
	PatchDropMaxSeg
)

func (m PatchMode) String() string {
	switch m {
	case PatchNone:
		return "none"
	case PatchResilientSetter:
		return "A (resilient setsockopt)"
	case PatchDropMaxSeg:
		return "B (drop TCP_MAXSEG)"
	default:
		return "unknown"
	}
}

// ParsePatchMode parses the APPLY_PATCH environment value. The numeric
// selectors are canonical; true/yes spellings are kept for compatibility
// with the original reproduction script and select Patch A.
func ParsePatchMode(value string) (PatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "no", "false":
		return PatchNone, nil
	case "1", "a", "yes", "true":
		return PatchResilientSetter, nil
	case "2", "b":
		return PatchDropMaxSeg, nil
	default:
		return PatchNone, fmt.Errorf("invalid APPLY_PATCH value (%s), expected: unset/0, 1 or 2", value)
	}
}

// Configure builds the option table and setter for the given patch mode.
// Calling it twice with the same inputs yields the same state; it never
// mutates shared data, so the patch is applied exactly once per dialer.
func Configure(mode PatchMode, extra []Option, logger log.Logger) (Table, Setter) {
	table := DefaultTable().Merge(extra)
	setter := RawSetter()

	switch mode {
	case PatchResilientSetter:
		setter = ResilientSetter(setter, logger)
	case PatchDropMaxSeg:
		table = table.Without(MaxSegOptionName)
	}

	return table, setter
}
