package sockopt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Option is a single TCP-level socket option to be applied to an outgoing
// connection before the transport handshake starts.
type Option struct {
	Name  string
	Level int
	Opt   int
	Value int
}

func (o Option) String() string {
	return fmt.Sprintf("%s=%d", o.Name, o.Value)
}

// Table is the ordered set of socket options a dialer attempts to apply.
// This is the harness's equivalent of the option table the Python SDK keeps
// on its transport type; keeping it explicit is what makes the patch
// strategies expressible without touching library internals.
type Table []Option

// DefaultTable returns the options the pyamqp transport applies to every TCP
// socket it opens. The values are pyamqp's TCP defaults; TCP_MAXSEG is the
// option that triggers EINVAL inside containers.
func DefaultTable() Table {
	var table Table
	for _, name := range defaultOptionOrder {
		opt, ok := resolveKnownOption(name)
		if !ok {
			continue
		}
		table = append(table, opt)
	}
	return table
}

// Without returns a copy of the table with the named option removed. The
// receiver is left untouched so repeated configuration yields the same state.
func (t Table) Without(name string) Table {
	filtered := make(Table, 0, len(t))
	for _, opt := range t {
		if opt.Name == name {
			continue
		}
		filtered = append(filtered, opt)
	}
	return filtered
}

// Contains reports whether the table still carries the named option.
func (t Table) Contains(name string) bool {
	for _, opt := range t {
		if opt.Name == name {
			return true
		}
	}
	return false
}

// Merge overrides or appends the given options, keeping the table's order
// stable for options that are already present.
func (t Table) Merge(extra []Option) Table {
	merged := make(Table, len(t))
	copy(merged, t)
	for _, opt := range extra {
		replaced := false
		for i := range merged {
			if merged[i].Name == opt.Name {
				merged[i] = opt
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, opt)
		}
	}
	return merged
}

// ResolveOption turns a NAME=value token (for example TCP_KEEPIDLE=30) into
// an Option. Only options known on the current platform are accepted.
func ResolveOption(token string) (Option, error) {
	name, rawValue, found := strings.Cut(token, "=")
	if !found {
		return Option{}, fmt.Errorf("invalid socket option (%s), expected format: NAME=value", token)
	}

	value, err := strconv.Atoi(rawValue)
	if err != nil {
		return Option{}, fmt.Errorf("invalid socket option value (%s): %s", token, err)
	}

	opt, ok := resolveKnownOption(name)
	if !ok {
		return Option{}, fmt.Errorf("unknown socket option (%s), supported: %s", name, strings.Join(SupportedOptionNames(), ", "))
	}

	opt.Value = value
	return opt, nil
}

// SupportedOptionNames lists the option names resolvable on this platform.
func SupportedOptionNames() []string {
	names := make([]string, 0, len(knownOptions))
	for name := range knownOptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resolveKnownOption(name string) (Option, bool) {
	known, ok := knownOptions[name]
	if !ok {
		return Option{}, false
	}
	return Option{Name: name, Level: known.level, Opt: known.opt, Value: known.value}, true
}

type knownOption struct {
	level int
	opt   int
	value int
}
