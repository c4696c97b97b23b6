package rewrite

import (
	"context"
	"fmt"

	"github.com/specialistvlad/optsmigrate/internal/annotation"
	"github.com/specialistvlad/optsmigrate/internal/ctxlog"
)

// Policy decides what happens when an annotation option is already defined
// in the options table it is migrated into.
type Policy int

const (
	// PolicyFail rejects the document.
	PolicyFail Policy = iota
	// PolicyKeep keeps the existing value and drops the annotation value.
	PolicyKeep
	// PolicyReplace overwrites the existing value with the annotation value.
	PolicyReplace
)

// ParsePolicy maps a flag value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "fail", "":
		return PolicyFail, nil
	case "keep":
		return PolicyKeep, nil
	case "replace":
		return PolicyReplace, nil
	}
	return PolicyFail, fmt.Errorf("unknown conflict policy %q: must be 'fail', 'keep' or 'replace'", s)
}

func (p Policy) String() string {
	switch p {
	case PolicyFail:
		return "fail"
	case PolicyKeep:
		return "keep"
	case PolicyReplace:
		return "replace"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// subTable marks an existing option key that is defined as a table.
const subTable = -1

// merge splits opts into options that are new to the destination and
// options that replace an existing value. existing maps each defined key to
// a caller-specific position, or subTable.
func (r *Rewriter) merge(ctx context.Context, existing map[string]int, opts annotation.Options) (fresh, replaced annotation.Options, err error) {
	logger := ctxlog.FromContext(ctx)
	for _, opt := range opts {
		pos, ok := existing[opt.Key]
		if !ok {
			fresh = append(fresh, opt)
			continue
		}
		switch {
		case r.policy == PolicyKeep:
			logger.Warn("Option already defined, keeping existing value.", "key", opt.Key, "dropped", opt.Value)
		case r.policy == PolicyReplace && pos != subTable:
			logger.Warn("Option already defined, replacing existing value.", "key", opt.Key, "value", opt.Value)
			replaced = append(replaced, opt)
		default:
			return nil, nil, fmt.Errorf("%w: %q", ErrOptionConflict, opt.Key)
		}
	}
	return fresh, replaced, nil
}
