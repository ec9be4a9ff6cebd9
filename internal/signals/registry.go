package signals

import (
	"fmt"

	"github.com/gameradar/radar/internal/profile"
)

// Registry holds the ordered list of enabled signals for a run. Order only
// affects log and failure-summary ordering; the merge is commutative.
type Registry struct {
	signals []Signal
}

// BuildRegistry selects, in profile order, the enabled signals from the
// available set, and rejects configurations where two enabled signals declare
// the same score key.
func BuildRegistry(cfg *profile.Config, available []Signal) (*Registry, error) {
	byName := make(map[string]Signal, len(available))
	for _, sig := range available {
		if _, dup := byName[sig.Name()]; dup {
			return nil, fmt.Errorf("signal %q registered twice", sig.Name())
		}
		byName[sig.Name()] = sig
	}

	keyOwner := make(map[string]string)
	enabled := make([]Signal, 0, len(cfg.Signals.Enabled))

	for _, name := range cfg.Signals.Enabled {
		sig, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown signal %q in profile", name)
		}

		for _, key := range sig.Keys() {
			if owner, taken := keyOwner[key]; taken {
				return nil, fmt.Errorf("score key %q declared by both %q and %q", key, owner, name)
			}
			keyOwner[key] = name
		}

		enabled = append(enabled, sig)
	}

	return &Registry{signals: enabled}, nil
}

// Signals returns the enabled signals in profile order.
func (r *Registry) Signals() []Signal {
	return r.signals
}

// Len returns the number of enabled signals.
func (r *Registry) Len() int {
	return len(r.signals)
}
