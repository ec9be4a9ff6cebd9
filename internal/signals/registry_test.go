package signals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/profile"
)

type stubSignal struct {
	name string
	keys []string
}

func (s *stubSignal) Name() string   { return s.name }
func (s *stubSignal) Keys() []string { return s.keys }

func (s *stubSignal) Evaluate(context.Context, *contracts.Game, *Context) (contracts.Result, error) {
	return contracts.Result{}, nil
}

func profileEnabling(names ...string) *profile.Config {
	cfg := &profile.Config{}
	cfg.Signals.Enabled = names
	return cfg
}

func TestBuildRegistry_ProfileOrder(t *testing.T) {
	available := []Signal{
		&stubSignal{name: "a", keys: []string{"a_score"}},
		&stubSignal{name: "b", keys: []string{"b_score"}},
		&stubSignal{name: "c", keys: []string{"c_score"}},
	}

	reg, err := BuildRegistry(profileEnabling("c", "a"), available)
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())
	assert.Equal(t, "c", reg.Signals()[0].Name())
	assert.Equal(t, "a", reg.Signals()[1].Name())
}

func TestBuildRegistry_UnknownSignal(t *testing.T) {
	available := []Signal{&stubSignal{name: "a", keys: []string{"a_score"}}}

	_, err := BuildRegistry(profileEnabling("nope"), available)
	assert.ErrorContains(t, err, "unknown signal")
}

func TestBuildRegistry_DuplicateScoreKey(t *testing.T) {
	available := []Signal{
		&stubSignal{name: "a", keys: []string{"shared_score"}},
		&stubSignal{name: "b", keys: []string{"shared_score"}},
	}

	_, err := BuildRegistry(profileEnabling("a", "b"), available)
	assert.ErrorContains(t, err, "shared_score")
}

func TestBuildRegistry_DuplicateRegistration(t *testing.T) {
	available := []Signal{
		&stubSignal{name: "a", keys: []string{"a_score"}},
		&stubSignal{name: "a", keys: []string{"other_score"}},
	}

	_, err := BuildRegistry(profileEnabling("a"), available)
	assert.ErrorContains(t, err, "registered twice")
}

func TestBuildRegistry_DisabledSignalKeysIgnored(t *testing.T) {
	// two signals share a key but only one is enabled
	available := []Signal{
		&stubSignal{name: "a", keys: []string{"shared_score"}},
		&stubSignal{name: "b", keys: []string{"shared_score"}},
	}

	reg, err := BuildRegistry(profileEnabling("b"), available)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}
