package contracts

import "fmt"

// Horizon selects which weighting profile and which time-windowed signals
// apply to a scan. It is a small closed set; anything else is a config error.
type Horizon string

const (
	// Horizon3D scores for the next stream or two.
	Horizon3D Horizon = "3d"
	// Horizon7D scores for the coming week.
	Horizon7D Horizon = "7d"
	// Horizon30D scores for the coming month.
	Horizon30D Horizon = "30d"
)

// Horizons lists all supported horizons in ascending window order.
func Horizons() []Horizon {
	return []Horizon{Horizon3D, Horizon7D, Horizon30D}
}

// ParseHorizon validates a horizon token from CLI flags or job config.
func ParseHorizon(s string) (Horizon, error) {
	switch Horizon(s) {
	case Horizon3D, Horizon7D, Horizon30D:
		return Horizon(s), nil
	}
	return "", fmt.Errorf("unknown horizon %q (want 3d, 7d or 30d)", s)
}

// Days returns the lookahead window in days.
func (h Horizon) Days() int {
	switch h {
	case Horizon3D:
		return 3
	case Horizon7D:
		return 7
	case Horizon30D:
		return 30
	}
	return 0
}

func (h Horizon) String() string {
	return string(h)
}
