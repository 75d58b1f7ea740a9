package layout

import "fmt"

// Tier is the optimization level chosen once at load from the graph size.
type Tier int

const (
	TierNone Tier = iota
	TierMild
	TierMedium
	TierAggressive
)

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierMild:
		return "mild"
	case TierMedium:
		return "medium"
	case TierAggressive:
		return "aggressive"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Thresholds are the exclusive lower bounds of each tier: a size of exactly
// Mild still selects TierNone.
type Thresholds struct {
	Mild       int `yaml:"mild"`
	Medium     int `yaml:"medium"`
	Aggressive int `yaml:"aggressive"`
}

func (th Thresholds) Select(n int) Tier {
	switch {
	case n > th.Aggressive:
		return TierAggressive
	case n > th.Medium:
		return TierMedium
	case n > th.Mild:
		return TierMild
	}
	return TierNone
}

func (th Thresholds) isZero() bool {
	return th == Thresholds{}
}

// Tiers records the selected tier per concern.
type Tiers struct {
	Sibling Tier
	Island  Tier
	Node    Tier
	Render  Tier
}
