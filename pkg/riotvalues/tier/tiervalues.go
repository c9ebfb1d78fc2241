package tiervalues

import (
	"fmt"
	"slices"
	"strings"
)

// Tier that aggregates every player.
const All = "all"

// Suffix used by op.gg for a tier and every tier above it.
const plusSuffix = "_plus"

// Pre-sorted from the lowest to the highest tier.
var tierNames = []string{"iron", "bronze", "silver", "gold", "platinum", "emerald", "diamond", "master", "grandmaster", "challenger"}

// Normalize converts the tier to the op.gg format.
// Accepts "gold+" and "GOLD_PLUS" style for a tier and above.
func Normalize(tier string) (string, error) {
	tier = strings.ToLower(strings.TrimSpace(tier))
	if tier == All {
		return tier, nil
	}

	base := tier
	plus := false
	switch {
	case strings.HasSuffix(tier, "+"):
		base = strings.TrimSuffix(tier, "+")
		plus = true
	case strings.HasSuffix(tier, plusSuffix):
		base = strings.TrimSuffix(tier, plusSuffix)
		plus = true
	}

	index := slices.Index(tierNames, base)
	if index == -1 {
		return "", fmt.Errorf("unknown tier %q", tier)
	}

	if !plus {
		return base, nil
	}

	// Nothing is above the highest tier.
	if index == len(tierNames)-1 {
		return base, nil
	}
	return base + plusSuffix, nil
}
