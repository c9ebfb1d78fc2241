package regions

import (
	"slices"
	"strings"
)

// Simple package containing the op.gg region list.
type Region string

// Region that aggregates every server.
const Global Region = "global"

// List of regions.
var RegionList = []Region{
	Global, "na", "euw", "eune", "kr", "jp", "br", "lan", "las",
	"oce", "ru", "tr", "me", "sg", "ph", "th", "tw", "vn",
}

// Normalize lowercases and trims the region.
func Normalize(region string) Region {
	return Region(strings.ToLower(strings.TrimSpace(region)))
}

// IsValid reports if the region is served by op.gg.
func IsValid(region Region) bool {
	return slices.Contains(RegionList, region)
}
