package filters

import (
	"fmt"
	"gotierlist/pkg/messages"
	"gotierlist/pkg/opgg"
	"gotierlist/pkg/regions"
	tiervalues "gotierlist/pkg/riotvalues/tier"
	"slices"
	"strings"
)

// Modes served by op.gg.
var ValidModes = []string{opgg.RankedMode, "aram", "arena", "urf", "nexus_blitz"}

// Defaults applied to the empty parameters.
type Defaults struct {
	Region string
	Tier   string
}

// Query parameters for the tierlist filters.
type TierlistQueryParams struct {
	Region  string `form:"region"`
	Mode    string `form:"mode"`
	Tier    string `form:"tier"`
	Version string `form:"version"`
}

// Query parameters for the versions endpoint.
type VersionsQueryParams struct {
	Region string `form:"region"`
	Mode   string `form:"mode"`
}

// URI params for the default tierlist.
type DefaultTierlistURIParams struct {
	Mode string `uri:"mode" binding:"required"`
}

// Validated tierlist filter.
type TierlistFilter struct {
	Region  string
	Mode    string
	Tier    string
	Version string
}

// Validated versions filter.
type VersionsFilter struct {
	Region string
	Mode   string
}

// NewTierlistFilter validates the query and applies the defaults.
// The ranked mode uses the default tier, every other mode uses all tiers.
func NewTierlistFilter(qp TierlistQueryParams, defaults Defaults) (*TierlistFilter, error) {
	region, err := normalizeRegion(qp.Region, defaults.Region)
	if err != nil {
		return nil, err
	}

	mode, err := NormalizeMode(qp.Mode)
	if err != nil {
		return nil, err
	}

	tier, err := normalizeTier(qp.Tier, mode, defaults.Tier)
	if err != nil {
		return nil, err
	}

	return &TierlistFilter{
		Region:  region,
		Mode:    mode,
		Tier:    tier,
		Version: strings.TrimSpace(qp.Version),
	}, nil
}

// NewVersionsFilter validates the versions query.
func NewVersionsFilter(qp VersionsQueryParams, defaults Defaults) (*VersionsFilter, error) {
	region, err := normalizeRegion(qp.Region, defaults.Region)
	if err != nil {
		return nil, err
	}

	mode, err := NormalizeMode(qp.Mode)
	if err != nil {
		return nil, err
	}

	return &VersionsFilter{Region: region, Mode: mode}, nil
}

// NormalizeMode lowercases the mode, defaulting to ranked.
func NormalizeMode(mode string) (string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return opgg.RankedMode, nil
	}
	if !slices.Contains(ValidModes, mode) {
		return "", fmt.Errorf(messages.InvalidMode, mode)
	}
	return mode, nil
}

func normalizeRegion(region string, fallback string) (string, error) {
	if strings.TrimSpace(region) == "" {
		region = fallback
	}
	normalized := regions.Normalize(region)
	if !regions.IsValid(normalized) {
		return "", fmt.Errorf(messages.InvalidRegion, region)
	}
	return string(normalized), nil
}

func normalizeTier(tier string, mode string, fallback string) (string, error) {
	if strings.TrimSpace(tier) == "" {
		if mode != opgg.RankedMode || fallback == "" {
			return tiervalues.All, nil
		}
		tier = fallback
	}

	normalized, err := tiervalues.Normalize(tier)
	if err != nil {
		return "", fmt.Errorf(messages.InvalidTier, tier)
	}
	return normalized, nil
}
