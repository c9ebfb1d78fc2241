package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = Defaults{Region: "global", Tier: "emerald_plus"}

func TestNewTierlistFilter(t *testing.T) {
	tests := []struct {
		name     string
		params   TierlistQueryParams
		expected *TierlistFilter
		err      string
	}{
		{
			name:     "defaults",
			params:   TierlistQueryParams{},
			expected: &TierlistFilter{Region: "global", Mode: "ranked", Tier: "emerald_plus"},
		},
		{
			name:     "othermodeusesalltiers",
			params:   TierlistQueryParams{Mode: "ARAM"},
			expected: &TierlistFilter{Region: "global", Mode: "aram", Tier: "all"},
		},
		{
			name:     "explicit",
			params:   TierlistQueryParams{Region: "KR", Mode: "ranked", Tier: "gold+", Version: " 14.10 "},
			expected: &TierlistFilter{Region: "kr", Mode: "ranked", Tier: "gold_plus", Version: "14.10"},
		},
		{
			name:   "invalidregion",
			params: TierlistQueryParams{Region: "mars"},
			err:    "invalid region: mars",
		},
		{
			name:   "invalidmode",
			params: TierlistQueryParams{Mode: "swiftplay"},
			err:    "invalid mode: swiftplay",
		},
		{
			name:   "invalidtier",
			params: TierlistQueryParams{Tier: "wood"},
			err:    "invalid tier: wood",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewTierlistFilter(tt.params, testDefaults)
			if tt.err != "" {
				require.Error(t, err)
				assert.Equal(t, tt.err, err.Error())
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNewVersionsFilter(t *testing.T) {
	result, err := NewVersionsFilter(VersionsQueryParams{Mode: "arena"}, testDefaults)
	require.NoError(t, err)
	assert.Equal(t, &VersionsFilter{Region: "global", Mode: "arena"}, result)

	_, err = NewVersionsFilter(VersionsQueryParams{Region: "xx"}, testDefaults)
	assert.Error(t, err)
}
