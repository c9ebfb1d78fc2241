package dto

import (
	"encoding/json"
	"gotierlist/pkg/models/champion"
	"gotierlist/pkg/models/image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromChampionFlattensFields(t *testing.T) {
	result := FromChampion(&champion.Champion{
		ID:      "103",
		NameKey: "Ahri",
		Name:    "Ahri",
		Version: "14.10.1",
		Image:   image.Image{Full: "Ahri.png"},
	}, "https://ddragon/")

	assert.Equal(t, "https://ddragon/cdn/14.10.1/img/champion/Ahri.png", result.Icon)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "103", decoded["id"])
	assert.Equal(t, "Ahri", decoded["key"])
	assert.Equal(t, result.Icon, decoded["icon"])
}

func TestNewVersionsResult(t *testing.T) {
	result := NewVersionsResult("global", "ranked", []string{"14.10", "14.9"})
	assert.Equal(t, "14.10", result.Latest)

	empty := NewVersionsResult("global", "arena", nil)
	assert.Empty(t, empty.Latest)
	assert.NotNil(t, empty.Versions)
}
