package champion

import (
	"gotierlist/pkg/models/image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconURL(t *testing.T) {
	tests := []struct {
		name     string
		champion Champion
		expected string
	}{
		{
			name:     "complete",
			champion: Champion{Version: "14.20.1", Image: image.Image{Full: "Ahri.png"}},
			expected: "https://ddragon.leagueoflegends.com/cdn/14.20.1/img/champion/Ahri.png",
		},
		{
			name:     "noVersion",
			champion: Champion{Image: image.Image{Full: "Ahri.png"}},
			expected: "",
		},
		{
			name:     "noImage",
			champion: Champion{Version: "14.20.1"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.champion.IconURL("https://ddragon.leagueoflegends.com/"))
		})
	}
}
