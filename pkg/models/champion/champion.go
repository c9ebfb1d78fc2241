package champion

import (
	"fmt"
	"gotierlist/pkg/models/image"
)

// Struct for holding a champion data.
// ID is the numeric key used by the stats APIs, NameKey the DDragon identifier.
type Champion struct {
	ID      string      `json:"id"`
	NameKey string      `json:"key"`
	Name    string      `json:"name"`
	Title   string      `json:"title"`
	Version string      `json:"version"`
	Image   image.Image `json:"image"`
}

// IconURL builds the square icon url on the given DDragon cdn.
func (c *Champion) IconURL(ddragonURL string) string {
	if c.Image.Full == "" || c.Version == "" {
		return ""
	}
	return fmt.Sprintf("%scdn/%s/img/champion/%s", ddragonURL, c.Version, c.Image.Full)
}
