package image

// Sprite and file data of a DDragon image.
type Image struct {
	Full   string `json:"fullImage"`
	Sprite string `json:"sprite"`
	X      uint16 `json:"x"`
	Y      uint16 `json:"y"`
	W      uint16 `json:"w"`
	H      uint16 `json:"h"`
}
