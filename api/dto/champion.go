package dto

import "gotierlist/pkg/models/champion"

// Champion data with the resolved icon.
type ChampionResult struct {
	*champion.Champion
	Icon string `json:"icon"`
}

// FromChampion builds the result with the icon on the given DDragon cdn.
func FromChampion(c *champion.Champion, ddragonURL string) *ChampionResult {
	return &ChampionResult{
		Champion: c,
		Icon:     c.IconURL(ddragonURL),
	}
}

// FromChampionSlice converts every champion keeping the order.
func FromChampionSlice(champions []*champion.Champion, ddragonURL string) []*ChampionResult {
	results := make([]*ChampionResult, 0, len(champions))
	for _, c := range champions {
		results = append(results, FromChampion(c, ddragonURL))
	}
	return results
}
