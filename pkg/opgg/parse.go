package opgg

import (
	"cmp"
	"context"
	"slices"
)

// parseRankedTierList splits the ranked payload by position.
// Op.gg returns every champion with all its positions together, and the ranks come unordered.
func (c *Client) parseRankedTierList(ctx context.Context, raw *rawTierList) map[string][]TierEntry {
	result := make(map[string][]TierEntry, len(Positions))
	for _, position := range Positions {
		result[position] = []TierEntry{}
	}

	// Champions already added on each position.
	seen := make(map[string]map[int]bool, len(Positions))

	for _, item := range raw.Data {
		name := c.resolveName(ctx, item.Id)
		icon := c.resolveIcon(ctx, item.Id)

		for _, p := range item.Positions {
			entries, ok := result[p.Name]
			if !ok {
				c.logger.Errorf("Skipping unknown position %q for champion %d", p.Name, item.Id)
				continue
			}

			if seen[p.Name] == nil {
				seen[p.Name] = make(map[int]bool)
			}
			if seen[p.Name][item.Id] {
				continue
			}
			seen[p.Name][item.Id] = true

			counters := make([]Counter, 0, len(p.Counters))
			for _, counter := range p.Counters {
				counters = append(counters, Counter{
					ChampionId: counter.ChampionId,
					Icon:       c.resolveIcon(ctx, counter.ChampionId),
				})
			}

			// The ranked tier and rank live on tier_data, not on the stats.
			entry := newTierEntry(item.Id, name, icon, &p.Stats)
			entry.Tier, entry.Rank = nil, nil
			if p.Stats.TierData != nil {
				entry.Tier = p.Stats.TierData.Tier
				entry.Rank = p.Stats.TierData.Rank
			}
			entry.Position = p.Name
			entry.Counters = counters

			result[p.Name] = append(entries, entry)
		}
	}

	for _, entries := range result {
		sortByRank(entries)
	}

	return result
}

// parseOtherTierList reshapes the payload of the modes without positions.
func (c *Client) parseOtherTierList(ctx context.Context, raw *rawTierList) []TierEntry {
	result := make([]TierEntry, 0, len(raw.Data))
	seen := make(map[int]bool, len(raw.Data))

	for _, item := range raw.Data {
		if seen[item.Id] {
			continue
		}
		seen[item.Id] = true

		stats := item.AverageStats
		if stats == nil {
			stats = &rawStats{}
		}

		entry := newTierEntry(item.Id, c.resolveName(ctx, item.Id), c.resolveIcon(ctx, item.Id), stats)
		entry.Counters = []Counter{}

		result = append(result, entry)
	}

	sortByRank(result)

	return result
}

// newTierEntry copies the shared stats, tier and rank are read from the stats themselves.
func newTierEntry(championId int, name string, icon string, stats *rawStats) TierEntry {
	return TierEntry{
		ChampionId: championId,
		Name:       name,
		Icon:       icon,
		WinRate:    stats.WinRate,
		PickRate:   stats.PickRate,
		BanRate:    stats.BanRate,
		KDA:        stats.KDA,
		Tier:       stats.Tier,
		Rank:       stats.Rank,
	}
}

// sortByRank orders ascending by rank, entries without rank go last.
func sortByRank(entries []TierEntry) {
	slices.SortStableFunc(entries, func(a, b TierEntry) int {
		switch {
		case a.Rank == nil && b.Rank == nil:
			return 0
		case a.Rank == nil:
			return 1
		case b.Rank == nil:
			return -1
		}
		return cmp.Compare(*a.Rank, *b.Rank)
	})
}

// Resolve the champion name, an empty name is kept when the lookup fails.
func (c *Client) resolveName(ctx context.Context, championId int) string {
	if c.resolver == nil {
		return ""
	}

	name, err := c.resolver.ChampionName(ctx, championId)
	if err != nil {
		c.logger.Errorf("Couldn't resolve the name of champion %d: %v", championId, err)
		return ""
	}
	return name
}

// Resolve the champion icon, an empty icon is kept when the lookup fails.
func (c *Client) resolveIcon(ctx context.Context, championId int) string {
	if c.resolver == nil {
		return ""
	}

	icon, err := c.resolver.ChampionIcon(ctx, championId)
	if err != nil {
		c.logger.Errorf("Couldn't resolve the icon of champion %d: %v", championId, err)
		return ""
	}
	return icon
}
