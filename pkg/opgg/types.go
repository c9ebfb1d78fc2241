package opgg

import (
	"context"
	"encoding/json"
)

// Mode that returns the stats split by position.
const RankedMode = "ranked"

// Tier used for every mode that isn't ranked.
const AllTiers = "all"

// Positions of the ranked tierlist, in display order.
var Positions = []string{"TOP", "JUNGLE", "MID", "ADC", "SUPPORT"}

// Modes loaded by the default state.
var DefaultModes = []string{RankedMode, "aram", "arena"}

// ChampionResolver resolves the display data of a champion from its numeric id.
type ChampionResolver interface {
	ChampionName(ctx context.Context, championId int) (string, error)
	ChampionIcon(ctx context.Context, championId int) (string, error)
}

// Logger used by the client, satisfied by the job logger and by the standard log adapter.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// TierListQuery identifies a single tierlist request.
type TierListQuery struct {
	Region  string
	Mode    string
	Tier    string
	Version string
}

// BuildQuery identifies a single champion build request.
type BuildQuery struct {
	Region     string
	Mode       string
	ChampionId int
	Position   string
	Tier       string
	Version    string
}

// Key for the versions endpoint.
type versionQuery struct {
	Region string
	Mode   string
}

// Counter is a champion that performs well against the entry.
type Counter struct {
	ChampionId int    `json:"championId"`
	Icon       string `json:"icon"`
}

// TierEntry is a single champion line of a tierlist.
type TierEntry struct {
	ChampionId int       `json:"championId"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	WinRate    *float64  `json:"winRate"`
	PickRate   *float64  `json:"pickRate"`
	BanRate    *float64  `json:"banRate"`
	KDA        *float64  `json:"kda"`
	Tier       *int      `json:"tier"`
	Rank       *int      `json:"rank"`
	Position   string    `json:"position,omitempty"`
	Counters   []Counter `json:"counters"`
}

// TierList is the reshaped tierlist.
// Ranked lists are split on Positions, every other mode is a flat list on Champions.
type TierList struct {
	Region    string                 `json:"region"`
	Mode      string                 `json:"mode"`
	Tier      string                 `json:"tier"`
	Version   string                 `json:"version"`
	Positions map[string][]TierEntry `json:"positions,omitempty"`
	Champions []TierEntry            `json:"champions"`
}

// IsRanked reports if the list is split by position.
func (t *TierList) IsRanked() bool {
	return t.Positions != nil
}

// Unresolved counts the champions listed without a name.
func (t *TierList) Unresolved() int {
	missing := make(map[int]bool)
	count := func(entries []TierEntry) {
		for _, entry := range entries {
			if entry.Name == "" {
				missing[entry.ChampionId] = true
			}
		}
	}

	count(t.Champions)
	for _, entries := range t.Positions {
		count(entries)
	}
	return len(missing)
}

// VersionsResponse lists the data versions, newest first.
type VersionsResponse struct {
	Data []string `json:"data"`
}

// BuildResponse is passed through as returned by op.gg.
type BuildResponse struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// Raw op.gg tierlist payload.
type rawTierList struct {
	Data []rawChampion `json:"data"`
}

type rawChampion struct {
	Id           int           `json:"id"`
	AverageStats *rawStats     `json:"average_stats"`
	Positions    []rawPosition `json:"positions"`
}

type rawPosition struct {
	Name     string       `json:"name"`
	Stats    rawStats     `json:"stats"`
	Counters []rawCounter `json:"counters"`
}

type rawStats struct {
	WinRate  *float64     `json:"win_rate"`
	PickRate *float64     `json:"pick_rate"`
	BanRate  *float64     `json:"ban_rate"`
	KDA      *float64     `json:"kda"`
	Tier     *int         `json:"tier"`
	Rank     *int         `json:"rank"`
	TierData *rawTierData `json:"tier_data"`
}

type rawTierData struct {
	Tier *int `json:"tier"`
	Rank *int `json:"rank"`
}

type rawCounter struct {
	ChampionId int `json:"champion_id"`
}
