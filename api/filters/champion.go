package filters

import (
	"fmt"
	"gotierlist/pkg/messages"
	"gotierlist/pkg/opgg"
	"slices"
	"strconv"
	"strings"
)

// Position used on the builds of the modes without positions.
const NoPosition = "none"

// URI params for the champion endpoitns.
type ChampionURIParams struct {
	ChampionId string `uri:"championId" binding:"required"`
}

// Query parameters for the champion build.
type ChampionBuildQueryParams struct {
	Position string `form:"position"`
	Region   string `form:"region"`
	Mode     string `form:"mode"`
	Tier     string `form:"tier"`
	Version  string `form:"version"`
}

type GetChampionDataFilter struct {
	ChampionId string
}

type ChampionBuildFilter struct {
	ChampionId int
	Position   string
	Region     string
	Mode       string
	Tier       string
	Version    string
}

func NewGetChampionDataFilter(pp *ChampionURIParams) (*GetChampionDataFilter, error) {
	if _, err := parseChampionId(pp.ChampionId); err != nil {
		return nil, err
	}
	return &GetChampionDataFilter{
		ChampionId: strings.TrimSpace(pp.ChampionId),
	}, nil
}

// NewChampionBuildFilter validates the build request.
// Ranked builds need one of the tierlist positions, the other modes use no position.
func NewChampionBuildFilter(pp *ChampionURIParams, qp ChampionBuildQueryParams, defaults Defaults) (*ChampionBuildFilter, error) {
	championId, err := parseChampionId(pp.ChampionId)
	if err != nil {
		return nil, err
	}

	list, err := NewTierlistFilter(TierlistQueryParams{
		Region:  qp.Region,
		Mode:    qp.Mode,
		Tier:    qp.Tier,
		Version: qp.Version,
	}, defaults)
	if err != nil {
		return nil, err
	}

	position := strings.ToUpper(strings.TrimSpace(qp.Position))
	if list.Mode == opgg.RankedMode {
		if !slices.Contains(opgg.Positions, position) {
			return nil, fmt.Errorf(messages.InvalidPosition, qp.Position)
		}
	} else {
		position = NoPosition
	}

	return &ChampionBuildFilter{
		ChampionId: championId,
		Position:   position,
		Region:     list.Region,
		Mode:       list.Mode,
		Tier:       list.Tier,
		Version:    list.Version,
	}, nil
}

// Champion ids are the numeric DDragon keys.
func parseChampionId(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid champion id: %s", value)
	}
	return id, nil
}
