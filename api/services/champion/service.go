package championservice

import (
	"context"
	"errors"
	"fmt"
	"gotierlist/api/cache"
	"gotierlist/api/dto"
	"gotierlist/api/filters"
	"gotierlist/pkg/messages"
	"gotierlist/pkg/opgg"
)

// OpggClient is the part of the op.gg client used by the champion service.
type OpggClient interface {
	GetChampionBuild(ctx context.Context, query opgg.BuildQuery) (*opgg.BuildResponse, error)
	LatestVersion(ctx context.Context, region string, mode string) (string, error)
}

// ChampionService serves the champion assets and builds.
type ChampionService struct {
	championCache cache.ChampionCache
	opgg          OpggClient
	ddragonURL    string
}

// ChampionServiceDeps is the dependency list for the champion service.
type ChampionServiceDeps struct {
	ChampionCache cache.ChampionCache
	Opgg          OpggClient
	DDragonURL    string
}

// NewChampionService creates a champion service.
func NewChampionService(deps *ChampionServiceDeps) *ChampionService {
	return &ChampionService{
		championCache: deps.ChampionCache,
		opgg:          deps.Opgg,
		ddragonURL:    deps.DDragonURL,
	}
}

// Returns the cached champion with its icon.
func (cs *ChampionService) GetChampionData(ctx context.Context, filters *filters.GetChampionDataFilter) (*dto.ChampionResult, error) {
	if filters == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	champ, err := cs.championCache.GetChampionCopy(ctx, filters.ChampionId)
	if err != nil {
		return nil, err
	}
	return dto.FromChampion(champ, cs.ddragonURL), nil
}

// Returns all cached champions, sorted by name.
func (cs *ChampionService) GetAllChampions(ctx context.Context) ([]*dto.ChampionResult, error) {
	champions, err := cs.championCache.GetAllChampions(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromChampionSlice(champions, cs.ddragonURL), nil
}

// GetChampionBuild returns the op.gg build of the champion.
// An empty version is resolved to the latest one of the region and mode.
func (cs *ChampionService) GetChampionBuild(ctx context.Context, filters *filters.ChampionBuildFilter) (*opgg.BuildResponse, error) {
	if filters == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	version := filters.Version
	if version == "" {
		latest, err := cs.opgg.LatestVersion(ctx, filters.Region, filters.Mode)
		if err != nil {
			return nil, fmt.Errorf("couldn't resolve the latest version: %w", err)
		}
		version = latest
	}

	return cs.opgg.GetChampionBuild(ctx, opgg.BuildQuery{
		Region:     filters.Region,
		Mode:       filters.Mode,
		ChampionId: filters.ChampionId,
		Position:   filters.Position,
		Tier:       filters.Tier,
		Version:    version,
	})
}
