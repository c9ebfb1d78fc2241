package testutil

import (
	"context"
	"gotierlist/pkg/database/models"
	"gotierlist/pkg/models/champion"
	"gotierlist/pkg/opgg"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// Type of the context created by context.WithTimeout.
const DefaultTimerCtx = "*context.timerCtx"

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Redis mocks.
// ============================================================================

// Redis client mock implementation.
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockRedisClient) GetKeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]string), args.Error(1)
}

// ============================================================================
// Repository and cache mocks.
// ============================================================================

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetKey(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockCacheRepository) GetByPrefix(ctx context.Context, prefix string) ([]*models.CacheBackup, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]*models.CacheBackup), args.Error(1)
}

func (m *MockCacheRepository) SetKey(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type MockChampionCache struct {
	mock.Mock
}

func (m *MockChampionCache) GetChampionCopy(ctx context.Context, championId string) (*champion.Champion, error) {
	args := m.Called(ctx, championId)
	return args.Get(0).(*champion.Champion), args.Error(1)
}

func (m *MockChampionCache) GetAllChampions(ctx context.Context) ([]*champion.Champion, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*champion.Champion), args.Error(1)
}

func (m *MockChampionCache) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ============================================================================
// Op.gg client mock.
// ============================================================================

type MockOpggClient struct {
	mock.Mock
}

func (m *MockOpggClient) GetTierList(ctx context.Context, query opgg.TierListQuery) (*opgg.TierList, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(*opgg.TierList), args.Error(1)
}

func (m *MockOpggClient) GetChampionBuild(ctx context.Context, query opgg.BuildQuery) (*opgg.BuildResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(*opgg.BuildResponse), args.Error(1)
}

func (m *MockOpggClient) GetDataVersion(ctx context.Context, region string, mode string) (*opgg.VersionsResponse, error) {
	args := m.Called(ctx, region, mode)
	return args.Get(0).(*opgg.VersionsResponse), args.Error(1)
}

func (m *MockOpggClient) LatestVersion(ctx context.Context, region string, mode string) (string, error) {
	args := m.Called(ctx, region, mode)
	return args.String(0), args.Error(1)
}

func (m *MockOpggClient) DefaultTierList(mode string) *opgg.TierList {
	args := m.Called(mode)
	return args.Get(0).(*opgg.TierList)
}

func (m *MockOpggClient) Stats() map[string]opgg.Stats {
	args := m.Called()
	return args.Get(0).(map[string]opgg.Stats)
}
