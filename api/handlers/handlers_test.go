package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"gotierlist/api/cache"
	"gotierlist/api/filters"
	championservice "gotierlist/api/services/champion"
	"gotierlist/api/services/testutil"
	tierlistservice "gotierlist/api/services/tierlist"
	"gotierlist/pkg/models/champion"
	"gotierlist/pkg/opgg"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testDefaults = filters.Defaults{Region: "global", Tier: "emerald_plus"}

type testRouter struct {
	engine    *gin.Engine
	redis     *testutil.MockRedisClient
	opgg      *testutil.MockOpggClient
	champions *testutil.MockChampionCache
}

func setupTestRouter() *testRouter {
	gin.SetMode(gin.TestMode)

	tr := &testRouter{
		engine:    gin.New(),
		redis:     new(testutil.MockRedisClient),
		opgg:      new(testutil.MockOpggClient),
		champions: new(testutil.MockChampionCache),
	}

	tierlistHandler := NewTierlistHandler(&TierlistHandlerDependencies{
		TierlistService: tierlistservice.NewTierlistService(&tierlistservice.TierlistServiceDeps{
			Redis: tr.redis,
			Opgg:  tr.opgg,
		}),
		Defaults: testDefaults,
	})
	championHandler := NewChampionHandler(&ChampionHandlerDependencies{
		ChampionService: championservice.NewChampionService(&championservice.ChampionServiceDeps{
			ChampionCache: tr.champions,
			Opgg:          tr.opgg,
			DDragonURL:    "https://ddragon.test/",
		}),
		Defaults: testDefaults,
	})

	api := tr.engine.Group("/api/v1")
	api.GET("/tierlist", tierlistHandler.GetTierlist)
	api.GET("/tierlist/default/:mode", tierlistHandler.GetDefaultTierlist)
	api.GET("/tierlist/versions", tierlistHandler.GetVersions)
	api.GET("/tierlist/stats", tierlistHandler.GetCacheStats)
	api.GET("/champion", championHandler.GetAllChampions)
	api.GET("/champion/:championId", championHandler.GetChampionData)
	api.GET("/champion/:championId/build", championHandler.GetChampionBuild)

	return tr
}

func (tr *testRouter) get(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestGetTierlistHandler(t *testing.T) {
	tr := setupTestRouter()
	list := &opgg.TierList{Region: "kr", Mode: "ranked", Tier: "gold_plus", Version: "14.10", Positions: map[string][]opgg.TierEntry{"TOP": {}}}
	tr.opgg.On("LatestVersion", mock.Anything, "kr", "ranked").Return("14.10", nil)
	tr.redis.On("Get", mock.Anything, "opgg:tierlist:kr:ranked:gold_plus:14.10").Return("", nil)
	tr.opgg.On("GetTierList", mock.Anything, opgg.TierListQuery{Region: "kr", Mode: "ranked", Tier: "gold_plus", Version: "14.10"}).Return(list, nil)
	tr.redis.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	w, body := tr.get(t, "/api/v1/tierlist?region=KR&tier=gold%2B")

	assert.Equal(t, http.StatusOK, w.Code)
	result := body["result"].(map[string]any)
	assert.Equal(t, "kr", result["region"])
	assert.Contains(t, result["positions"], "TOP")
}

func TestGetTierlistHandlerValidation(t *testing.T) {
	tr := setupTestRouter()

	for _, path := range []string{
		"/api/v1/tierlist?region=mars",
		"/api/v1/tierlist?mode=swiftplay",
		"/api/v1/tierlist?tier=wood",
	} {
		w, body := tr.get(t, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.NotEmpty(t, body["error"])
	}
}

func TestGetTierlistHandlerUpstreamError(t *testing.T) {
	tr := setupTestRouter()
	tr.opgg.On("LatestVersion", mock.Anything, "global", "aram").Return("", errors.New("API returned status code 503"))

	w, body := tr.get(t, "/api/v1/tierlist?mode=aram")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, body["error"], "503")
}

func TestGetDefaultTierlistHandler(t *testing.T) {
	tr := setupTestRouter()
	tr.opgg.On("DefaultTierList", "aram").Return(&opgg.TierList{Mode: "aram", Champions: []opgg.TierEntry{}})
	tr.opgg.On("DefaultTierList", "arena").Return((*opgg.TierList)(nil))

	w, _ := tr.get(t, "/api/v1/tierlist/default/ARAM")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := tr.get(t, "/api/v1/tierlist/default/arena")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, body["error"], "arena")

	w, _ = tr.get(t, "/api/v1/tierlist/default/unknown")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVersionsHandler(t *testing.T) {
	tr := setupTestRouter()
	tr.opgg.On("GetDataVersion", mock.Anything, "global", "ranked").Return(&opgg.VersionsResponse{Data: []string{"14.10"}}, nil)

	w, body := tr.get(t, "/api/v1/tierlist/versions")

	assert.Equal(t, http.StatusOK, w.Code)
	result := body["result"].(map[string]any)
	assert.Equal(t, "14.10", result["latest"])
}

func TestGetCacheStatsHandler(t *testing.T) {
	tr := setupTestRouter()
	tr.opgg.On("Stats").Return(map[string]opgg.Stats{"builds": {Hits: 2, MaxSize: 20}})

	w, body := tr.get(t, "/api/v1/tierlist/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	builds := body["result"].(map[string]any)["builds"].(map[string]any)
	assert.Equal(t, float64(2), builds["hits"])
	assert.Equal(t, float64(20), builds["maxSize"])
}

func TestGetChampionDataHandler(t *testing.T) {
	tr := setupTestRouter()
	tr.champions.On("GetChampionCopy", mock.Anything, "103").Return(&champion.Champion{ID: "103", Name: "Ahri"}, nil)
	tr.champions.On("GetChampionCopy", mock.Anything, "1").
		Return((*champion.Champion)(nil), fmt.Errorf("champion 1 not found: %w", cache.ErrChampionNotFound))

	w, body := tr.get(t, "/api/v1/champion/103")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ahri", body["result"].(map[string]any)["name"])

	w, _ = tr.get(t, "/api/v1/champion/1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = tr.get(t, "/api/v1/champion/Ahri")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllChampionsHandler(t *testing.T) {
	tr := setupTestRouter()
	tr.champions.On("GetAllChampions", mock.Anything).Return([]*champion.Champion{{ID: "266", Name: "Aatrox"}}, nil)

	w, body := tr.get(t, "/api/v1/champion")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["result"], 1)
}

func TestGetChampionBuildHandler(t *testing.T) {
	tr := setupTestRouter()
	tr.opgg.On("GetChampionBuild", mock.Anything, opgg.BuildQuery{
		Region: "global", Mode: "ranked", ChampionId: 103, Position: "MID", Tier: "emerald_plus", Version: "14.10",
	}).Return(&opgg.BuildResponse{Data: json.RawMessage(`{"core_items": []}`)}, nil)

	w, body := tr.get(t, "/api/v1/champion/103/build?position=mid&version=14.10")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["result"], "data")

	w, _ = tr.get(t, "/api/v1/champion/103/build")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
