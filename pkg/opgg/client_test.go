package opgg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpgg serves canned payloads and records every request.
type fakeOpgg struct {
	mu       sync.Mutex
	requests []*http.Request
	routes   map[string]string
	status   int
}

func (f *fakeOpgg) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(context.Background()))
	f.mu.Unlock()

	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}

	body, ok := f.routes[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeOpgg) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, r := range f.requests {
		if r.URL.Path == path {
			total++
		}
	}
	return total
}

func (f *fakeOpgg) last() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, fake *fakeOpgg) *Client {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	c, err := NewClient(&ClientDeps{
		BaseURL:       server.URL + "/",
		Resolver:      fakeResolver{},
		Logger:        &recordingLogger{},
		DefaultRegion: "global",
		DefaultTier:   "emerald_plus",
		CacheSize:     20,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestGetTierListRanked(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/global/champions/ranked": rankedPayload,
	}}
	c := newTestClient(t, fake)

	query := TierListQuery{Region: "global", Mode: "ranked", Tier: "emerald_plus", Version: "14.10"}
	list, err := c.GetTierList(context.Background(), query)
	require.NoError(t, err)

	assert.True(t, list.IsRanked())
	assert.Nil(t, list.Champions)
	assert.Len(t, list.Positions["MID"], 3)
	assert.Equal(t, "14.10", list.Version)

	req := fake.last()
	assert.Equal(t, "emerald_plus", req.URL.Query().Get("tier"))
	assert.Equal(t, "14.10", req.URL.Query().Get("version"))

	// The second call is served from memory.
	again, err := c.GetTierList(context.Background(), query)
	require.NoError(t, err)
	assert.Same(t, list, again)
	assert.Equal(t, 1, fake.count("/api/global/champions/ranked"))

	stats := c.Stats()["tierLists"]
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestGetTierListOtherMode(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/kr/champions/aram": otherPayload,
	}}
	c := newTestClient(t, fake)

	list, err := c.GetTierList(context.Background(), TierListQuery{Region: "kr", Mode: "aram", Tier: "all"})
	require.NoError(t, err)

	assert.False(t, list.IsRanked())
	assert.Len(t, list.Champions, 4)

	// Empty parameters are not sent.
	req := fake.last()
	_, hasVersion := req.URL.Query()["version"]
	assert.False(t, hasVersion)
	assert.Equal(t, "all", req.URL.Query().Get("tier"))
}

func TestGetTierListDifferentParamsAreDifferentKeys(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/global/champions/aram": otherPayload,
	}}
	c := newTestClient(t, fake)

	ctx := context.Background()
	_, err := c.GetTierList(ctx, TierListQuery{Region: "global", Mode: "aram", Tier: "all", Version: "1"})
	require.NoError(t, err)
	_, err = c.GetTierList(ctx, TierListQuery{Region: "global", Mode: "aram", Tier: "all", Version: "2"})
	require.NoError(t, err)

	assert.Equal(t, 2, fake.count("/api/global/champions/aram"))
}

func TestGetTierListUpstreamError(t *testing.T) {
	fake := &fakeOpgg{status: http.StatusServiceUnavailable}
	c := newTestClient(t, fake)

	query := TierListQuery{Region: "global", Mode: "ranked", Tier: "all"}
	_, err := c.GetTierList(context.Background(), query)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)

	// Failures are retried on the next call.
	_, err = c.GetTierList(context.Background(), query)
	require.Error(t, err)
	assert.Equal(t, 2, fake.count("/api/global/champions/ranked"))
}

func TestGetTierListInvalidBody(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/global/champions/aram": `{"data": [`,
	}}
	c := newTestClient(t, fake)

	_, err := c.GetTierList(context.Background(), TierListQuery{Region: "global", Mode: "aram"})
	assert.Error(t, err)
}

func TestGetChampionBuild(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/global/champions/ranked/103/MID": `{"data": {"summary": {"id": 103}}, "meta": {"version": "14.10"}}`,
	}}
	c := newTestClient(t, fake)

	query := BuildQuery{Region: "global", Mode: "ranked", ChampionId: 103, Position: "MID", Tier: "emerald_plus", Version: "14.10"}
	build, err := c.GetChampionBuild(context.Background(), query)
	require.NoError(t, err)

	assert.JSONEq(t, `{"summary": {"id": 103}}`, string(build.Data))
	assert.JSONEq(t, `{"version": "14.10"}`, string(build.Meta))

	_, err = c.GetChampionBuild(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.count("/api/global/champions/ranked/103/MID"))
}

func TestLatestVersion(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/global/champions/ranked/versions": `{"data": ["14.10", "14.9", "14.8"]}`,
		"/api/global/champions/arena/versions":  `{"data": []}`,
	}}
	c := newTestClient(t, fake)

	version, err := c.LatestVersion(context.Background(), "global", "ranked")
	require.NoError(t, err)
	assert.Equal(t, "14.10", version)

	_, err = c.LatestVersion(context.Background(), "global", "arena")
	assert.Error(t, err)
}

func TestInitDefaultTiers(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/global/champions/ranked/versions": `{"data": ["14.10", "14.9"]}`,
		"/api/global/champions/ranked":          rankedPayload,
		"/api/global/champions/aram":            otherPayload,
		"/api/global/champions/arena":           otherPayload,
	}}
	c := newTestClient(t, fake)

	assert.Nil(t, c.DefaultTierList(RankedMode))
	assert.Empty(t, c.Version())

	require.NoError(t, c.InitDefaultTiers(context.Background()))

	assert.Equal(t, "14.10", c.Version())

	ranked := c.DefaultTierList(RankedMode)
	require.NotNil(t, ranked)
	assert.Equal(t, "emerald_plus", ranked.Tier)
	assert.True(t, ranked.IsRanked())

	for _, mode := range []string{"aram", "arena"} {
		list := c.DefaultTierList(mode)
		require.NotNil(t, list, mode)
		assert.Equal(t, AllTiers, list.Tier)
		assert.Equal(t, "14.10", list.Version)
	}
}

func TestInitDefaultTiersPartialFailure(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/global/champions/ranked/versions": `{"data": ["14.10"]}`,
		"/api/global/champions/ranked":          rankedPayload,
		"/api/global/champions/aram":            otherPayload,
	}}
	c := newTestClient(t, fake)

	err := c.InitDefaultTiers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arena")

	assert.NotNil(t, c.DefaultTierList(RankedMode))
	assert.NotNil(t, c.DefaultTierList("aram"))
	assert.Nil(t, c.DefaultTierList("arena"))
}

func TestSessionIsLazy(t *testing.T) {
	c, err := NewClient(nil)
	require.NoError(t, err)
	assert.Nil(t, c.httpClient)

	c.Start()
	assert.NotNil(t, c.httpClient)
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	c.Close()
}

func TestCloseDropsMemoizedValues(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/kr/champions/aram": otherPayload,
	}}
	c := newTestClient(t, fake)

	query := TierListQuery{Region: "kr", Mode: "aram", Tier: "all", Version: "14.10"}
	_, err := c.GetTierList(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Stats()["tierLists"].Size)

	c.Close()
	assert.Equal(t, 0, c.Stats()["tierLists"].Size)
	assert.Equal(t, 0, c.Stats()["rawTierLists"].Size)
}

func TestCloseDuringFirstRequest(t *testing.T) {
	fake := &fakeOpgg{routes: map[string]string{
		"/api/global/champions/ranked/versions": `{"data": ["14.10"]}`,
	}}
	c := newTestClient(t, fake)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := c.LatestVersion(context.Background(), "global", "ranked")
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		c.Close()
	}()
	wg.Wait()

	assert.Same(t, c.session(), c.httpClient)
}

func TestInitDefaultTiersLogsUnresolvedChampions(t *testing.T) {
	server := httptest.NewServer(&fakeOpgg{routes: map[string]string{
		"/api/global/champions/ranked/versions": `{"data": ["14.10"]}`,
		"/api/global/champions/ranked":          rankedPayload,
		"/api/global/champions/aram":            otherPayload,
		"/api/global/champions/arena":           otherPayload,
	}})
	t.Cleanup(server.Close)

	logger := &recordingLogger{}
	c, err := NewClient(&ClientDeps{
		BaseURL:  server.URL,
		Resolver: fakeResolver{missing: map[int]bool{3: true}},
		Logger:   logger,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	require.NoError(t, c.InitDefaultTiers(context.Background()))
	assert.Contains(t, logger.errors, "The default ranked tierlist has 1 champions without a name")
	assert.NotContains(t, logger.errors, "The default aram tierlist has 1 champions without a name")
}
