package opgg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gotierlist/pkg/messages"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DefaultBaseURL   = "https://lol-api-champion.op.gg"
	DefaultCacheSize = 20
	defaultTimeout   = 10 * time.Second
)

// Client fetches the op.gg champion data, memoizing every call by its parameters.
type Client struct {
	baseURL  string
	resolver ChampionResolver
	logger   Logger

	// The http session is only created on the first request or on Start.
	sessionOnce sync.Once
	httpClient  *http.Client
	timeout     time.Duration

	rawTierLists *memo[TierListQuery, *rawTierList]
	tierLists    *memo[TierListQuery, *TierList]
	builds       *memo[BuildQuery, *BuildResponse]
	versions     *memo[versionQuery, *VersionsResponse]

	// Default state.
	mu            sync.RWMutex
	defaultRegion string
	defaultTier   string
	version       string
	defaults      map[string]*TierList
}

// ClientDeps is the dependency list for the op.gg client.
type ClientDeps struct {
	BaseURL       string
	HTTPClient    *http.Client
	Timeout       time.Duration
	Resolver      ChampionResolver
	Logger        Logger
	DefaultRegion string
	DefaultTier   string
	CacheSize     int
}

// NewClient creates a op.gg client.
func NewClient(deps *ClientDeps) (*Client, error) {
	if deps == nil {
		deps = &ClientDeps{}
	}

	c := &Client{
		baseURL:       strings.TrimSuffix(deps.BaseURL, "/"),
		resolver:      deps.Resolver,
		logger:        deps.Logger,
		httpClient:    deps.HTTPClient,
		timeout:       deps.Timeout,
		defaultRegion: deps.DefaultRegion,
		defaultTier:   deps.DefaultTier,
		defaults:      make(map[string]*TierList, len(DefaultModes)),
	}

	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.logger == nil {
		c.logger = stdLogger{}
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.defaultRegion == "" {
		c.defaultRegion = "global"
	}
	if c.defaultTier == "" {
		c.defaultTier = AllTiers
	}

	size := deps.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}

	var err error
	if c.rawTierLists, err = newMemo(size, c.timeout, c.fetchTierList); err != nil {
		return nil, err
	}
	if c.tierLists, err = newMemo(size, c.timeout, c.buildTierList); err != nil {
		return nil, err
	}
	if c.builds, err = newMemo(size, c.timeout, c.fetchChampionBuild); err != nil {
		return nil, err
	}
	if c.versions, err = newMemo(size, c.timeout, c.fetchDataVersion); err != nil {
		return nil, err
	}

	return c, nil
}

// Start creates the http session ahead of the first request.
func (c *Client) Start() {
	c.session()
}

// Close releases the idle connections of the session and drops the memoized values.
func (c *Client) Close() {
	c.session().CloseIdleConnections()

	c.rawTierLists.Purge()
	c.tierLists.Purge()
	c.builds.Purge()
	c.versions.Purge()
}

// session returns the http client, creating it on the first use.
func (c *Client) session() *http.Client {
	c.sessionOnce.Do(func() {
		if c.httpClient == nil {
			c.httpClient = &http.Client{Timeout: c.timeout}
		}
	})
	return c.httpClient
}

// GetDataVersion returns the data versions available for the region and mode.
func (c *Client) GetDataVersion(ctx context.Context, region string, mode string) (*VersionsResponse, error) {
	return c.versions.Get(ctx, versionQuery{Region: region, Mode: mode})
}

// LatestVersion returns the newest data version for the region and mode.
func (c *Client) LatestVersion(ctx context.Context, region string, mode string) (string, error) {
	versions, err := c.GetDataVersion(ctx, region, mode)
	if err != nil {
		return "", err
	}
	if len(versions.Data) == 0 {
		return "", fmt.Errorf(messages.NoVersionsAvailable, region, mode)
	}
	return versions.Data[0], nil
}

// GetTierList returns the reshaped tierlist.
func (c *Client) GetTierList(ctx context.Context, query TierListQuery) (*TierList, error) {
	return c.tierLists.Get(ctx, query)
}

// GetChampionBuild returns the build data of a champion on a position.
func (c *Client) GetChampionBuild(ctx context.Context, query BuildQuery) (*BuildResponse, error) {
	return c.builds.Get(ctx, query)
}

// InitDefaultTiers loads the tierlist of each default mode with the latest ranked version.
// Only the ranked mode is filtered by the default tier, every other mode uses all tiers.
func (c *Client) InitDefaultTiers(ctx context.Context) error {
	c.mu.RLock()
	region := c.defaultRegion
	defaultTier := c.defaultTier
	c.mu.RUnlock()

	version, err := c.LatestVersion(ctx, region, RankedMode)
	if err != nil {
		return fmt.Errorf("couldn't get the default version: %w", err)
	}

	defaults := make(map[string]*TierList, len(DefaultModes))
	var errs []error
	for _, mode := range DefaultModes {
		tier := AllTiers
		if mode == RankedMode {
			tier = defaultTier
		}

		list, err := c.GetTierList(ctx, TierListQuery{
			Region:  region,
			Mode:    mode,
			Tier:    tier,
			Version: version,
		})
		if err != nil {
			c.logger.Errorf("Couldn't load the default %s tierlist: %v", mode, err)
			errs = append(errs, fmt.Errorf("%s: %w", mode, err))
			continue
		}
		defaults[mode] = list

		// Names are resolved once per memoized list, an empty asset cache leaves them empty.
		if unresolved := list.Unresolved(); unresolved > 0 {
			c.logger.Errorf("The default %s tierlist has %d champions without a name", mode, unresolved)
		}
	}

	c.mu.Lock()
	c.version = version
	for mode, list := range defaults {
		c.defaults[mode] = list
	}
	c.mu.Unlock()

	c.logger.Infof("Loaded %d default tierlists on version %s", len(defaults), version)

	return errors.Join(errs...)
}

// DefaultTierList returns the tierlist loaded by the default state, nil if not loaded.
func (c *Client) DefaultTierList(mode string) *TierList {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaults[mode]
}

// Version returns the version used by the default state.
func (c *Client) Version() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Stats returns the cache counters of each memoized call.
func (c *Client) Stats() map[string]Stats {
	return map[string]Stats{
		"rawTierLists": c.rawTierLists.Stats(),
		"tierLists":    c.tierLists.Stats(),
		"builds":       c.builds.Stats(),
		"versions":     c.versions.Stats(),
	}
}

// buildTierList fetches the raw tierlist and reshapes it according to the mode.
func (c *Client) buildTierList(ctx context.Context, query TierListQuery) (*TierList, error) {
	raw, err := c.rawTierLists.Get(ctx, query)
	if err != nil {
		return nil, err
	}

	list := &TierList{
		Region:  query.Region,
		Mode:    query.Mode,
		Tier:    query.Tier,
		Version: query.Version,
	}

	if query.Mode == RankedMode {
		list.Positions = c.parseRankedTierList(ctx, raw)
	} else {
		list.Champions = c.parseOtherTierList(ctx, raw)
	}

	return list, nil
}

func (c *Client) fetchTierList(ctx context.Context, query TierListQuery) (*rawTierList, error) {
	path := fmt.Sprintf("/api/%s/champions/%s", url.PathEscape(query.Region), url.PathEscape(query.Mode))

	var raw rawTierList
	if err := c.get(ctx, path, tierVersionParams(query.Tier, query.Version), &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func (c *Client) fetchChampionBuild(ctx context.Context, query BuildQuery) (*BuildResponse, error) {
	path := fmt.Sprintf("/api/%s/champions/%s/%s/%s",
		url.PathEscape(query.Region),
		url.PathEscape(query.Mode),
		strconv.Itoa(query.ChampionId),
		url.PathEscape(query.Position),
	)

	var build BuildResponse
	if err := c.get(ctx, path, tierVersionParams(query.Tier, query.Version), &build); err != nil {
		return nil, err
	}
	return &build, nil
}

func (c *Client) fetchDataVersion(ctx context.Context, query versionQuery) (*VersionsResponse, error) {
	path := fmt.Sprintf("/api/%s/champions/%s/versions", url.PathEscape(query.Region), url.PathEscape(query.Mode))

	var versions VersionsResponse
	if err := c.get(ctx, path, nil, &versions); err != nil {
		return nil, err
	}
	return &versions, nil
}

// Only the set parameters are sent.
func tierVersionParams(tier string, version string) url.Values {
	params := url.Values{}
	if tier != "" {
		params.Set("tier", tier)
	}
	if version != "" {
		params.Set("version", version)
	}
	return params
}

// get runs a GET on the op.gg api and decodes the json body into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf(messages.RequestFailedMsg+": %w", fullURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.session().Do(req)
	if err != nil {
		return fmt.Errorf(messages.RequestFailedMsg+": %w", fullURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, URL: fullURL}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%s: %w", messages.FailedToParseMsg, err)
	}

	return nil
}

// StatusError is returned when op.gg answers with a non 200 status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(messages.BadStatusCodeMsg, e.StatusCode, e.URL)
}

// Adapter for the standard logger.
type stdLogger struct{}

func (stdLogger) Infof(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}

func (stdLogger) Errorf(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
}
