package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"gotierlist/pkg/messages"
	"net/http"
	"strings"
	"time"
)

// Keys and defaults used across the package.
const (
	ChampionPrefix = "ddragon:champion:"
	VersionKey     = "ddragon:versions"
	DefaultDDragon = "https://ddragon.leagueoflegends.com/"
	workerCount    = 10
	keptVersions   = 3
)

// Store is the redis surface used to persist the assets.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ReplaceList(ctx context.Context, key string, values ...string) error
	ListIndex(ctx context.Context, key string, index int64) (string, error)
}

// BackupStore persists a copy of each asset, read when redis is down.
type BackupStore interface {
	SetKey(ctx context.Context, key string, value []byte) error
}

// Logger used by the revalidation.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// AssetsDeps is the dependency list for the asset revalidator.
type AssetsDeps struct {
	BaseURL    string
	HTTPClient *http.Client
	Store      Store
	Backup     BackupStore
	Logger     Logger
}

// Revalidator keeps the DDragon assets up to date on redis and on the backup store.
type Revalidator struct {
	baseURL    string
	httpClient *http.Client
	store      Store
	backup     BackupStore
	logger     Logger
}

// NewRevalidator creates the asset revalidator.
func NewRevalidator(deps *AssetsDeps) *Revalidator {
	baseURL := deps.BaseURL
	if baseURL == "" {
		baseURL = DefaultDDragon
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	httpClient := deps.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Revalidator{
		baseURL:    baseURL,
		httpClient: httpClient,
		store:      deps.Store,
		backup:     deps.Backup,
		logger:     deps.Logger,
	}
}

// Simple GET decoding the json body into result.
func (r *Revalidator) getJSON(ctx context.Context, url string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf(messages.RequestFailedMsg+": %w", url, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf(messages.RequestFailedMsg+": %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(messages.BadStatusCodeMsg, resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("couldn't convert the body to json: %w", err)
	}
	return nil
}
