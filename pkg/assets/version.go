package assets

import (
	"context"
	"errors"
	"fmt"
)

// Get the latest version of the data.
// Reads the redis list first, fetching from the DDragon when it's missing.
func (r *Revalidator) GetLatestVersion(ctx context.Context) (string, error) {
	result, err := r.store.ListIndex(ctx, VersionKey, 0)
	if err == nil && result != "" {
		return result, nil
	}

	// The version was not found, fetch from ddragon.
	versions, err := r.GetNewVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("can't get the latest version: %w", err)
	}
	return versions[0], nil
}

// Get all the versions from the ddragon.
// Set the latest three on the Redis cache and return them.
func (r *Revalidator) GetNewVersion(ctx context.Context) ([]string, error) {
	var versions []string
	if err := r.getJSON(ctx, r.baseURL+"api/versions.json", &versions); err != nil {
		return nil, fmt.Errorf("couldn't get the current version: %w", err)
	}

	if len(versions) == 0 {
		return nil, errors.New("no versions available")
	}

	latest := versions[:min(keptVersions, len(versions))]
	if err := r.store.ReplaceList(ctx, VersionKey, latest...); err != nil {
		return nil, fmt.Errorf("couldn't store the versions: %w", err)
	}

	return latest, nil
}
