package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gotierlist/pkg/models/champion"
	"gotierlist/pkg/models/image"
	"sort"
	"sync"
)

// Definition for extracting the champion data.
type fullChampion struct {
	Data map[string]ddragonChampion `json:"data"`
}

type ddragonChampion struct {
	Version string       `json:"version"`
	Id      string       `json:"id"`
	Key     string       `json:"key"`
	Name    string       `json:"name"`
	Title   string       `json:"title"`
	Image   ddragonImage `json:"image"`
}

type ddragonImage struct {
	Full   string `json:"full"`
	Sprite string `json:"sprite"`
	X      uint16 `json:"x"`
	Y      uint16 `json:"y"`
	W      uint16 `json:"w"`
	H      uint16 `json:"h"`
}

// Convert the DDragon champion to the stored type.
func (d ddragonChampion) toChampion(fallbackVersion string) *champion.Champion {
	version := d.Version
	if version == "" {
		version = fallbackVersion
	}

	return &champion.Champion{
		ID:      d.Key,
		NameKey: d.Id,
		Name:    d.Name,
		Title:   d.Title,
		Version: version,
		Image: image.Image{
			Full:   d.Image.Full,
			Sprite: d.Image.Sprite,
			X:      d.Image.X,
			Y:      d.Image.Y,
			W:      d.Image.W,
			H:      d.Image.H,
		},
	}
}

// RevalidateChampionCache fetches every champion of the latest version and stores it.
// Returns the stored champions sorted by id.
func (r *Revalidator) RevalidateChampionCache(ctx context.Context, language string) ([]*champion.Champion, error) {
	// Usually only GetLatestVersion should be used to get the current running latest.
	// But we are using GetNewVersion to also revalidate the versions.
	var latestVersion string
	versions, err := r.GetNewVersion(ctx)
	if err != nil {
		r.logf("Couldn't revalidate the versions, using the stored one: %v", err)
		latestVersion, err = r.GetLatestVersion(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		latestVersion = versions[0]
	}

	url := fmt.Sprintf("%scdn/%s/data/%s/champion.json", r.baseURL, latestVersion, language)

	var championsData fullChampion
	if err := r.getJSON(ctx, url, &championsData); err != nil {
		return nil, fmt.Errorf("couldn't get the champions: %w", err)
	}

	champions := make([]*champion.Champion, 0, len(championsData.Data))
	for _, data := range championsData.Data {
		if data.Key == "" {
			continue
		}
		champions = append(champions, data.toChampion(latestVersion))
	}
	sort.Slice(champions, func(i, j int) bool {
		return champions[i].ID < champions[j].ID
	})

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	// Channel for the champions to be stored.
	jobs := make(chan *champion.Champion, len(champions))

	// Start workers
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for champ := range jobs {
				if err := r.storeChampion(ctx, champ); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

	// Enqueue tasks
	for _, champ := range champions {
		jobs <- champ
	}

	// Close the channel and wait for all workers to finish
	close(jobs)
	wg.Wait()

	if len(errs) > 0 {
		return champions, errors.Join(errs...)
	}

	r.infof("Revalidated %d champions on version %s", len(champions), latestVersion)
	return champions, nil
}

// Store a single champion on redis and on the backup.
func (r *Revalidator) storeChampion(ctx context.Context, champ *champion.Champion) error {
	champJson, err := json.Marshal(champ)
	if err != nil {
		return fmt.Errorf("can't convert the champion %s back to json: %w", champ.ID, err)
	}

	key := ChampionPrefix + champ.ID
	if err := r.store.Set(ctx, key, champJson, 0); err != nil {
		return fmt.Errorf("can't set the champion %s on redis: %w", champ.ID, err)
	}

	if r.backup != nil {
		if err := r.backup.SetKey(ctx, key, champJson); err != nil {
			return fmt.Errorf("can't backup the champion %s: %w", champ.ID, err)
		}
	}

	return nil
}

func (r *Revalidator) infof(format string, args ...any) {
	if r.logger != nil {
		r.logger.Infof(format, args...)
	}
}

func (r *Revalidator) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Errorf(format, args...)
	}
}
