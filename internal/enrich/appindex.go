package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/gameradar/radar/pkg/logger"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/external/steam"
)

const (
	indexFileName = "steam_apps.json"

	// The catalog changes slowly; a daily refresh is plenty.
	refreshInterval = 24 * time.Hour

	// Fuzzy matches below this similarity are treated as unresolved.
	fuzzyThreshold = 0.90
)

// indexFile is the on-disk shape: lowercased name to app id, plus the raw
// names for fuzzy candidates.
type indexFile struct {
	Apps  map[string]int `json:"apps"`
	Names []string       `json:"names"`
}

// AppIndex resolves game display names to Steam app ids using a locally
// cached copy of the full Steam catalog.
type AppIndex struct {
	path  string
	steam *steam.Client
	log   *logger.Logger

	apps  map[string]int
	names []string
	sim   *metrics.JaroWinkler
}

func NewAppIndex(dataDir string, sc *steam.Client, log *logger.Logger) *AppIndex {
	return &AppIndex{
		path:  filepath.Join(dataDir, indexFileName),
		steam: sc,
		log:   log.WithField("component", "appindex"),
		sim:   metrics.NewJaroWinkler(),
	}
}

// Refresh redownloads the catalog when the cached copy is older than the
// refresh interval. Download failures keep the stale cache and are logged,
// never fatal: enrichment degrades, the run continues.
func (a *AppIndex) Refresh(ctx context.Context) error {
	if fresh, err := a.isFresh(); err == nil && fresh {
		return a.load()
	}

	apps, err := a.steam.GetAppList(ctx)
	if err != nil {
		a.log.WithError(err).Warn("app list refresh failed, keeping stale index")
		return a.load()
	}

	idx := indexFile{Apps: make(map[string]int, len(apps))}
	for _, app := range apps {
		if app.Name == "" {
			continue
		}
		key := strings.ToLower(app.Name)
		if _, dup := idx.Apps[key]; dup {
			continue
		}
		idx.Apps[key] = app.AppID
		idx.Names = append(idx.Names, app.Name)
	}

	if err := a.write(idx); err != nil {
		a.log.WithError(err).Warn("could not persist app index")
	}

	a.apps = idx.Apps
	a.names = idx.Names
	a.log.WithField("apps", len(a.apps)).Info("refreshed steam app index")
	return nil
}

func (a *AppIndex) isFresh() (bool, error) {
	info, err := os.Stat(a.path)
	if err != nil {
		return false, err
	}
	return time.Since(info.ModTime()) < refreshInterval, nil
}

func (a *AppIndex) load() error {
	if a.apps != nil {
		return nil
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			a.apps = map[string]int{}
			return nil
		}
		return fmt.Errorf("read app index: %w", err)
	}

	var idx indexFile
	if err := json.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("parse app index: %w", err)
	}

	a.apps = idx.Apps
	a.names = idx.Names
	return nil
}

func (a *AppIndex) write(idx indexFile) error {
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(idx)
	if err != nil {
		return err
	}

	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, a.path)
}

// Resolve maps a display name to a Steam app id. Exact case-insensitive
// match first, then the best fuzzy match if it clears the similarity
// threshold. A miss returns (0, false) and is a normal outcome: plenty of
// streamed games never shipped on Steam.
func (a *AppIndex) Resolve(name string) (int, bool) {
	if len(a.apps) == 0 {
		return 0, false
	}

	if id, ok := a.apps[strings.ToLower(name)]; ok {
		return id, true
	}

	bestSim := 0.0
	bestName := ""
	for _, candidate := range a.names {
		if s := strutil.Similarity(name, candidate, a.sim); s > bestSim {
			bestSim = s
			bestName = candidate
		}
	}

	if bestSim < fuzzyThreshold {
		return 0, false
	}

	id := a.apps[strings.ToLower(bestName)]
	a.log.WithFields(map[string]interface{}{
		"name":       name,
		"matched":    bestName,
		"similarity": bestSim,
	}).Debug("fuzzy-resolved steam app")
	return id, true
}

// Enrich fills in the Steam app id for each candidate that resolves.
func (a *AppIndex) Enrich(games []contracts.Game) {
	for i := range games {
		if id, ok := a.Resolve(games[i].Name); ok {
			games[i].SteamAppID = id
		}
	}
}
