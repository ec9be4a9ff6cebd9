package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"
	"github.com/gameradar/radar/pkg/redis"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/enrich"
	"github.com/gameradar/radar/internal/events"
	"github.com/gameradar/radar/internal/external/social"
	"github.com/gameradar/radar/internal/external/steam"
	"github.com/gameradar/radar/internal/external/trends"
	"github.com/gameradar/radar/internal/external/twitch"
	"github.com/gameradar/radar/internal/notify"
	"github.com/gameradar/radar/internal/profile"
	"github.com/gameradar/radar/internal/scoring"
	"github.com/gameradar/radar/internal/signals"
)

// Pipeline wires every stage of a scan run: candidate listing, enrichment,
// signal evaluation, ranking, and notification.
type Pipeline struct {
	cfg *config.Config
	log *logger.Logger

	twitch   *twitch.Client
	steam    *steam.Client
	trends   *trends.Client
	social   *social.Client
	appIndex *enrich.AppIndex
	notifier *notify.Notifier

	// Cache-aware views of the clients above. Identical to the raw clients
	// when Redis is disabled.
	twitchAPI signals.TwitchAPI
	steamAPI  signals.SteamAPI
	trendsAPI signals.TrendsAPI

	mu     sync.RWMutex
	latest map[contracts.Horizon]*contracts.Digest
}

// New builds a pipeline with all upstream clients. When Redis is enabled each
// client additionally honors its upstream's cross-process rate limit and the
// reads go through a shared cache, so several scheduled jobs on one box share
// one request budget per upstream.
func New(cfg *config.Config, rdb *redis.Client, log *logger.Logger) *Pipeline {
	twitchHTTP := httputil.New(log)
	steamHTTP := httputil.New(log)
	trendsHTTP := httputil.New(log).DisableRetry()
	socialHTTP := httputil.New(log)
	if rdb.Enabled() {
		limiter := redis.NewRateLimiter(rdb, "radar")
		twitchHTTP = twitchHTTP.WithRateLimiter(limiter, redis.TwitchRateLimit)
		steamHTTP = steamHTTP.WithRateLimiter(limiter, redis.SteamRateLimit)
		trendsHTTP = trendsHTTP.WithRateLimiter(limiter, redis.TrendsRateLimit)
		socialHTTP = socialHTTP.WithRateLimiter(limiter, redis.SocialRateLimit)
	}

	sc := steam.NewClient(cfg, steamHTTP, log)
	p := &Pipeline{
		cfg:      cfg,
		log:      log.WithField("component", "pipeline"),
		twitch:   twitch.NewClient(cfg, twitchHTTP, log),
		steam:    sc,
		trends:   trends.NewClient(cfg, trendsHTTP, log),
		social:   social.NewClient(cfg, socialHTTP, log),
		appIndex: enrich.NewAppIndex(cfg.DataDir, sc, log),
		notifier: notify.NewNotifier(httputil.New(log), log),
		latest:   make(map[contracts.Horizon]*contracts.Digest),
	}

	p.twitchAPI, p.steamAPI, p.trendsAPI = p.twitch, p.steam, p.trends
	if rdb.Enabled() {
		cache := redis.NewCache(rdb, "radar")
		p.twitchAPI = &cachedTwitch{api: p.twitch, cache: cache}
		p.steamAPI = &cachedSteam{api: p.steam, cache: cache}
		p.trendsAPI = &cachedTrends{api: p.trends, cache: cache}
	}
	return p
}

// AppIndex exposes the enrichment index for the refresh job.
func (p *Pipeline) AppIndex() *enrich.AppIndex { return p.appIndex }

// Latest returns the most recent digest this process produced for the
// horizon, or nil.
func (p *Pipeline) Latest(horizon contracts.Horizon) *contracts.Digest {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest[horizon]
}

// LatestAll returns a snapshot of the most recent digest per horizon.
func (p *Pipeline) LatestAll() map[contracts.Horizon]*contracts.Digest {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[contracts.Horizon]*contracts.Digest, len(p.latest))
	for h, d := range p.latest {
		out[h] = d
	}
	return out
}

// Run executes one scan for the given horizon and delivers the digest. A
// candidate-listing failure aborts the run; enrichment and calendar problems
// degrade it; notification failures are logged but the digest still counts
// as produced.
func (p *Pipeline) Run(ctx context.Context, horizon contracts.Horizon) (*contracts.Digest, error) {
	started := time.Now()
	log := p.log.WithField("horizon", string(horizon))

	prof, err := profile.Load(p.cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	registry, err := signals.BuildRegistry(prof, signals.Available())
	if err != nil {
		return nil, fmt.Errorf("build signal registry: %w", err)
	}

	games, err := p.listCandidates(ctx)
	if err != nil {
		// Without candidates there is nothing to score. An empty digest here
		// would be indistinguishable from "nothing interesting", so abort.
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	log.WithField("candidates", len(games)).Info("candidate listing complete")

	if err := p.appIndex.Refresh(ctx); err != nil {
		log.WithError(err).Warn("app index unavailable, continuing without steam enrichment")
	}
	p.appIndex.Enrich(games)

	calendar, err := events.Load(filepath.Join(p.cfg.DataDir, events.FileName))
	if err != nil {
		log.WithError(err).Warn("event calendar unreadable, event signals will opt out")
		calendar = events.Empty()
	}

	weights := scoring.ResolveWeights(prof, horizon)
	evaluator := scoring.NewEvaluator(registry, weights, p.cfg.SignalTimeout, p.log)

	sc := &signals.Context{
		Profile:  prof,
		Horizon:  horizon,
		Language: p.cfg.Twitch.LanguageHint,
		Twitch:   p.twitchAPI,
		Steam:    p.steamAPI,
		Trends:   p.trendsAPI,
		Social:   p.social,
		Calendar: calendar,
	}

	evals := evaluator.EvaluateAll(ctx, games, sc, p.cfg.Workers)

	digest := &contracts.Digest{
		Horizon:     horizon,
		GeneratedAt: time.Now(),
		Candidates:  len(games),
		Games:       scoring.Rank(evals, prof.Notify.MinScore, prof.Notify.MaxGames),
		Degraded:    scoring.Degraded(evals),
	}

	p.mu.Lock()
	p.latest[horizon] = digest
	p.mu.Unlock()

	log.WithFields(map[string]interface{}{
		"selected": len(digest.Games),
		"degraded": len(digest.Degraded),
		"elapsed":  time.Since(started).String(),
	}).Info("scan complete")

	if err := p.notifier.Send(ctx, p.cfg.WebhookFor(horizon.String()), digest); err != nil {
		log.WithError(err).Error("digest delivery failed")
	}

	return digest, nil
}
