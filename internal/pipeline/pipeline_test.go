package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/logger"
	"github.com/gameradar/radar/pkg/redis"

	"github.com/gameradar/radar/internal/contracts"
)

const testProfile = `
meta:
  profile_id: test_v1
channel:
  avg_viewers: 30
signals:
  enabled: [drops]
scores:
  drops: 5
notify:
  min_score: 1
  max_games: 10
`

func TestRun_EndToEnd(t *testing.T) {
	var webhookPayloads []map[string]any

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			fmt.Fprint(w, `{"access_token":"tok","expires_in":3600}`)
		case "/games/top":
			fmt.Fprint(w, `{"data":[{"id":"1","name":"Loot Game"},{"id":"2","name":"Plain Game"}],"pagination":{}}`)
		case "/streams":
			if r.URL.Query().Get("game_id") == "1" {
				fmt.Fprint(w, `{"data":[{"user_name":"a","viewer_count":500,"language":"ja","tags":["DropsEnabled"]}]}`)
			} else {
				fmt.Fprint(w, `{"data":[{"user_name":"b","viewer_count":200,"language":"en","tags":[]}]}`)
			}
		case "/ISteamApps/GetAppList/v2/":
			fmt.Fprint(w, `{"applist":{"apps":[]}}`)
		case "/webhook":
			var p map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			webhookPayloads = append(webhookPayloads, p)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(upstream.Close)

	dir := t.TempDir()
	profilePath := filepath.Join(dir, "radar.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte(testProfile), 0o644))

	cfg := &config.Config{
		Twitch: config.TwitchConfig{
			ClientID:     "cid",
			ClientSecret: "secret",
			BaseURL:      upstream.URL,
			AuthURL:      upstream.URL + "/oauth2/token",
			TopGames:     10,
			LanguageHint: "ja",
		},
		Steam:         config.SteamConfig{BaseURL: upstream.URL},
		Discord:       config.DiscordConfig{Webhook7D: upstream.URL + "/webhook"},
		DataDir:       dir,
		ProfilePath:   profilePath,
		Workers:       2,
		SignalTimeout: 5 * time.Second,
	}

	log := logger.NewNop()
	rdb, err := redis.New(&config.Config{})
	require.NoError(t, err)
	p := New(cfg, rdb, log)

	digest, err := p.Run(context.Background(), contracts.Horizon7D)
	require.NoError(t, err)

	assert.Equal(t, 2, digest.Candidates)
	require.Len(t, digest.Games, 1)
	assert.Equal(t, "Loot Game", digest.Games[0].Game.Name)
	assert.Equal(t, 5.0, digest.Games[0].Score)
	assert.Contains(t, digest.Games[0].Tags, "drops enabled")
	assert.Empty(t, digest.Degraded)

	// digest was delivered and cached
	assert.NotEmpty(t, webhookPayloads)
	assert.Same(t, digest, p.Latest(contracts.Horizon7D))
	assert.Nil(t, p.Latest(contracts.Horizon3D))
}

func TestRun_CandidateFailureIsFatal(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/token" {
			fmt.Fprint(w, `{"access_token":"tok","expires_in":3600}`)
			return
		}
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	dir := t.TempDir()
	profilePath := filepath.Join(dir, "radar.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte(testProfile), 0o644))

	cfg := &config.Config{
		Twitch: config.TwitchConfig{
			ClientID:     "cid",
			ClientSecret: "secret",
			BaseURL:      upstream.URL,
			AuthURL:      upstream.URL + "/oauth2/token",
			TopGames:     10,
		},
		Steam:         config.SteamConfig{BaseURL: upstream.URL},
		DataDir:       dir,
		ProfilePath:   profilePath,
		Workers:       2,
		SignalTimeout: time.Second,
	}

	log := logger.NewNop()
	rdb, err := redis.New(&config.Config{})
	require.NoError(t, err)
	p := New(cfg, rdb, log)

	_, err = p.Run(context.Background(), contracts.Horizon3D)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list candidates")
	assert.Nil(t, p.Latest(contracts.Horizon3D))
}

func TestRun_BadProfile(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "radar.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte("signals:\n  enabled: []\n"), 0o644))

	cfg := &config.Config{
		DataDir:       dir,
		ProfilePath:   profilePath,
		Workers:       1,
		SignalTimeout: time.Second,
	}

	log := logger.NewNop()
	rdb, err := redis.New(&config.Config{})
	require.NoError(t, err)
	p := New(cfg, rdb, log)

	_, err = p.Run(context.Background(), contracts.Horizon7D)
	assert.ErrorContains(t, err, "load profile")
}
