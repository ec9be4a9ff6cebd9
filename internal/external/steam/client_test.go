package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Steam: config.SteamConfig{BaseURL: srv.URL}}
	log := logger.NewNop()
	return NewClient(cfg, httputil.New(log).DisableRetry(), log)
}

func TestPlayerCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ISteamUserStats/GetNumberOfCurrentPlayers/v1/", r.URL.Path)
		assert.Equal(t, "730", r.URL.Query().Get("appid"))
		fmt.Fprint(w, `{"response":{"player_count":814502,"result":1}}`)
	})

	n, err := c.PlayerCount(context.Background(), 730)
	require.NoError(t, err)
	assert.Equal(t, 814502, n)
}

func TestPlayerCount_Untracked(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{"result":42}}`)
	})

	_, err := c.PlayerCount(context.Background(), 999)
	assert.ErrorContains(t, err, "not tracked")
}

func TestRecentNews(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		fmt.Fprint(w, `{"appnews":{"newsitems":[
			{"title":"Major Update 2.1","contents":"New maps","date":1756600000},
			{"title":"Patch notes","contents":"Fixes","date":1756500000}
		]}}`)
	})

	items, err := c.RecentNews(context.Background(), 730, 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Major Update 2.1", items[0].Title)
}

func TestGetAppList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ISteamApps/GetAppList/v2/", r.URL.Path)
		fmt.Fprint(w, `{"applist":{"apps":[{"appid":730,"name":"Counter-Strike 2"},{"appid":570,"name":"Dota 2"}]}}`)
	})

	apps, err := c.GetAppList(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, 730, apps[0].AppID)
}
