package twitch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Twitch: config.TwitchConfig{
			ClientID:     "cid",
			ClientSecret: "secret",
			BaseURL:      srv.URL,
			AuthURL:      srv.URL + "/oauth2/token",
		},
	}
	log := logger.NewNop()
	return NewClient(cfg, httputil.New(log).DisableRetry(), log), srv
}

func TestGetTopGames_Paginates(t *testing.T) {
	var tokenCalls atomic.Int32

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			tokenCalls.Add(1)
			fmt.Fprint(w, `{"access_token":"tok","expires_in":3600}`)
		case "/games/top":
			assert.Equal(t, "cid", r.Header.Get("Client-Id"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			if r.URL.Query().Get("after") == "" {
				fmt.Fprint(w, `{"data":[{"id":"1","name":"Alpha"},{"id":"2","name":"Beta"}],"pagination":{"cursor":"p2"}}`)
			} else {
				fmt.Fprint(w, `{"data":[{"id":"3","name":"Gamma"}],"pagination":{}}`)
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	games, err := c.GetTopGames(context.Background(), 150)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "Alpha", games[0].Name)
	assert.Equal(t, "3", games[2].ID)

	// token fetched once, reused for the second page
	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestGetTopGames_TruncatesToTotal(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/token" {
			fmt.Fprint(w, `{"access_token":"tok","expires_in":3600}`)
			return
		}
		assert.Equal(t, "2", r.URL.Query().Get("first"))
		fmt.Fprint(w, `{"data":[{"id":"1","name":"A"},{"id":"2","name":"B"},{"id":"3","name":"C"}],"pagination":{}}`)
	})

	games, err := c.GetTopGames(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestGetStreams(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/token" {
			fmt.Fprint(w, `{"access_token":"tok","expires_in":3600}`)
			return
		}
		assert.Equal(t, "/streams", r.URL.Path)
		assert.Equal(t, "509658", r.URL.Query().Get("game_id"))
		fmt.Fprint(w, `{"data":[
			{"user_name":"streamer1","viewer_count":1200,"language":"ja","tags":["DropsEnabled","FPS"]},
			{"user_name":"streamer2","viewer_count":300,"language":"en","tags":[]}
		]}`)
	})

	streams, err := c.GetStreams(context.Background(), "509658", 25)
	require.NoError(t, err)
	require.Len(t, streams, 2)
	assert.True(t, streams[0].HasDropsTag())
	assert.False(t, streams[1].HasDropsTag())
	assert.Equal(t, 1200, streams[0].ViewerCount)
}

func TestAuthFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid client"}`, http.StatusForbidden)
	})

	_, err := c.GetTopGames(context.Background(), 10)
	assert.Error(t, err)
}
