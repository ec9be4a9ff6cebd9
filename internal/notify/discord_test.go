package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"

	"github.com/gameradar/radar/internal/contracts"
)

func newNotifier(t *testing.T, handler http.HandlerFunc) (*Notifier, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.NewNop()
	return NewNotifier(httputil.New(log).DisableRetry(), log), srv.URL + "/webhook"
}

func rankedDigest(n int) *contracts.Digest {
	d := &contracts.Digest{
		Horizon:     contracts.Horizon7D,
		GeneratedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		Candidates:  40,
	}
	for i := 1; i <= n; i++ {
		d.Games = append(d.Games, contracts.RankedGame{
			Rank:  i,
			Game:  contracts.Game{Name: "Game", ViewerCount: 100 * i},
			Score: float64(100 - i),
			Tags:  []string{"blue ocean"},
		})
	}
	return d
}

func TestSend(t *testing.T) {
	var payloads []webhookPayload

	n, url := newNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		var p webhookPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		payloads = append(payloads, p)
		w.WriteHeader(http.StatusNoContent)
	})

	d := rankedDigest(3)
	d.Degraded = []contracts.DegradedGame{{Name: "Flaky", Summary: "trends_spike: quota"}}

	require.NoError(t, n.Send(context.Background(), url, d))
	require.Len(t, payloads, 1)

	p := payloads[0]
	assert.Contains(t, p.Content, "3 pick(s) from 40 candidates")
	require.Len(t, p.Embeds, 4) // 3 games + degraded footer
	assert.Contains(t, p.Embeds[0].Title, "🥇")
	assert.Equal(t, colorTop, p.Embeds[0].Color)
	assert.Contains(t, p.Embeds[3].Title, "Partial data")
}

func TestSend_ChunksLongDigests(t *testing.T) {
	var payloads []webhookPayload

	n, url := newNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		var p webhookPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		payloads = append(payloads, p)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, n.Send(context.Background(), url, rankedDigest(13)))
	require.Len(t, payloads, 2)
	assert.Len(t, payloads[0].Embeds, 10)
	assert.Len(t, payloads[1].Embeds, 3)
	// headline only on the first chunk
	assert.NotEmpty(t, payloads[0].Content)
	assert.Empty(t, payloads[1].Content)
}

func TestSend_EmptySelection(t *testing.T) {
	var payloads []webhookPayload

	n, url := newNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		var p webhookPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		payloads = append(payloads, p)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, n.Send(context.Background(), url, rankedDigest(0)))
	require.Len(t, payloads, 1)
	assert.Contains(t, payloads[0].Content, "nothing above the bar")
	assert.Empty(t, payloads[0].Embeds)
}

func TestSend_WebhookError(t *testing.T) {
	n, url := newNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad webhook", http.StatusBadRequest)
	})

	err := n.Send(context.Background(), url, rankedDigest(1))
	assert.Error(t, err)
}

func TestSend_NoWebhookConfigured(t *testing.T) {
	log := logger.NewNop()
	n := NewNotifier(httputil.New(log), log)

	err := n.Send(context.Background(), "", rankedDigest(1))
	assert.ErrorContains(t, err, "no webhook")
}

func TestMedal(t *testing.T) {
	assert.Equal(t, "🥇", medal(1))
	assert.Equal(t, "🥈", medal(2))
	assert.Equal(t, "🥉", medal(3))
	assert.Equal(t, "#4", medal(4))
}
