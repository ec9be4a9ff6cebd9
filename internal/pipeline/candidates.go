package pipeline

import (
	"context"
	"sync"

	"github.com/gameradar/radar/internal/contracts"
)

// streamProbe is how many top streams are sampled per game to estimate live
// viewership and detect Drops campaigns.
const streamProbe = 25

// listCandidates pulls the current top games and probes each one's stream
// listing for viewer totals and Drops tags. The top-games call failing is
// fatal; a per-game probe failing just leaves that game unprobed.
func (p *Pipeline) listCandidates(ctx context.Context) ([]contracts.Game, error) {
	top, err := p.twitch.GetTopGames(ctx, p.cfg.Twitch.TopGames)
	if err != nil {
		return nil, err
	}

	games := make([]contracts.Game, len(top))
	for i, g := range top {
		games[i] = contracts.Game{TwitchID: g.ID, Name: g.Name}
	}

	workers := p.cfg.Workers
	if workers > len(games) {
		workers = len(games)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p.probeGame(ctx, &games[i])
			}
		}()
	}

	for i := range games {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return games, nil
}

func (p *Pipeline) probeGame(ctx context.Context, game *contracts.Game) {
	streams, err := p.twitchAPI.GetStreams(ctx, game.TwitchID, streamProbe)
	if err != nil {
		p.log.WithError(err).WithField("game", game.Name).Warn("stream probe failed")
		return
	}

	for _, s := range streams {
		game.ViewerCount += s.ViewerCount
		if s.HasDropsTag() {
			game.DropsEnabled = true
		}
	}
}
