package twitch

import (
	"context"
	"net/url"
	"strconv"
)

// Game is one entry from the Helix top-games listing.
type Game struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type gamesResponse struct {
	Data       []Game `json:"data"`
	Pagination struct {
		Cursor string `json:"cursor"`
	} `json:"pagination"`
}

const maxPageSize = 100

// GetTopGames returns up to total games ordered by current viewership,
// following pagination cursors as needed.
func (c *Client) GetTopGames(ctx context.Context, total int) ([]Game, error) {
	games := make([]Game, 0, total)
	cursor := ""

	for len(games) < total {
		first := total - len(games)
		if first > maxPageSize {
			first = maxPageSize
		}

		params := url.Values{"first": {strconv.Itoa(first)}}
		if cursor != "" {
			params.Set("after", cursor)
		}

		var page gamesResponse
		if err := c.get(ctx, "/games/top", params, &page); err != nil {
			return nil, err
		}
		if len(page.Data) == 0 {
			break
		}

		games = append(games, page.Data...)
		cursor = page.Pagination.Cursor
		if cursor == "" {
			break
		}
	}

	if len(games) > total {
		games = games[:total]
	}
	return games, nil
}
