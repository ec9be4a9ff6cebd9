package twitch

import (
	"context"
	"net/url"
	"strconv"
)

// Stream is one live broadcast from the Helix streams listing.
type Stream struct {
	UserName    string   `json:"user_name"`
	ViewerCount int      `json:"viewer_count"`
	Language    string   `json:"language"`
	Tags        []string `json:"tags"`
}

const dropsTag = "DropsEnabled"

// HasDropsTag reports whether the broadcaster tagged the stream as running
// a Drops campaign.
func (s Stream) HasDropsTag() bool {
	for _, t := range s.Tags {
		if t == dropsTag {
			return true
		}
	}
	return false
}

type streamsResponse struct {
	Data []Stream `json:"data"`
}

// GetStreams returns up to first live streams for a game, most viewers first.
func (c *Client) GetStreams(ctx context.Context, gameID string, first int) ([]Stream, error) {
	if first > maxPageSize {
		first = maxPageSize
	}

	params := url.Values{
		"game_id": {gameID},
		"first":   {strconv.Itoa(first)},
	}

	var page streamsResponse
	if err := c.get(ctx, "/streams", params, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}
