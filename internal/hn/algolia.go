package hn

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// AlgoliaResponse is the search response from the Algolia HN API.
type AlgoliaResponse struct {
	Hits []AlgoliaHit `json:"hits"`
}

// AlgoliaHit is a single search result.
type AlgoliaHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
	CreatedAtI  int64  `json:"created_at_i"`
	StoryText   string `json:"story_text"`
	CommentText string `json:"comment_text"`
	ParentID    int    `json:"parent_id"`
	StoryID     int    `json:"story_id"`
	StoryTitle  string `json:"story_title"`
	StoryURL    string `json:"story_url"`
}

// ToItem converts an Algolia hit to an Item.
func (h AlgoliaHit) ToItem() *Item {
	id, _ := strconv.Atoi(h.ObjectID)

	item := &Item{
		ID:    id,
		By:    h.Author,
		Time:  h.CreatedAtI,
		Score: h.Points,
	}

	if h.Title != "" {
		// It's a story.
		item.Type = TypeStory
		item.Title = h.Title
		item.URL = h.URL
		item.Descendants = h.NumComments
		item.Text = h.StoryText
	} else {
		// It's a comment.
		item.Type = TypeComment
		item.Text = h.CommentText
		item.Parent = h.ParentID
		item.StoryTitle = h.StoryTitle
	}

	return item
}

// search runs an Algolia query against the given endpoint
// ("search" for relevance order, "search_by_date" for recency)
// and converts the hits to Items.
func (c *Client) search(ctx context.Context, endpoint string, params url.Values) ([]*Item, error) {
	var resp AlgoliaResponse
	u := fmt.Sprintf("%s/%s?%s", c.algoliaURL, endpoint, params.Encode())
	if err := c.get(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("searching algolia: %w", err)
	}
	items := make([]*Item, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		items = append(items, hit.ToItem())
	}
	return items, nil
}

// SearchStories runs a full-text story search. byDate orders results by
// recency instead of relevance.
func (c *Client) SearchStories(ctx context.Context, query string, limit int, byDate bool) ([]*Item, error) {
	endpoint := "search"
	if byDate {
		endpoint = "search_by_date"
	}
	params := url.Values{
		"query":       {query},
		"tags":        {"story"},
		"hitsPerPage": {strconv.Itoa(limit)},
	}
	return c.search(ctx, endpoint, params)
}

// GetUserThreads fetches the user's recent comments, matching HN's
// /threads?id=username page. Each comment includes the parent story title.
func (c *Client) GetUserThreads(ctx context.Context, username string, limit int) ([]*Item, error) {
	params := url.Values{
		"tags":        {"comment,author_" + username},
		"hitsPerPage": {strconv.Itoa(limit)},
	}
	return c.search(ctx, "search_by_date", params)
}

// GetNewestComments fetches the newest comments site-wide.
func (c *Client) GetNewestComments(ctx context.Context, limit int) ([]*Item, error) {
	params := url.Values{
		"tags":        {"comment"},
		"hitsPerPage": {strconv.Itoa(limit)},
	}
	return c.search(ctx, "search_by_date", params)
}

// GetPastStories fetches yesterday's front page stories.
func (c *Client) GetPastStories(ctx context.Context, limit int) ([]*Item, error) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	start := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location())
	end := start.AddDate(0, 0, 1)

	params := url.Values{
		"tags": {"front_page"},
		"numericFilters": {fmt.Sprintf("created_at_i>%d,created_at_i<%d",
			start.Unix(), end.Unix())},
		"hitsPerPage": {strconv.Itoa(limit)},
	}
	return c.search(ctx, "search", params)
}
