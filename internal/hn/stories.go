package hn

import (
	"context"
	"fmt"
)

var storyEndpoints = map[StoryType]string{
	StoryTypeTop:  "/topstories.json",
	StoryTypeNew:  "/newstories.json",
	StoryTypeBest: "/beststories.json",
	StoryTypeAsk:  "/askstories.json",
	StoryTypeShow: "/showstories.json",
	StoryTypeJobs: "/jobstories.json",
}

// GetStoryIDs fetches the list of story IDs for a given story type.
func (c *Client) GetStoryIDs(ctx context.Context, st StoryType) ([]int, error) {
	path, ok := storyEndpoints[st]
	if !ok {
		return nil, fmt.Errorf("unknown story type: %s", st)
	}
	var ids []int
	if err := c.get(ctx, c.baseURL+path, &ids); err != nil {
		return nil, fmt.Errorf("fetching %s stories: %w", st, err)
	}
	return ids, nil
}

// GetStories fetches story IDs for the given type and batch-fetches the
// items. limit controls how many items to fetch (0 = all). Failed or
// absent items are dropped from the result.
func (c *Client) GetStories(ctx context.Context, st StoryType, limit int) ([]*Item, error) {
	ids, err := c.GetStoryIDs(ctx, st)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	fetched, err := c.BatchGetItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]*Item, 0, len(fetched))
	for _, item := range fetched {
		if item != nil {
			items = append(items, item)
		}
	}
	return items, nil
}
