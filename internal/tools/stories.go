package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fragmede/hnmcp/internal/config"
	"github.com/fragmede/hnmcp/internal/hn"
)

// StoriesTool fetches one of the HN story lists.
type StoriesTool struct {
	cfg    config.Config
	client *hn.Client
}

func NewStoriesTool(cfg config.Config, client *hn.Client) *StoriesTool {
	return &StoriesTool{cfg: cfg, client: client}
}

func (t *StoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_stories",
		mcp.WithDescription("Fetch stories from one of the Hacker News lists (front page, newest, best, Ask HN, Show HN, jobs)."),
		mcp.WithString("story_type",
			mcp.Description("Which list to fetch"),
			mcp.Enum("top", "new", "best", "ask", "show", "job"),
			mcp.DefaultString("top"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of stories to return"),
			mcp.DefaultNumber(10),
		),
	)
}

func (t *StoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storyType := hn.StoryType(req.GetString("story_type", "top"))
	limit := clampLimit(req.GetInt("limit", t.cfg.DefaultStoryLimit), t.cfg.DefaultStoryLimit, t.cfg.MaxStoryLimit)

	items, err := t.client.GetStories(ctx, storyType, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(items)
}

// PastFrontPageTool fetches yesterday's front page.
type PastFrontPageTool struct {
	cfg    config.Config
	client *hn.Client
}

func NewPastFrontPageTool(cfg config.Config, client *hn.Client) *PastFrontPageTool {
	return &PastFrontPageTool{cfg: cfg, client: client}
}

func (t *PastFrontPageTool) Definition() mcp.Tool {
	return mcp.NewTool("get_past_front_page",
		mcp.WithDescription("Fetch the stories that were on the Hacker News front page yesterday."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of stories to return"),
			mcp.DefaultNumber(30),
		),
	)
}

func (t *PastFrontPageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampLimit(req.GetInt("limit", 30), 30, t.cfg.MaxStoryLimit)

	items, err := t.client.GetPastStories(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(items)
}
