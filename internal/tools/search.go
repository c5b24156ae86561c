package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fragmede/hnmcp/internal/config"
	"github.com/fragmede/hnmcp/internal/hn"
)

// SearchTool runs a full-text story search via the Algolia HN API.
type SearchTool struct {
	cfg    config.Config
	client *hn.Client
}

func NewSearchTool(cfg config.Config, client *hn.Client) *SearchTool {
	return &SearchTool{cfg: cfg, client: client}
}

func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_stories",
		mcp.WithDescription("Full-text search over Hacker News stories."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search terms"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return"),
			mcp.DefaultNumber(10),
		),
		mcp.WithBoolean("search_by_date",
			mcp.Description("Order results by recency instead of relevance"),
			mcp.DefaultBool(false),
		),
	)
}

func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := clampLimit(req.GetInt("limit", t.cfg.DefaultStoryLimit), t.cfg.DefaultStoryLimit, t.cfg.MaxStoryLimit)
	byDate := req.GetBool("search_by_date", false)

	items, err := t.client.SearchStories(ctx, query, limit, byDate)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(items)
}

// NewestCommentsTool fetches the newest comments posted site-wide,
// each with its parent story title.
type NewestCommentsTool struct {
	cfg    config.Config
	client *hn.Client
}

func NewNewestCommentsTool(cfg config.Config, client *hn.Client) *NewestCommentsTool {
	return &NewestCommentsTool{cfg: cfg, client: client}
}

func (t *NewestCommentsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_newest_comments",
		mcp.WithDescription("Fetch the most recent comments posted anywhere on Hacker News, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of comments to return"),
			mcp.DefaultNumber(20),
		),
	)
}

func (t *NewestCommentsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampLimit(req.GetInt("limit", 20), 20, t.cfg.MaxStoryLimit)

	items, err := t.client.GetNewestComments(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(items)
}
