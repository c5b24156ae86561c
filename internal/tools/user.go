package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fragmede/hnmcp/internal/config"
	"github.com/fragmede/hnmcp/internal/hn"
)

// UserTool fetches a user profile.
type UserTool struct {
	client *hn.Client
}

func NewUserTool(client *hn.Client) *UserTool {
	return &UserTool{client: client}
}

func (t *UserTool) Definition() mcp.Tool {
	return mcp.NewTool("get_user",
		mcp.WithDescription("Fetch a Hacker News user profile: karma, created date, about text, and submitted item IDs."),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("The HN username, case-sensitive"),
		),
	)
}

func (t *UserTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	user, err := t.client.GetUser(ctx, username)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if user == nil {
		return mcp.NewToolResultError(fmt.Sprintf("user %q does not exist", username)), nil
	}
	return jsonResult(user)
}

// UserThreadsTool fetches a user's recent comments with the title of
// the story each one was posted on, like HN's /threads page.
type UserThreadsTool struct {
	cfg    config.Config
	client *hn.Client
}

func NewUserThreadsTool(cfg config.Config, client *hn.Client) *UserThreadsTool {
	return &UserThreadsTool{cfg: cfg, client: client}
}

func (t *UserThreadsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_user_threads",
		mcp.WithDescription("Fetch a user's most recent comments, newest first, with parent story titles."),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("The HN username, case-sensitive"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of comments to return"),
			mcp.DefaultNumber(20),
		),
	)
}

func (t *UserThreadsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := clampLimit(req.GetInt("limit", 20), 20, t.cfg.MaxStoryLimit)

	items, err := t.client.GetUserThreads(ctx, username, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(items)
}
