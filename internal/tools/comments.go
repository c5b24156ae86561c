package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/fragmede/hnmcp/internal/config"
	"github.com/fragmede/hnmcp/internal/tree"
)

// CommentTreeTool fetches an item and assembles its nested comment
// thread, bounded by depth and breadth.
type CommentTreeTool struct {
	cfg     config.Config
	builder *tree.Builder
	log     zerolog.Logger
}

func NewCommentTreeTool(cfg config.Config, builder *tree.Builder, log zerolog.Logger) *CommentTreeTool {
	return &CommentTreeTool{cfg: cfg, builder: builder, log: log}
}

func (t *CommentTreeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_comment_tree",
		mcp.WithDescription("Fetch a story (or comment) and its nested comment thread. "+
			"Unreachable or deleted comments are silently omitted."),
		mcp.WithNumber("item_id",
			mcp.Required(),
			mcp.Description("ID of the story or comment at the root of the thread"),
		),
		mcp.WithNumber("max_depth",
			mcp.Description("Maximum reply nesting depth; 0 returns the root with no comments"),
			mcp.DefaultNumber(3),
		),
		mcp.WithNumber("max_breadth",
			mcp.Description("Maximum number of replies kept at each level; the rest are not fetched"),
			mcp.DefaultNumber(20),
		),
		mcp.WithBoolean("plain_text",
			mcp.Description("Convert HN's HTML comment bodies to plain text"),
			mcp.DefaultBool(true),
		),
	)
}

func (t *CommentTreeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if id < 0 {
		return mcp.NewToolResultError("item_id must be non-negative"), nil
	}

	maxDepth := clamp(req.GetInt("max_depth", t.cfg.DefaultMaxDepth), t.cfg.MaxDepthCap)
	maxBreadth := clamp(req.GetInt("max_breadth", t.cfg.DefaultMaxBreadth), t.cfg.MaxBreadthCap)
	plainText := req.GetBool("plain_text", true)

	t.log.Info().
		Int("id", id).
		Int("max_depth", maxDepth).
		Int("max_breadth", maxBreadth).
		Msg("building comment tree")

	thread, err := t.builder.Build(ctx, id, maxDepth, maxBreadth)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if thread.Root == nil {
		return mcp.NewToolResultError(fmt.Sprintf("item %d does not exist", id)), nil
	}
	return jsonResult(tree.Assemble(thread, plainText))
}
