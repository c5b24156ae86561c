package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fragmede/hnmcp/internal/hn"
)

// ItemTool fetches a single item by id.
type ItemTool struct {
	client *hn.Client
}

func NewItemTool(client *hn.Client) *ItemTool {
	return &ItemTool{client: client}
}

func (t *ItemTool) Definition() mcp.Tool {
	return mcp.NewTool("get_item",
		mcp.WithDescription("Fetch a single Hacker News item (story, comment, job, poll) by ID."),
		mcp.WithNumber("item_id",
			mcp.Required(),
			mcp.Description("The item's numeric ID"),
		),
	)
}

func (t *ItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if id < 0 {
		return mcp.NewToolResultError("item_id must be non-negative"), nil
	}

	item, err := t.client.GetItem(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if item == nil {
		return mcp.NewToolResultError(fmt.Sprintf("item %d does not exist", id)), nil
	}
	return jsonResult(item)
}
