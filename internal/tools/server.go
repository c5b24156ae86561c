// Package tools wires the HN client and tree builder into an MCP server.
//
// Each operation is a small struct with a Definition (name + parameter
// schema) and a Handle func; New is the composition root that registers
// them all. No traversal logic lives here — handlers validate and
// default arguments, call into internal/hn or internal/tree, and
// serialize the result.
package tools

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/fragmede/hnmcp/internal/config"
	"github.com/fragmede/hnmcp/internal/hn"
	"github.com/fragmede/hnmcp/internal/tree"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with all tools registered.
func New(cfg config.Config, client *hn.Client, log zerolog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"hnmcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Read-only access to Hacker News: story lists, "+
			"items, users, full-text search, and nested comment threads."),
	)

	builder := tree.NewBuilder(client, log)

	storiesTool := NewStoriesTool(cfg, client)
	s.AddTool(storiesTool.Definition(), storiesTool.Handle)

	itemTool := NewItemTool(client)
	s.AddTool(itemTool.Definition(), itemTool.Handle)

	userTool := NewUserTool(client)
	s.AddTool(userTool.Definition(), userTool.Handle)

	commentsTool := NewCommentTreeTool(cfg, builder, log)
	s.AddTool(commentsTool.Definition(), commentsTool.Handle)

	searchTool := NewSearchTool(cfg, client)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	threadsTool := NewUserThreadsTool(cfg, client)
	s.AddTool(threadsTool.Definition(), threadsTool.Handle)

	newestTool := NewNewestCommentsTool(cfg, client)
	s.AddTool(newestTool.Definition(), newestTool.Handle)

	frontPageTool := NewPastFrontPageTool(cfg, client)
	s.AddTool(frontPageTool.Definition(), frontPageTool.Handle)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client
// disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
