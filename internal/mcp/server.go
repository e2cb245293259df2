// Package mcp exposes the memory engine over the Model Context Protocol
// as the store_memory / recall_memory / list_memories tool set.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rcliao/agentic-memory/internal/engine"
	"github.com/rcliao/agentic-memory/internal/model"
)

// Server bridges MCP tool calls onto one shared engine instance. The
// transport owns the engine's lifecycle; the engine knows nothing of MCP.
type Server struct {
	engine *engine.Engine
	mcp    *server.MCPServer
}

// NewServer builds the MCP server and registers the memory tools.
func NewServer(e *engine.Engine, version string) *Server {
	s := &Server{
		engine: e,
		mcp: server.NewMCPServer("agentic-memory", version,
			server.WithToolCapabilities(false),
		),
	}

	s.mcp.AddTool(mcp.NewTool("store_memory",
		mcp.WithDescription("Store a piece of knowledge in the agent's long-term memory."),
		mcp.WithString("content", mcp.Required(),
			mcp.Description("The text to remember.")),
		mcp.WithString("memory_type",
			mcp.Description("One of: episodic, semantic, procedural, working."),
			mcp.DefaultString("semantic")),
		mcp.WithString("importance",
			mcp.Description("One of: low, medium, high, critical."),
			mcp.DefaultString("medium")),
	), s.handleStore)

	s.mcp.AddTool(mcp.NewTool("recall_memory",
		mcp.WithDescription("Recall the single most relevant memory for a query."),
		mcp.WithString("query", mcp.Required(),
			mcp.Description("What to look for.")),
	), s.handleRecall)

	s.mcp.AddTool(mcp.NewTool("list_memories",
		mcp.WithDescription("List the ids of all stored memories."),
	), s.handleList)

	return s
}

// ServeStdio blocks, serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typ := model.MemoryType(req.GetString("memory_type", "semantic"))
	imp, err := model.ParseImportance(req.GetString("importance", "medium"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := s.engine.Remember(ctx, content, typ, imp, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{"id": id, "status": "stored"})
}

func (s *Server) handleRecall(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := s.engine.Recall(ctx, query, 1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no memory found for %q", query)), nil
	}
	return jsonResult(results[0])
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recs, err := s.engine.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	return jsonResult(map[string]any{"ids": ids, "count": len(ids)})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
