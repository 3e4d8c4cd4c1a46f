// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the random-note actions as tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/randomnote/internal/commands"
)

// Server wraps the MCP server with the action tools.
type Server struct {
	mcp *server.MCPServer
	svc *commands.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *commands.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Random Note",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("open_random_note",
		mcp.WithDescription("Open a random note, honoring the excluded notes, excluded notebooks, "+
			"root notebooks and completed-todo settings. Notes listed in 'selected' are never chosen."),
		mcp.WithArray("selected", mcp.WithStringItems(), mcp.Description("IDs of the notes currently open in the editor")),
	), s.openRandomNote)

	s.mcp.AddTool(mcp.NewTool("exclude_notes",
		mcp.WithDescription("Add notes to the excluded-notes list. Already excluded notes are ignored."),
		mcp.WithArray("ids", mcp.Required(), mcp.WithStringItems(), mcp.Description("Note IDs to exclude")),
	), s.excludeNotes)

	s.mcp.AddTool(mcp.NewTool("exclude_notebook",
		mcp.WithDescription("Exclude every note of a notebook from random selection."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Notebook ID")),
	), s.excludeNotebook)

	s.mcp.AddTool(mcp.NewTool("add_root_notebook",
		mcp.WithDescription("Restrict random selection to notes of the root notebooks. "+
			"With no root notebooks every note is a candidate."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Notebook ID")),
	), s.addRootNotebook)

	s.mcp.AddTool(mcp.NewTool("get_settings",
		mcp.WithDescription("Return the current random-note settings as JSON."),
	), s.getSettings)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) openRandomNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selected := req.GetStringSlice("selected", nil)
	res, err := s.svc.OpenRandomNote(ctx, selected)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !res.Opened {
		return mcp.NewToolResultText("no eligible note"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("opened: %s", res.NoteID)), nil
}

func (s *Server) excludeNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := req.RequireStringSlice("ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.svc.ExcludeNotes(ctx, ids...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(list, ",")), nil
}

func (s *Server) excludeNotebook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.svc.ExcludeNotebook(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(list, ",")), nil
}

func (s *Server) addRootNotebook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.svc.AddRootNotebook(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(list, ",")), nil
}

func (s *Server) getSettings(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.svc.Settings(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(cfg, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
