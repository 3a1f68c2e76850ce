// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the record stores as typed tools over stdio transport.
//
// Store failures (not found, already exists, validation, bad file format)
// are returned as non-fatal tool error results so the stream stays open for
// further calls; only malformed protocol framing terminates the server.
package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/veleth/stagehand/internal/document"
	"github.com/veleth/stagehand/internal/store"
)

// Server wraps the MCP server with the content-management tools.
type Server struct {
	mcp   *server.MCPServer
	gear  *store.Store
	live  *store.Store
	media *store.Store
}

// New creates an MCP server with all record tools registered.
func New(gear, live, media *store.Store) *Server {
	s := &Server{gear: gear, live: live, media: media}

	s.mcp = server.NewMCPServer(
		"Stagehand",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.registerGearTools()
	s.registerLiveTools()
	s.registerMediaTools()

	s.mcp.AddTool(mcp.NewTool("get_record_contract",
		mcp.WithDescription("Returns the canonical record file formats for gear, live events, "+
			"and media items. Call this before creating or updating records."),
	), s.getRecordContract)

	// Resource: record format contract.
	s.mcp.AddResource(
		mcp.NewResource("stagehand://record-format", "Record Format Contract",
			mcp.WithResourceDescription("Canonical YAML record formats for all record kinds."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecordFormatResource,
	)

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

func (s *Server) getRecordContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecordFormatContract), nil
}

func (s *Server) readRecordFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "stagehand://record-format",
			MIMEType: "text/markdown",
			Text:     RecordFormatContract,
		},
	}, nil
}

// optString copies a string argument into fields when it is present,
// preserving the caller's omission of optional fields.
func optString(args map[string]any, fields *document.Fields, name string) {
	if v, ok := args[name]; ok {
		if s, ok := v.(string); ok {
			fields.Set(name, s)
		}
	}
}

// optStrings copies a string-array argument into fields when present.
func optStrings(args map[string]any, fields *document.Fields, name string) {
	if v, ok := args[name]; ok {
		if items, ok := v.([]any); ok {
			out := make([]string, 0, len(items))
			for _, item := range items {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			fields.Set(name, out)
		}
	}
}

// appendSkipped reports files a directory scan could not parse; a corrupt
// record must not silently hide the rest of the corpus.
func appendSkipped(b *strings.Builder, fileErrs []store.FileError) {
	if len(fileErrs) == 0 {
		return
	}
	b.WriteString("\n\nskipped unreadable files:")
	for _, fe := range fileErrs {
		b.WriteString("\n  " + fe.Error())
	}
}
