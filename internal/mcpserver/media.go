package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/veleth/stagehand/internal/document"
)

func (s *Server) registerMediaTools() {
	s.mcp.AddTool(mcp.NewTool("add_media_item",
		mcp.WithDescription("Create a standalone media record. Pictures require image and author; "+
			"videos require youtube_id. The date defaults to today."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Media title")),
		mcp.WithString("type", mcp.Required(), mcp.Description("Media type"), mcp.Enum("picture", "video")),
		mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD, defaults to today)")),
		mcp.WithString("image", mcp.Description("Image path (pictures)")),
		mcp.WithString("author", mcp.Description("Photographer name (pictures)")),
		mcp.WithString("author_url", mcp.Description("Photographer URL")),
		mcp.WithString("youtube_id", mcp.Description("YouTube video id (videos)")),
		mcp.WithString("gig", mcp.Description("Related gig slug (e.g. '2025-10-11-noise-space-xv')")),
		mcp.WithString("description", mcp.Description("Short description")),
	), s.addMediaItem)

	s.mcp.AddTool(mcp.NewTool("list_media_items",
		mcp.WithDescription("List all media items with optional filters."),
		mcp.WithString("type", mcp.Description("Filter by type"), mcp.Enum("picture", "video")),
		mcp.WithString("author", mcp.Description("Filter by author (substring match)")),
	), s.listMediaItems)

	s.mcp.AddTool(mcp.NewTool("search_media_items",
		mcp.WithDescription("Search media items by title, author, or description."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchMediaItems)

	s.mcp.AddTool(mcp.NewTool("update_media_item",
		mcp.WithDescription("Update a media item. Provide the slug and only the fields to "+
			"change. Changing the date or title renames the record file."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Record filename without .yaml")),
		mcp.WithString("title", mcp.Description("Media title")),
		mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD)")),
		mcp.WithString("image", mcp.Description("Image path")),
		mcp.WithString("author", mcp.Description("Photographer name")),
		mcp.WithString("author_url", mcp.Description("Photographer URL")),
		mcp.WithString("youtube_id", mcp.Description("YouTube video id")),
		mcp.WithString("gig", mcp.Description("Related gig slug")),
		mcp.WithString("description", mcp.Description("Short description")),
	), s.updateMediaItem)

	s.mcp.AddTool(mcp.NewTool("delete_media_item",
		mcp.WithDescription("Delete a media item. This is immediate and irreversible."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Record filename without .yaml")),
	), s.deleteMediaItem)

	s.mcp.AddTool(mcp.NewTool("archive_media_item",
		mcp.WithDescription("Move a media item out of the active set into the archive."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Record filename without .yaml")),
	), s.archiveMediaItem)

	s.mcp.AddTool(mcp.NewTool("unarchive_media_item",
		mcp.WithDescription("Move an archived media item back into the active set."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Record filename without .yaml")),
	), s.unarchiveMediaItem)
}

func (s *Server) addMediaItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mediaType, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date := req.GetString("date", time.Now().Format("2006-01-02"))

	fields := document.Fields{
		{Name: "title", Value: title},
		{Name: "date", Value: date},
		{Name: "type", Value: mediaType},
	}
	args := req.GetArguments()
	optString(args, &fields, "image")
	optString(args, &fields, "author")
	optString(args, &fields, "author_url")
	optString(args, &fields, "youtube_id")
	optString(args, &fields, "gig")
	optString(args, &fields, "description")

	entry, err := s.media.Create(fields, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created %s: %s.yaml", mediaType, entry.Slug)), nil
}

func (s *Server) listMediaItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filters := map[string]string{
		"type":   req.GetString("type", ""),
		"author": req.GetString("author", ""),
	}

	entries, fileErrs, err := s.media.List(filters)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		var b strings.Builder
		b.WriteString("no media items found")
		appendSkipped(&b, fileErrs)
		return mcp.NewToolResultText(b.String()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d media items:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n- [%s] %s - %s\n  %s.yaml",
			e.Fields.String("type"), e.Fields.String("date"),
			e.Fields.String("title"), e.Slug)
	}
	appendSkipped(&b, fileErrs)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) searchMediaItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, fileErrs, err := s.media.Search(query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no media items found matching %q", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d matches:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n- [%s] %s\n  %s",
			e.Fields.String("type"), e.Fields.String("title"), e.Slug)
	}
	appendSkipped(&b, fileErrs)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) updateMediaItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var partial document.Fields
	args := req.GetArguments()
	for _, name := range []string{"title", "date", "image", "author", "author_url", "youtube_id", "gig", "description"} {
		optString(args, &partial, name)
	}

	entry, applied, err := s.media.Update(slug, partial, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(applied) == 0 {
		return mcp.NewToolResultText("no fields to update"), nil
	}
	if entry.Slug != slug {
		return mcp.NewToolResultText(fmt.Sprintf("updated and renamed: %s.yaml\nfields updated: %s",
			entry.Slug, strings.Join(applied, ", "))), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated %s.yaml\nfields updated: %s",
		slug, strings.Join(applied, ", "))), nil
}

func (s *Server) deleteMediaItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.media.Delete(slug); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted %s.yaml", slug)), nil
}

func (s *Server) archiveMediaItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.media.Archive(slug); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("archived %s.yaml", slug)), nil
}

func (s *Server) unarchiveMediaItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.media.Unarchive(slug); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("unarchived %s.yaml", slug)), nil
}
