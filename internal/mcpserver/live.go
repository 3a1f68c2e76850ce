package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/veleth/stagehand/internal/document"
)

func (s *Server) registerLiveTools() {
	performerItems := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"url":  map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}

	s.mcp.AddTool(mcp.NewTool("add_live_event",
		mcp.WithDescription("Create a live performance record. Required: date, venue, location. "+
			"The title defaults to the venue name when omitted."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Event date (YYYY-MM-DD)")),
		mcp.WithString("venue", mcp.Required(), mcp.Description("Venue name")),
		mcp.WithString("location", mcp.Required(), mcp.Description("City")),
		mcp.WithString("title", mcp.Description("Event name (defaults to the venue name)")),
		mcp.WithString("description", mcp.Description("Free-text description (stored as the record body)")),
		mcp.WithString("poster", mcp.Description("Poster image filename")),
		mcp.WithString("event_link", mcp.Description("Event page URL")),
		mcp.WithArray("other_performers", mcp.Description("Other performers on the bill"), mcp.Items(performerItems)),
	), s.addLiveEvent)

	s.mcp.AddTool(mcp.NewTool("list_live_events",
		mcp.WithDescription("List all live performances with optional filters."),
		mcp.WithString("venue", mcp.Description("Filter by venue (substring match)")),
		mcp.WithString("location", mcp.Description("Filter by city (substring match)")),
	), s.listLiveEvents)

	s.mcp.AddTool(mcp.NewTool("search_live_events",
		mcp.WithDescription("Search live performances by title, venue, location, or description."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchLiveEvents)

	s.mcp.AddTool(mcp.NewTool("update_live_event",
		mcp.WithDescription("Update a live performance. Provide the slug and only the fields to "+
			"change. Changing the date or title renames the record file."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Record filename without .yaml (e.g. '2025-10-11-noise-space-xv')")),
		mcp.WithString("title", mcp.Description("Event name")),
		mcp.WithString("date", mcp.Description("Event date (YYYY-MM-DD)")),
		mcp.WithString("venue", mcp.Description("Venue name")),
		mcp.WithString("location", mcp.Description("City")),
		mcp.WithString("description", mcp.Description("Replacement description body")),
		mcp.WithString("poster", mcp.Description("Poster image filename")),
		mcp.WithString("event_link", mcp.Description("Event page URL")),
	), s.updateLiveEvent)

	s.mcp.AddTool(mcp.NewTool("delete_live_event",
		mcp.WithDescription("Delete a live performance record. This is immediate and irreversible."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Record filename without .yaml")),
	), s.deleteLiveEvent)
}

func (s *Server) addLiveEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	venue, err := req.RequireString("venue")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	location, err := req.RequireString("location")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title := req.GetString("title", "")
	if title == "" {
		title = venue
	}

	fields := document.Fields{
		{Name: "title", Value: title},
		{Name: "date", Value: date},
		{Name: "venue", Value: venue},
		{Name: "location", Value: location},
	}
	args := req.GetArguments()
	optString(args, &fields, "poster")
	optString(args, &fields, "event_link")
	if performers, ok := performersFromArgs(args["other_performers"]); ok {
		fields.Set("other_performers", performers)
	}

	entry, err := s.live.Create(fields, req.GetString("description", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created live performance: %s.yaml", entry.Slug)), nil
}

func (s *Server) listLiveEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filters := map[string]string{
		"venue":    req.GetString("venue", ""),
		"location": req.GetString("location", ""),
	}

	entries, fileErrs, err := s.live.List(filters)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		var b strings.Builder
		b.WriteString("no live performances found")
		appendSkipped(&b, fileErrs)
		return mcp.NewToolResultText(b.String()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d live performances:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n- %s - %s (%s)\n  %s.yaml",
			e.Fields.String("date"), e.Fields.String("title"),
			e.Fields.String("location"), e.Slug)
	}
	appendSkipped(&b, fileErrs)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) searchLiveEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, fileErrs, err := s.live.Search(query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no live performances found matching %q", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d matches:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n- %s - %s @ %s\n  %s",
			e.Fields.String("date"), e.Fields.String("title"),
			e.Fields.String("venue"), e.Slug)
	}
	appendSkipped(&b, fileErrs)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) updateLiveEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var partial document.Fields
	args := req.GetArguments()
	optString(args, &partial, "title")
	optString(args, &partial, "date")
	optString(args, &partial, "venue")
	optString(args, &partial, "location")
	optString(args, &partial, "poster")
	optString(args, &partial, "event_link")

	var body *string
	if v, ok := args["description"]; ok {
		if desc, ok := v.(string); ok {
			body = &desc
		}
	}

	entry, applied, err := s.live.Update(slug, partial, body)
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

func (s *Server) deleteLiveEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.live.Delete(slug); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted %s.yaml", slug)), nil
}

// performersFromArgs converts the other_performers tool argument (an array
// of {name, url?} objects) into sub-record fields.
func performersFromArgs(v any) ([]document.Fields, bool) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	out := make([]document.Fields, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		performer := document.Fields{{Name: "name", Value: name}}
		if url, _ := m["url"].(string); url != "" {
			performer.Set("url", url)
		}
		out = append(out, performer)
	}
	return out, len(out) > 0
}
