package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/veleth/stagehand/internal/document"
)

func (s *Server) registerGearTools() {
	s.mcp.AddTool(mcp.NewTool("add_gear",
		mcp.WithDescription("Add new gear to the inventory. Required: name, manufacturer, "+
			"category, technology. Optional: types, controls, url, description."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Gear name (e.g. 'BD-2 Blues Driver')")),
		mcp.WithString("manufacturer", mcp.Required(), mcp.Description("Manufacturer name (e.g. 'BOSS')")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Gear category"), mcp.Enum("Pedal", "Synth")),
		mcp.WithString("technology", mcp.Required(), mcp.Description("Technology type"), mcp.Enum("Analog", "Digital", "Hybrid")),
		mcp.WithArray("types", mcp.Description("Gear types (e.g. ['Distortion', 'Overdrive'])"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("controls", mcp.Description("Control names as labeled on the device"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("url", mcp.Description("Official product URL")),
		mcp.WithString("description", mcp.Description("Brief description (1-2 sentences)")),
	), s.addGear)

	s.mcp.AddTool(mcp.NewTool("list_gear",
		mcp.WithDescription("List all gear in the inventory with optional filters."),
		mcp.WithString("category", mcp.Description("Filter by category"), mcp.Enum("Pedal", "Synth")),
		mcp.WithString("manufacturer", mcp.Description("Filter by manufacturer (substring match)")),
		mcp.WithString("technology", mcp.Description("Filter by technology"), mcp.Enum("Analog", "Digital", "Hybrid")),
	), s.listGear)

	s.mcp.AddTool(mcp.NewTool("search_gear",
		mcp.WithDescription("Search gear by name, manufacturer, types, or description."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchGear)

	s.mcp.AddTool(mcp.NewTool("update_gear",
		mcp.WithDescription("Update existing gear. Provide the slug and only the fields to change."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Gear filename without .yaml (e.g. 'boss-bd-2-blues-driver')")),
		mcp.WithArray("types", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("controls", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("url", mcp.Description("Official product URL")),
		mcp.WithString("description", mcp.Description("Brief description")),
	), s.updateGear)

	s.mcp.AddTool(mcp.NewTool("delete_gear",
		mcp.WithDescription("Delete gear from the inventory. This is immediate and irreversible."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Gear filename without .yaml")),
	), s.deleteGear)

	s.mcp.AddTool(mcp.NewTool("archive_gear",
		mcp.WithDescription("Move gear out of the active inventory into the archive."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Gear filename without .yaml")),
	), s.archiveGear)

	s.mcp.AddTool(mcp.NewTool("unarchive_gear",
		mcp.WithDescription("Move archived gear back into the active inventory."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Gear filename without .yaml")),
	), s.unarchiveGear)
}

func (s *Server) addGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	manufacturer, err := req.RequireString("manufacturer")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	technology, err := req.RequireString("technology")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields := document.Fields{
		{Name: "name", Value: name},
		{Name: "manufacturer", Value: manufacturer},
		{Name: "category", Value: category},
		{Name: "technology", Value: technology},
	}
	args := req.GetArguments()
	optStrings(args, &fields, "types")
	optStrings(args, &fields, "controls")
	optString(args, &fields, "url")
	optString(args, &fields, "description")

	entry, err := s.gear.Create(fields, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var missing []string
	for _, opt := range []string{"controls", "url", "description"} {
		if _, ok := args[opt]; !ok {
			missing = append(missing, opt)
		}
	}
	result := fmt.Sprintf("added gear: %s.yaml", entry.Slug)
	if len(missing) > 0 {
		result += "\nmissing optional fields: " + strings.Join(missing, ", ")
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) listGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filters := map[string]string{
		"category":     req.GetString("category", ""),
		"manufacturer": req.GetString("manufacturer", ""),
		"technology":   req.GetString("technology", ""),
	}

	entries, fileErrs, err := s.gear.List(filters)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		var b strings.Builder
		b.WriteString("no gear found matching filters")
		appendSkipped(&b, fileErrs)
		return mcp.NewToolResultText(b.String()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d items:\n", len(entries))
	for _, e := range entries {
		types := strings.Join(e.Fields.Strings("types"), ", ")
		if types == "" {
			types = "n/a"
		}
		fmt.Fprintf(&b, "\n- %s %s (%s, %s) - %s",
			e.Fields.String("manufacturer"), e.Fields.String("name"),
			e.Fields.String("category"), e.Fields.String("technology"), types)
	}
	appendSkipped(&b, fileErrs)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) searchGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, fileErrs, err := s.gear.Search(query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no gear found matching %q", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d matches:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n- %s %s\n  %s",
			e.Fields.String("manufacturer"), e.Fields.String("name"), e.Slug)
	}
	appendSkipped(&b, fileErrs)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) updateGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var partial document.Fields
	args := req.GetArguments()
	optStrings(args, &partial, "types")
	optStrings(args, &partial, "controls")
	optString(args, &partial, "url")
	optString(args, &partial, "description")

	_, applied, err := s.gear.Update(slug, partial, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(applied) == 0 {
		return mcp.NewToolResultText("no fields to update"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated %s.yaml\nfields updated: %s",
		slug, strings.Join(applied, ", "))), nil
}

func (s *Server) deleteGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gear.Delete(slug); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted %s.yaml", slug)), nil
}

func (s *Server) archiveGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gear.Archive(slug); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("archived %s.yaml", slug)), nil
}

func (s *Server) unarchiveGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gear.Unarchive(slug); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("unarchived %s.yaml", slug)), nil
}
