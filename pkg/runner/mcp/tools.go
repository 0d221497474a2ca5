package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCalendarGridTool(srv, svc)
	registerListNotesTool(srv, svc)
	registerAddNoteTool(srv, svc)
	registerRemoveNoteTool(srv, svc)
}

func registerCalendarGridTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"calendar_grid",
		mcp.WithDescription("Render the 6x7 month grid with each day's category and notes."),
		mcp.WithString("month",
			mcp.Description("Month to render as YYYY-MM. Defaults to the selected day's month or the current month."),
		),
		mcp.WithString("selected",
			mcp.Description("Day to highlight as YYYY-MM-DD."),
		),
		mcp.WithString("week_start",
			mcp.Description("Weekday shown in the first column."),
			mcp.Enum("sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Month     string `json:"month"`
			Selected  string `json:"selected"`
			WeekStart string `json:"week_start"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		view, err := svc.Grid(ctx, GridOptions{
			Month:     args.Month,
			Selected:  args.Selected,
			WeekStart: args.WeekStart,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerListNotesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_notes",
		mcp.WithDescription("List day notes for a date, a month, or everything."),
		mcp.WithString("when",
			mcp.Description("YYYY-MM-DD for one day, YYYY-MM for a month; omit for all notes."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		when := request.GetString("when", "")
		notes, err := svc.ListNotes(ctx, when)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"when":  when,
			"notes": notes,
			"count": len(notes),
		})
	})
}

func registerAddNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_note",
		mcp.WithDescription("Attach a note to a calendar day."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Note text."),
		),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD or 'today' (default)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AddNote(ctx, request.GetString("date", "today"), text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerRemoveNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_note",
		mcp.WithDescription("Delete a note by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.RemoveNote(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
