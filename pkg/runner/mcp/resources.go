package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTodayResource(srv, svc)
	registerMonthTemplate(srv, svc)
}

func registerTodayResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"calgrid://today",
		"Current Month",
		mcp.WithResourceDescription("The grid for the current month with today selected."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		view, err := svc.Grid(ctx, GridOptions{})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

func registerMonthTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"calgrid://months/{month}",
		"Month Notes",
		mcp.WithTemplateDescription("Grid and notes for a month given as YYYY-MM."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		month := templateArg(request.Params.Arguments["month"])
		if month == "" {
			return nil, fmt.Errorf("month is required")
		}

		view, err := svc.Grid(ctx, GridOptions{Month: month})
		if err != nil {
			return nil, err
		}
		notes, err := svc.ListNotes(ctx, view.Month)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"month": view.Month,
			"label": view.Label,
			"count": len(notes),
			"notes": notes,
			"grid":  view,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg unwraps a URI template variable, which mcp-go may deliver as a
// string or a single-element slice.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
