package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/todo/pkg/duedate"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerListsResource(srv, svc)
	registerSectionTemplate(srv, svc)
	registerListTemplate(srv, svc)
	registerTodoTemplate(srv, svc)
}

func registerListsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"todo://lists",
		"Lists",
		mcp.WithResourceDescription("The All Todos and Completed sections with per-due-date counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		out, err := svc.Lists(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"lists": out,
			"count": len(out),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerSectionTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"todo://lists/{scope}",
		"Section Todos",
		mcp.WithTemplateDescription("Every todo of a section: all or completed."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		view, err := svc.ShowList(ctx, argument(request, "scope"), "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

func registerListTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"todo://lists/{scope}/{month}/{year}",
		"List Todos",
		mcp.WithTemplateDescription("Todos of a section that are due in one month."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date := duedate.Label(argument(request, "month"), argument(request, "year"))
		if err := duedate.Valid(date); err != nil {
			return nil, err
		}
		view, err := svc.ShowList(ctx, argument(request, "scope"), date)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

func registerTodoTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"todo://todos/{id}",
		"Todo Details",
		mcp.WithTemplateDescription("Detailed information about a single todo."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw := argument(request, "id")
		if raw == "" {
			return nil, fmt.Errorf("todo id is required")
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid todo id %q", raw)
		}

		dto, err := svc.Todo(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"todo": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// argument returns a matched template variable. Depending on the template
// the value arrives as a string or a single-element slice.
func argument(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
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
