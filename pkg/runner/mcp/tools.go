package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/todo/pkg/store"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCreateTodoTool(srv, svc)
	registerUpdateTodoTool(srv, svc)
	registerToggleTodoTool(srv, svc)
	registerCompleteTodoTool(srv, svc)
	registerDeleteTodoTool(srv, svc)
	registerGetTodoTool(srv, svc)
	registerListListsTool(srv, svc)
	registerShowListTool(srv, svc)
	registerSearchTodosTool(srv, svc)
}

func dueDateOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("day",
			mcp.Description("Optional day of month, 1-31."),
		),
		mcp.WithString("month",
			mcp.Description("Optional month, 1-12. Todos without month and year have no due date."),
		),
		mcp.WithString("year",
			mcp.Description("Optional year such as 2024 or 24."),
		),
	}
}

func registerCreateTodoTool(srv *server.MCPServer, svc *Service) {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Create a new todo."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the todo."),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description."),
		),
	}
	tool := mcp.NewTool("create_todo", append(opts, dueDateOptions()...)...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var f store.Fields
		if err := request.BindArguments(&f); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.Create(ctx, f)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateTodoTool(srv *server.MCPServer, svc *Service) {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Update a todo. Omitted fields keep their current value."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Identifier of the todo."),
		),
		mcp.WithString("title",
			mcp.Description("New title."),
		),
		mcp.WithString("description",
			mcp.Description("New description."),
		),
		mcp.WithBoolean("clear_due",
			mcp.Description("Remove the due date, moving the todo to No Due Date."),
		),
	}
	tool := mcp.NewTool("update_todo", append(opts, dueDateOptions()...)...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			store.Fields
			ID       int  `json:"id"`
			ClearDue bool `json:"clear_due"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.Update(ctx, args.ID, args.Fields, args.ClearDue)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

// idTool registers a tool whose only argument is a todo id.
func idTool(srv *server.MCPServer, name, description string, fn func(ctx context.Context, id int) (any, error)) {
	tool := mcp.NewTool(
		name,
		mcp.WithDescription(description),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Identifier of the todo."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID int `json:"id"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		out, err := fn(ctx, args.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(out)
	})
}

func registerToggleTodoTool(srv *server.MCPServer, svc *Service) {
	idTool(srv, "toggle_todo", "Flip the completed flag of a todo.", func(ctx context.Context, id int) (any, error) {
		return svc.Toggle(ctx, id)
	})
}

func registerCompleteTodoTool(srv *server.MCPServer, svc *Service) {
	idTool(srv, "complete_todo", "Mark a todo as completed. Completed todos stay completed.", func(ctx context.Context, id int) (any, error) {
		return svc.Complete(ctx, id)
	})
}

func registerDeleteTodoTool(srv *server.MCPServer, svc *Service) {
	idTool(srv, "delete_todo", "Delete a todo.", func(ctx context.Context, id int) (any, error) {
		if err := svc.Delete(ctx, id); err != nil {
			return nil, err
		}
		return map[string]any{"deleted": id}, nil
	})
}

func registerGetTodoTool(srv *server.MCPServer, svc *Service) {
	idTool(srv, "get_todo", "Fetch a single todo by id.", func(ctx context.Context, id int) (any, error) {
		return svc.Todo(ctx, id)
	})
}

func registerListListsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_lists",
		mcp.WithDescription("List the All Todos and Completed sections with their per-due-date lists and counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := svc.Lists(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"lists": out,
		})
	})
}

func registerShowListTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"show_list",
		mcp.WithDescription("Show the todos of one list, open todos first."),
		mcp.WithString("scope",
			mcp.Description("Section to read from."),
			mcp.Enum("all", "completed"),
		),
		mcp.WithString("date",
			mcp.Description("Due date label such as 1/2024 or No Due Date. Defaults to the section header."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Scope string `json:"scope"`
			Date  string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		out, err := svc.ShowList(ctx, args.Scope, args.Date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(out)
	})
}

func registerSearchTodosTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_todos",
		mcp.WithDescription("Search todo titles and descriptions."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive text to look for."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results. Zero means no limit."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Query string `json:"query"`
			Limit int    `json:"limit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		out, err := svc.Search(ctx, args.Query, args.Limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query": args.Query,
			"todos": out,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
