package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/timeutil"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerShowDayTool(srv, svc)
	registerCheckTool(srv, svc)
	registerUncheckTool(srv, svc)
	registerListStickersTool(srv, svc)
	registerSendStickerTool(srv, svc)
}

func dateOption() mcp.ToolOption {
	return mcp.WithString("date",
		mcp.Description(`Day to look at: 2024-03-01, 3/1, today, yesterday or tomorrow. Defaults to today.`),
	)
}

func memberOption(required bool) mcp.ToolOption {
	opts := []mcp.PropertyOption{mcp.Description("Shared member whose schedule to use. Empty means your own.")}
	if required {
		opts = append(opts, mcp.Required())
	}
	return mcp.WithString("member", opts...)
}

func scheduleIDOption() mcp.ToolOption {
	return mcp.WithNumber("schedule_id",
		mcp.Required(),
		mcp.Description("Schedule slot identifier."),
	)
}

func dayArg(request mcp.CallToolRequest) (schedule.Day, error) {
	return timeutil.ParseOn(request.GetString("date", ""), time.Now())
}

func scopeArg(request mcp.CallToolRequest) schedule.Scope {
	if member := request.GetString("member", ""); member != "" {
		return schedule.Member(member)
	}
	return schedule.Self()
}

func registerShowDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"show_day",
		mcp.WithDescription("List the pill schedules of a day with the month's done and in progress days."),
		dateOption(),
		memberOption(false),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := dayArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Day(ctx, scopeArg(request), day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCheckTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"check_schedule",
		mcp.WithDescription("Mark one of your schedule slots as taken."),
		scheduleIDOption(),
		dateOption(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("schedule_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := dayArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Check(ctx, day, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUncheckTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"uncheck_schedule",
		mcp.WithDescription("Take back one of your schedule slots marked as taken."),
		scheduleIDOption(),
		dateOption(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("schedule_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := dayArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Uncheck(ctx, day, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListStickersTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_stickers",
		mcp.WithDescription("List every sticker left on a schedule slot."),
		scheduleIDOption(),
		memberOption(false),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("schedule_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		list, err := svc.Stickers(ctx, scopeArg(request), id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"scheduleId": id,
			"count":      len(list),
			"stickers":   list,
		})
	})
}

func registerSendStickerTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"send_sticker",
		mcp.WithDescription("Leave a sticker on a shared member's schedule slot, or swap the one you left."),
		scheduleIDOption(),
		memberOption(true),
		mcp.WithNumber("sticker_id",
			mcp.Required(),
			mcp.Description("Sticker to leave."),
		),
		dateOption(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("schedule_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sticker, err := request.RequireInt("sticker_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := dayArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.React(ctx, request.GetString("member", ""), day, id, sticker)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
