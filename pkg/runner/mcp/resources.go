package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/sobok/pkg/schedule"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"sobok://days/{date}",
		"Day Schedules",
		mcp.WithTemplateDescription("Your pill schedules for a day, as YYYY-MM-DD."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day, err := schedule.ParseDay(templateArg(request.Params.Arguments, "date"))
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		dto, err := svc.Day(ctx, schedule.Self(), day)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

// templateArg reads a URI template variable, which arrives as a string or a
// single element list depending on how it was matched.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
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
