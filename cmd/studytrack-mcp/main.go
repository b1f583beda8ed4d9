package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "studytrack/internal/adapters/mcp"
	"studytrack/internal/application/commands"
	"studytrack/internal/bootstrap"
	"studytrack/internal/config"
	"studytrack/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("studytrack-mcp: %v", err)
	}

	folderFlag := flag.String("folder", "", "study folder (default: saved folder, then "+cfg.Folder+")")
	offline := flag.Bool("offline", false, "keep progress local, never call the progress API")
	flag.Parse()

	// stdout carries the protocol
	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogPath,
	}); err != nil {
		log.Fatalf("studytrack-mcp: %v", err)
	}
	defer logging.Sync()

	rt, err := bootstrap.Open(cfg, bootstrap.Options{Folder: *folderFlag, Offline: *offline})
	if err != nil {
		log.Fatalf("studytrack-mcp: %v", err)
	}
	defer rt.Close()

	ctx := context.Background()
	if _, err := rt.Session.Ingest(ctx, rt.Folder); err != nil {
		logging.Warn("initial folder read failed", zap.Error(err))
	}

	var subjects commands.SubjectLister
	if rt.Client != nil {
		subjects = rt.Client
		if err := rt.Session.Reconciler().Refresh(ctx); err != nil {
			logging.Warn("cannot load canonical subjects", zap.Error(err))
		}
	}
	workspace := mcpadapter.NewWorkspace(rt.Session, rt.Folder, subjects)

	mcpServer := server.NewMCPServer(
		"studytrack-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, workspace)
	mcpadapter.RegisterWriteTools(mcpServer, workspace)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("studytrack-mcp: %v", err)
	}
}
