package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"studytrack/internal/application/commands"
)

// RegisterWriteTools adds all tools that change completion state.
func RegisterWriteTools(s *server.MCPServer, w *Workspace) {
	s.AddTool(toggleTool(), w.toggleHandler)
	s.AddTool(nextTool(), w.nextHandler)
	s.AddTool(reloadTool(), w.reloadHandler)
	s.AddTool(restoreTool(), w.restoreHandler)
}

// --- toggle ---

func toggleTool() mcp.Tool {
	return mcp.NewTool("toggle",
		mcp.WithDescription("Flip completion of a document and mirror it onto the remote progress counter. Without a path the open document is toggled."),
		mcp.WithString("path",
			mcp.Description("Relative path of the document (e.g. Semana1/Algebra/tema1.pdf). Omit for the open document."),
		),
	)
}

func (w *Workspace) toggleHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")

	w.mu.Lock()
	defer w.mu.Unlock()

	result, err := commands.NewToggleCommand(w.session, path).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", result.Message, result.Outcome.Toast().Text)), nil
}

// --- next ---

func nextTool() mcp.Tool {
	return mcp.NewTool("next",
		mcp.WithDescription("Open the next pending document in the queue."),
	)
}

func (w *Workspace) nextHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.session.Next() {
		return mcp.NewToolResultText("No more pending documents."), nil
	}
	d, _ := w.session.Current()
	return mcp.NewToolResultText(formatCurrent(d, w.session.Viewer().Ref())), nil
}

// --- reload ---

func reloadTool() mcp.Tool {
	return mcp.NewTool("reload",
		mcp.WithDescription("Read the study folder again, merging any history file and config.json found."),
	)
}

func (w *Workspace) reloadHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if w.source == nil {
		return toolError(fmt.Errorf("no folder selected"))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	res, err := w.session.Ingest(ctx, w.source)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(res.Toast().Text), nil
}

// --- restore ---

func restoreTool() mcp.Tool {
	return mcp.NewTool("restore",
		mcp.WithDescription("Merge a completion history JSON file into the local state. Entries in the file win; nothing is removed."),
		mcp.WithString("file",
			mcp.Description("Path of the history file"),
			mcp.Required(),
		),
	)
}

func (w *Workspace) restoreHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := req.GetString("file", "")

	w.mu.Lock()
	defer w.mu.Unlock()

	result, err := commands.NewRestoreHistoryCommand(w.session, file).Execute()
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (%d entries, %d done)", result.Message, result.Entries, result.Done)), nil
}
