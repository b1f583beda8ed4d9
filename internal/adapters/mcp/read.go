package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"studytrack/internal/application"
	"studytrack/internal/application/commands"
	"studytrack/internal/domain"
	"studytrack/internal/ports"
)

// Workspace serializes tool calls onto one session. MCP clients may issue
// calls concurrently; the session is not safe for that on its own.
type Workspace struct {
	mu       sync.Mutex
	session  *application.Session
	source   ports.FolderSource
	subjects commands.SubjectLister
	now      func() time.Time
}

// NewWorkspace wraps an ingested session. subjects may be nil when no
// progress API is configured.
func NewWorkspace(session *application.Session, source ports.FolderSource, subjects commands.SubjectLister) *Workspace {
	return &Workspace{
		session:  session,
		source:   source,
		subjects: subjects,
		now:      time.Now,
	}
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, w *Workspace) {
	s.AddTool(queueTool(), w.queueHandler)
	s.AddTool(treeTool(), w.treeHandler)
	s.AddTool(currentTool(), w.currentHandler)
	s.AddTool(subjectsTool(), w.subjectsHandler)
}

// --- queue ---

func queueTool() mcp.Tool {
	return mcp.NewTool("queue",
		mcp.WithDescription("List the pending documents in study order, with subject, table type and days until the subject's class."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of documents to list. Omit or 0 for all."),
		),
	)
}

func (w *Workspace) queueHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 0)

	w.mu.Lock()
	defer w.mu.Unlock()

	q := w.session.Queue()
	if q.Len() == 0 {
		return mcp.NewToolResultText("No pending documents."), nil
	}
	if limit <= 0 || limit > q.Len() {
		limit = q.Len()
	}

	var sb strings.Builder
	now := w.now()
	for i, d := range q[:limit] {
		fmt.Fprintf(&sb, "%d. %s", i+1, d.RelativePath)
		if d.Subject != "" {
			fmt.Fprintf(&sb, "  %s/%s", d.Subject, d.TableType)
		}
		if days := w.session.DaysUntil(d, now); days > 0 {
			fmt.Fprintf(&sb, "  (%d d)", days)
		}
		sb.WriteByte('\n')
	}
	if limit < q.Len() {
		fmt.Fprintf(&sb, "... %d more\n", q.Len()-limit)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the study folder as a tree, marking completed documents with [x]."),
	)
}

func (w *Workspace) treeHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var sb strings.Builder
	renderTree(&sb, w.session.Tree(), w.session.Done)
	if sb.Len() == 0 {
		return mcp.NewToolResultText("Empty folder."), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func renderTree(sb *strings.Builder, tree *domain.Snapshot, done func(string) bool) {
	tree.Walk(func(e *domain.DirectoryEntry, depth int) {
		prefix := strings.Repeat("  ", depth)
		if !e.IsRoot() {
			fmt.Fprintf(sb, "%s%s/\n", prefix[2:], e.Name)
		}
		for _, d := range e.Documents {
			mark := "[ ]"
			if done(d.RelativePath) {
				mark = "[x]"
			}
			fmt.Fprintf(sb, "%s%s %s\n", prefix, mark, d.Name)
		}
	})
}

// --- current ---

func currentTool() mcp.Tool {
	return mcp.NewTool("current",
		mcp.WithDescription("Show the document currently open and its display reference."),
	)
}

func (w *Workspace) currentHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, ok := w.session.Current()
	if !ok {
		return mcp.NewToolResultText("No document open."), nil
	}
	return mcp.NewToolResultText(formatCurrent(d, w.session.Viewer().Ref())), nil
}

func formatCurrent(d domain.DocumentRecord, ref application.DisplayRef) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "path: %s\n", d.RelativePath)
	fmt.Fprintf(&sb, "folder: %s\n", domain.Breadcrumb(d.Folder))
	if d.Subject != "" {
		fmt.Fprintf(&sb, "subject: %s (%s)\n", d.Subject, d.TableType)
	}
	fmt.Fprintf(&sb, "ref: %s %s\n", ref.Kind, ref.URL)
	return sb.String()
}

// --- subjects ---

func subjectsTool() mcp.Tool {
	return mcp.NewTool("subjects",
		mcp.WithDescription("List the remote progress counters per subject and table type."),
	)
}

func (w *Workspace) subjectsHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if w.subjects == nil {
		return toolError(fmt.Errorf("progress API: %w", application.ErrNotConfigured))
	}
	rows, err := commands.NewListSubjectsCommand(w.subjects).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%s  %s  %d/%d\n", r.SubjectName, r.TableType, r.CurrentProgress, r.TotalPDFs)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
