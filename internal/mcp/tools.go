package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kmadof/mediare/internal/forest"
	"github.com/kmadof/mediare/internal/solution"
	"github.com/kmadof/mediare/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeSolutionNotFound = -32001 // Solution path does not point to a readable .sln file
	ErrorCodeInvalidSolution  = -32002 // Solution file could not be parsed
	ErrorCodeInvalidSnapshot  = -32003 // Snapshot is not a valid project forest
)

// handleFindCompanion handles the find_companion tool invocation
func (s *Server) handleFindCompanion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	src, err := parseSource(args)
	if err != nil {
		return nil, err
	}

	document := getStringDefault(args, "document", "")
	if document == "" && (src.Snapshot == nil || src.Snapshot.ActiveDocument == "") {
		return nil, newMCPError(ErrorCodeInvalidParams, "document parameter is required", map[string]interface{}{
			"param":  "document",
			"reason": "missing or empty",
		})
	}

	ws, err := solution.Open(src, document, s.cfg.LoadOptions(s.logger))
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	}

	sink := &responseSink{}
	res, err := s.resolver.Run(ctx, ws, sink)
	if err != nil {
		return nil, sourceError(err)
	}

	response := map[string]interface{}{
		"document":        res.Document,
		"target_filename": res.TargetFilename,
		"action":          string(res.Action),
		"match_count":     res.Count(),
		"matches":         matchesJSON(res.Matches),
	}
	if sink.openPath != "" {
		response["open_path"] = sink.openPath
	}
	if sink.message != "" {
		response["message"] = sink.message
	}
	if res.Action == types.ActionSkip {
		response["message"] = fmt.Sprintf("%s is not a %s source file", res.Document, s.cfg.SourceExtension)
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleDeriveCompanionName handles the derive_companion_name tool invocation
func (s *Server) handleDeriveCompanionName(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	document, ok := args["document"].(string)
	if !ok || document == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "document parameter is required", map[string]interface{}{
			"param":  "document",
			"reason": "missing or empty",
		})
	}

	name := types.BaseName(document)
	target, ok := s.resolver.Target(name)

	response := map[string]interface{}{
		"document":        name,
		"target_filename": target,
		"skipped":         !ok,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListProjects handles the list_projects tool invocation
func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	src, err := parseSource(args)
	if err != nil {
		return nil, err
	}

	ws, err := solution.Open(src, "", s.cfg.LoadOptions(s.logger))
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	}

	roots, err := ws.Projects(ctx)
	if err != nil {
		return nil, sourceError(err)
	}

	projects := forest.Enumerate(roots)
	if getBoolDefault(args, "leaves_only", false) {
		projects = forest.Leaves(projects)
	}

	list := make([]map[string]interface{}, 0, len(projects))
	for _, p := range projects {
		entry := map[string]interface{}{
			"name":       p.Name,
			"kind":       p.Kind.String(),
			"item_count": countItems(p.Items),
		}
		if p.Path != "" {
			entry["path"] = p.Path
		}
		list = append(list, entry)
	}

	response := map[string]interface{}{
		"project_count": len(list),
		"projects":      list,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// responseSink records what the IDE would be asked to do
type responseSink struct {
	openPath string
	message  string
}

func (r *responseSink) Open(ctx context.Context, path string) error {
	r.openPath = path
	return nil
}

func (r *responseSink) Report(ctx context.Context, res *types.Resolution) error {
	r.message = res.Message()
	return nil
}

// parseSource extracts the forest source: a solution path or an inline
// snapshot, exactly one of them
func parseSource(args map[string]interface{}) (solution.Source, error) {
	slnPath := getStringDefault(args, "solution", "")
	rawSnapshot, hasSnapshot := args["snapshot"]
	if hasSnapshot && rawSnapshot == nil {
		hasSnapshot = false
	}

	switch {
	case slnPath != "" && hasSnapshot:
		return solution.Source{}, newMCPError(ErrorCodeInvalidParams, "solution and snapshot are mutually exclusive", map[string]interface{}{
			"params": []string{"solution", "snapshot"},
		})

	case slnPath != "":
		if err := validateSolutionPath(slnPath); err != nil {
			return solution.Source{}, newMCPError(ErrorCodeSolutionNotFound, "invalid solution path", map[string]interface{}{
				"param":  "solution",
				"reason": err.Error(),
			})
		}
		return solution.Source{SolutionPath: slnPath}, nil

	case hasSnapshot:
		snap, err := decodeSnapshotArg(rawSnapshot)
		if err != nil {
			return solution.Source{}, newMCPError(ErrorCodeInvalidSnapshot, "invalid snapshot", map[string]interface{}{
				"param":  "snapshot",
				"reason": err.Error(),
			})
		}
		return solution.Source{Snapshot: snap}, nil

	default:
		return solution.Source{}, newMCPError(ErrorCodeInvalidParams, "solution or snapshot parameter is required", map[string]interface{}{
			"params": []string{"solution", "snapshot"},
			"reason": "missing",
		})
	}
}

// decodeSnapshotArg re-encodes the decoded JSON argument and reads it as a
// snapshot so kinds are parsed the same way as snapshot files
func decodeSnapshotArg(raw interface{}) (*solution.Snapshot, error) {
	if s, ok := raw.(string); ok {
		return solution.DecodeSnapshot(strings.NewReader(s))
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return solution.DecodeSnapshot(bytes.NewReader(data))
}

// sourceError maps forest loading failures to MCP errors
func sourceError(err error) error {
	switch {
	case errors.Is(err, solution.ErrNotSolutionFile), errors.Is(err, solution.ErrInvalidEntry):
		return newMCPError(ErrorCodeInvalidSolution, "failed to parse solution", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, os.ErrNotExist):
		return newMCPError(ErrorCodeSolutionNotFound, "solution not found", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		return newMCPError(ErrorCodeInternalError, "failed to resolve companion", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func matchesJSON(matches []types.MatchedFile) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(matches))
	for _, m := range matches {
		out = append(out, map[string]interface{}{
			"filename": m.Filename,
			"project":  m.ProjectName,
			"path":     m.FullPath,
		})
	}
	return out
}

func countItems(items []*types.ItemNode) int {
	n := 0
	for _, item := range items {
		if item == nil {
			continue
		}
		n += 1 + countItems(item.Children)
	}
	return n
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validateSolutionPath checks that path is an absolute path to a readable
// .sln file
func validateSolutionPath(path string) error {
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}
	if info.IsDir() {
		return ErrIsDirectory
	}
	if !strings.EqualFold(filepath.Ext(path), ".sln") {
		return ErrNotSolution
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrIsDirectory     = errors.New("path is a directory")
	ErrNotSolution     = errors.New("path is not a .sln file")
)
