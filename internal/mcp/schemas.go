package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// forestSourceProperties are shared by tools that walk a project forest
func forestSourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"solution": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a Visual Studio .sln file",
		},
		"snapshot": map[string]interface{}{
			"type":        "object",
			"description": "Project forest exported by the IDE: {active_document, projects: [{name, kind, path, items: [{name, kind, paths, children, sub_project}]}]}",
		},
	}
}

// findCompanionTool returns the tool definition for find_companion
func findCompanionTool() mcp.Tool {
	props := forestSourceProperties()
	props["document"] = map[string]interface{}{
		"type":        "string",
		"description": "Name or path of the open document (e.g. OrderCommand.cs). Optional with a snapshot that names its active document",
	}

	return mcp.Tool{
		Name:        "find_companion",
		Description: "Find the companion file of a document (FooCommand.cs -> FooCommandHandler.cs, FooViewModel.cs -> FooViewModelMapper.cs) across all projects of a solution",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
		},
	}
}

// deriveCompanionNameTool returns the tool definition for derive_companion_name
func deriveCompanionNameTool() mcp.Tool {
	return mcp.Tool{
		Name:        "derive_companion_name",
		Description: "Compute the companion file name of a document without searching for it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document": map[string]interface{}{
					"type":        "string",
					"description": "Name or path of the document",
				},
			},
			Required: []string{"document"},
		},
	}
}

// listProjectsTool returns the tool definition for list_projects
func listProjectsTool() mcp.Tool {
	props := forestSourceProperties()
	props["leaves_only"] = map[string]interface{}{
		"type":        "boolean",
		"description": "If true, omit solution folders and list only real projects",
		"default":     false,
	}

	return mcp.Tool{
		Name:        "list_projects",
		Description: "List the projects of a solution in the order they are searched, solution folders after their contents",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
		},
	}
}
