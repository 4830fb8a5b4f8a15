// Package mcp implements the Model Context Protocol (MCP) server for mediare.
//
// The MCP server exposes three tools to AI coding assistants:
//   - find_companion: Find the companion file of a document across a solution
//   - derive_companion_name: Compute the companion file name only
//   - list_projects: List the projects of a solution in search order
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server is started via the serve command:
//
//	mediare serve
//
// # Forest Sources
//
// find_companion and list_projects need a project forest. It comes either
// from a Visual Studio solution on disk ("solution": "/abs/path/App.sln")
// or from a snapshot exported by the IDE ("snapshot": {...}). Exactly one
// of them must be given.
//
// # Tool: find_companion
//
//	Request:
//	{
//	  "name": "find_companion",
//	  "arguments": {
//	    "document": "OrderCommand.cs",
//	    "solution": "/src/App/App.sln"
//	  }
//	}
//
//	Response:
//	{
//	  "document": "OrderCommand.cs",
//	  "target_filename": "OrderCommandHandler.cs",
//	  "action": "open",
//	  "match_count": 1,
//	  "matches": [
//	    {
//	      "filename": "OrderCommandHandler.cs",
//	      "project": "Domain",
//	      "path": "/src/App/src/Domain/Orders/OrderCommandHandler.cs"
//	    }
//	  ],
//	  "open_path": "/src/App/src/Domain/Orders/OrderCommandHandler.cs"
//	}
//
// When the match count is not exactly one, action is "report" and message
// carries the report the IDE would show. A document that is not a source
// file yields action "skip" and no matches.
//
// # Tool: derive_companion_name
//
//	Request:  {"name": "derive_companion_name", "arguments": {"document": "UserViewModel.cs"}}
//	Response: {"document": "UserViewModel.cs", "target_filename": "UserViewModelMapper.cs", "skipped": false}
//
// # Tool: list_projects
//
//	Request:  {"name": "list_projects", "arguments": {"solution": "/src/App/App.sln", "leaves_only": true}}
//	Response: {"project_count": 2, "projects": [{"name": "Api", "kind": "project", "path": "...", "item_count": 4}, ...]}
//
// # Error Handling
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error
//   - -32001: Solution not found
//   - -32002: Solution could not be parsed
//   - -32003: Snapshot is invalid
//
// # Logging
//
// The server logs to stderr with charmbracelet/log; stdout is reserved for
// the protocol. Set the level via MEDIARE_LOG_LEVEL or log_level in
// mediare.toml.
package mcp
