// Package types provides shared type definitions for mediare.
//
// This package defines the project forest handed over by a host (an IDE or
// a solution file on disk) and the result of a companion lookup.
//
// # Project Forest
//
// A solution is a forest of ProjectNode values. Each project owns a tree of
// ItemNode values; an item may carry a SubProject, which is how solution
// folders nest other projects:
//
//	root := &types.ProjectNode{
//	    Name: "libs",
//	    Kind: types.KindSolutionFolder,
//	    Items: []*types.ItemNode{
//	        types.NewProjectItem(domain),
//	    },
//	}
//
// Node kinds are parsed once from host identifiers with ParseKind or
// ParseProjectKind. Braced Visual Studio GUIDs and the symbolic names
// ("project", "folder", "file", ...) are both accepted; unknown GUIDs
// become KindOther.
//
// # Resolution
//
// A Resolution records the document, the target file name, every
// MatchedFile found and the Action taken: a single match is opened, any
// other count is reported, and non-source documents are skipped.
//
//	res := types.NewResolution("OrderCommand.cs", "OrderCommandHandler.cs", matches)
//	if res.Action == types.ActionOpen {
//	    open(res.Path())
//	}
//
// # Validation
//
// MatchedFile and NodeKind provide Validate methods:
//
//	if err := match.Validate(); err != nil {
//	    return fmt.Errorf("invalid match: %w", err)
//	}
package types
