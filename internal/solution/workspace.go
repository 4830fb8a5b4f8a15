package solution

import (
	"context"
	"errors"

	"github.com/kmadof/mediare/pkg/types"
)

var ErrNoForestSource = errors.New("either a solution file or a snapshot is required")

// Workspace is a host backed by a solution file or a snapshot. The forest is
// rebuilt on every call to Projects.
type Workspace struct {
	document string
	load     func(ctx context.Context) ([]*types.ProjectNode, error)
}

// Source selects where a workspace's forest comes from. Exactly one of
// SolutionPath and Snapshot must be set.
type Source struct {
	SolutionPath string
	Snapshot     *Snapshot
}

// Open creates a workspace with document as the active document. An empty
// document falls back to the snapshot's active document, if any.
func Open(src Source, document string, opts LoadOptions) (*Workspace, error) {
	switch {
	case src.SolutionPath != "" && src.Snapshot == nil:
		path := src.SolutionPath
		return &Workspace{
			document: types.BaseName(document),
			load: func(ctx context.Context) ([]*types.ProjectNode, error) {
				return LoadSolution(ctx, path, opts)
			},
		}, nil

	case src.Snapshot != nil && src.SolutionPath == "":
		snap := src.Snapshot
		if document == "" {
			document = snap.ActiveDocument
		}
		return &Workspace{
			document: types.BaseName(document),
			load: func(ctx context.Context) ([]*types.ProjectNode, error) {
				return snap.Forest(), nil
			},
		}, nil

	default:
		return nil, ErrNoForestSource
	}
}

// ActiveDocument returns the document's display name (its base name)
func (w *Workspace) ActiveDocument() (string, bool) {
	return w.document, w.document != ""
}

// Projects builds the project forest
func (w *Workspace) Projects(ctx context.Context) ([]*types.ProjectNode, error) {
	return w.load(ctx)
}
