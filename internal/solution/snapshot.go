package solution

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kmadof/mediare/pkg/types"
)

var ErrSnapshotInvalid = errors.New("invalid forest snapshot")

// Snapshot is a JSON dump of a live IDE's state. Kinds are the host's raw
// identifiers (GUIDs or names) and are interpreted when the snapshot is
// converted into a forest.
//
//	{
//	  "active_document": "OrderCommand.cs",
//	  "projects": [
//	    {"name": "Api", "kind": "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}",
//	     "items": [{"name": "OrderHandler.cs", "kind": "{6BB5F8EE-4483-11D3-8BCF-00C04F8EC28C}",
//	                "paths": ["C:\\src\\Api\\OrderHandler.cs"]}]}
//	  ]
//	}
type Snapshot struct {
	ActiveDocument string             `json:"active_document,omitempty"`
	Projects       []*SnapshotProject `json:"projects"`
}

// SnapshotProject is a project as exported by the host
type SnapshotProject struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Kind  string          `json:"kind"`
	Path  string          `json:"path,omitempty"`
	Items []*SnapshotItem `json:"items,omitempty"`
}

// SnapshotItem is a project item as exported by the host. A null entry in an
// items array stands for an item the host could not export.
type SnapshotItem struct {
	Name       string           `json:"name"`
	Kind       string           `json:"kind"`
	Paths      []string         `json:"paths,omitempty"`
	Children   []*SnapshotItem  `json:"children,omitempty"`
	SubProject *SnapshotProject `json:"sub_project,omitempty"`
}

// DecodeSnapshot reads a snapshot from r
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	return &snap, nil
}

// LoadSnapshot reads a snapshot file
func LoadSnapshot(path string) (*Snapshot, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer func() { _ = fh.Close() }()

	return DecodeSnapshot(fh)
}

// Forest converts the snapshot into project nodes. Each kind identifier is
// parsed exactly once here.
func (s *Snapshot) Forest() []*types.ProjectNode {
	roots := make([]*types.ProjectNode, 0, len(s.Projects))
	for _, p := range s.Projects {
		if p == nil {
			continue
		}
		roots = append(roots, p.node())
	}
	return roots
}

func (p *SnapshotProject) node() *types.ProjectNode {
	return &types.ProjectNode{
		ID:    p.ID,
		Name:  p.Name,
		Kind:  types.ParseProjectKind(p.Kind),
		Path:  p.Path,
		Items: convertItems(p.Items),
	}
}

func convertItems(items []*SnapshotItem) []*types.ItemNode {
	if len(items) == 0 {
		return nil
	}

	out := make([]*types.ItemNode, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		node := &types.ItemNode{
			Name:     item.Name,
			Kind:     types.ParseKind(item.Kind),
			Paths:    item.Paths,
			Children: convertItems(item.Children),
		}
		if item.SubProject != nil {
			node.SubProject = item.SubProject.node()
		}
		out = append(out, node)
	}
	return out
}
