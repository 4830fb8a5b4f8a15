package types

// ProjectNode is a project of the forest. Solution folders are projects too;
// their children are reached through the SubProject of each item.
type ProjectNode struct {
	// Identification
	ID   string // Host identity (project GUID or project file path), may be empty
	Name string
	Kind NodeKind

	// Location
	Path string // Project file path, empty for solution folders

	Items []*ItemNode
}

// ItemNode is a node of a project's content tree
type ItemNode struct {
	Name     string
	Kind     NodeKind
	Paths    []string // Physical files backing this item; the first is canonical
	Children []*ItemNode

	// Set on items of a solution folder that stand for a nested project.
	// Nil when the entry is not a project or the project failed to load.
	SubProject *ProjectNode
}

// IsSolutionFolder reports whether the project only groups other projects
func (p *ProjectNode) IsSolutionFolder() bool {
	return p != nil && p.Kind == KindSolutionFolder
}

// SubProjects returns the nested projects of a solution folder in item
// order. Items without a sub-project are skipped.
func (p *ProjectNode) SubProjects() []*ProjectNode {
	if p == nil {
		return nil
	}

	var subs []*ProjectNode
	for _, item := range p.Items {
		if item == nil || item.SubProject == nil {
			continue
		}
		subs = append(subs, item.SubProject)
	}
	return subs
}

// CanonicalPath returns the first physical path of the item, or "" if the
// item has none.
func (i *ItemNode) CanonicalPath() string {
	if i == nil || len(i.Paths) == 0 {
		return ""
	}
	return i.Paths[0]
}

// NewFileItem builds a file item backed by a single path
func NewFileItem(name, path string) *ItemNode {
	return &ItemNode{Name: name, Kind: KindFile, Paths: []string{path}}
}

// NewFolderItem builds a physical folder item holding children
func NewFolderItem(name string, children ...*ItemNode) *ItemNode {
	return &ItemNode{Name: name, Kind: KindFolder, Children: children}
}

// NewProjectItem builds the item of a solution folder that stands for sub
func NewProjectItem(sub *ProjectNode) *ItemNode {
	item := &ItemNode{Kind: KindOther, SubProject: sub}
	if sub != nil {
		item.Name = sub.Name
	}
	return item
}
