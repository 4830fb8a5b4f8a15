package types

import (
	"strings"

	"github.com/google/uuid"
)

// NodeKind classifies a node of the project forest. It is decided once, when
// the node is built from host data, and never re-parsed during traversal.
type NodeKind string

const (
	KindProject        NodeKind = "project"
	KindSolutionFolder NodeKind = "solution-folder"
	KindFolder         NodeKind = "folder"
	KindVirtualFolder  NodeKind = "virtual-folder"
	KindFile           NodeKind = "file"
	KindOther          NodeKind = "other"
)

// Host kind identifiers (Visual Studio automation and .sln vocabularies)
var (
	// DTE vsProjectKindSolutionFolder
	GUIDSolutionFolderDTE = uuid.MustParse("66A26720-8FB5-11D2-AA7E-00C04F688DDE")
	// Project type GUID of solution folders inside .sln files
	GUIDSolutionFolderSln = uuid.MustParse("2150E333-8FDC-42A3-9474-1A3956D46DE8")

	GUIDPhysicalFile  = uuid.MustParse("6BB5F8EE-4483-11D3-8BCF-00C04F8EC28C")
	GUIDPhysicalDir   = uuid.MustParse("6BB5F8EF-4483-11D3-8BCF-00C04F8EC28C")
	GUIDVirtualFolder = uuid.MustParse("6BB5F8F0-4483-11D3-8BCF-00C04F8EC28C")
)

// ParseKind interprets a host kind identifier as an item kind. Braced and
// bare GUIDs are accepted, as are the symbolic names of NodeKind. Anything
// else, including GUIDs of extension-defined item types, is KindOther.
func ParseKind(s string) NodeKind {
	s = strings.TrimSpace(s)
	if k, ok := symbolicKind(s); ok {
		return k
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return KindOther
	}

	switch id {
	case GUIDSolutionFolderDTE, GUIDSolutionFolderSln:
		return KindSolutionFolder
	case GUIDPhysicalFile:
		return KindFile
	case GUIDPhysicalDir:
		return KindFolder
	case GUIDVirtualFolder:
		return KindVirtualFolder
	default:
		return KindOther
	}
}

// ParseProjectKind interprets a host kind identifier as a project kind.
// Solution folders are recognized; every other well-formed project type GUID
// is an ordinary project.
func ParseProjectKind(s string) NodeKind {
	k := ParseKind(s)
	if k == KindSolutionFolder || k == KindProject {
		return k
	}

	if _, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
		return KindProject
	}
	return KindOther
}

func symbolicKind(s string) (NodeKind, bool) {
	switch k := NodeKind(strings.ToLower(s)); k {
	case KindProject, KindSolutionFolder, KindFolder, KindVirtualFolder, KindFile, KindOther:
		return k, true
	}
	return "", false
}

// IsContainer reports whether nodes of this kind are folders whose only role
// is to hold other items.
func (k NodeKind) IsContainer() bool {
	return k == KindFolder || k == KindVirtualFolder
}

// Validate checks if the kind is one of the known variants
func (k NodeKind) Validate() error {
	switch k {
	case KindProject, KindSolutionFolder, KindFolder, KindVirtualFolder, KindFile, KindOther:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (k NodeKind) String() string {
	return string(k)
}
