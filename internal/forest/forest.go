// Package forest flattens a solution's project forest.
//
// Solution folders are containers that wrap further projects (and further
// solution folders). Enumerate resolves that indirection depth-first and
// returns a flat, ordered slice in which every sub-project precedes the
// solution folder that contains it:
//
//	Solution
//	├── Api            (project)
//	└── src            (solution folder)
//	    ├── Domain     (project)
//	    └── Infra      (project)
//
//	Enumerate -> [Api, Domain, Infra, src]
package forest

import (
	"github.com/kmadof/mediare/pkg/types"
)

// Enumerate returns the projects reachable from roots. Nil entries are
// skipped. A node reached twice (shared or cyclic nesting) is only emitted
// the first time it is seen.
func Enumerate(roots []*types.ProjectNode) []*types.ProjectNode {
	e := &enumerator{visited: make(map[*types.ProjectNode]struct{})}
	for _, p := range roots {
		e.visit(p)
	}
	return e.out
}

// Leaves filters projects down to those that are not solution folders
func Leaves(projects []*types.ProjectNode) []*types.ProjectNode {
	leaves := make([]*types.ProjectNode, 0, len(projects))
	for _, p := range projects {
		if p.IsSolutionFolder() {
			continue
		}
		leaves = append(leaves, p)
	}
	return leaves
}

type enumerator struct {
	visited map[*types.ProjectNode]struct{}
	out     []*types.ProjectNode
}

func (e *enumerator) visit(p *types.ProjectNode) {
	if p == nil {
		return
	}
	if _, seen := e.visited[p]; seen {
		return
	}
	e.visited[p] = struct{}{}

	if p.IsSolutionFolder() {
		for _, sub := range p.SubProjects() {
			e.visit(sub)
		}
	}
	e.out = append(e.out, p)
}
