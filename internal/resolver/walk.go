package resolver

import (
	"iter"
	"strings"

	"github.com/kmadof/mediare/pkg/types"
)

// DefaultSkipSuffixes are build-system files that live next to sources but
// are never navigation targets.
var DefaultSkipSuffixes = []string{".vcxproj.filters", ".vcxproj"}

// Walk yields every item of the tree rooted at items. Descendants are
// yielded before the item that contains them. Nil items are skipped.
func Walk(items []*types.ItemNode) iter.Seq[*types.ItemNode] {
	return func(yield func(*types.ItemNode) bool) {
		walk(items, yield)
	}
}

func walk(items []*types.ItemNode, yield func(*types.ItemNode) bool) bool {
	for _, item := range items {
		if item == nil {
			continue
		}
		if !walk(item.Children, yield) {
			return false
		}
		if !yield(item) {
			return false
		}
	}
	return true
}

// Candidates yields, for every item that may be a companion file, the path
// it is matched by: its canonical path, or the first usable path when the
// canonical one is empty or ends with one of skipSuffixes. Container items
// are skipped, as are items with no usable path. Items of unknown kind are
// treated as files.
func Candidates(items []*types.ItemNode, skipSuffixes []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for item := range Walk(items) {
			if item.Kind.IsContainer() {
				continue
			}
			path, ok := candidatePath(item, skipSuffixes)
			if !ok {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

func candidatePath(item *types.ItemNode, skipSuffixes []string) (string, bool) {
	for _, path := range item.Paths {
		if !skipPath(path, skipSuffixes) {
			return path, true
		}
	}
	return "", false
}

func skipPath(path string, skipSuffixes []string) bool {
	if path == "" {
		return true
	}
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// matchSet collects matches unique by full path, keeping the first one seen
type matchSet struct {
	byPath  map[string]struct{}
	matches []types.MatchedFile
}

func newMatchSet() *matchSet {
	return &matchSet{byPath: make(map[string]struct{})}
}

func (s *matchSet) add(m types.MatchedFile) bool {
	if _, dup := s.byPath[m.FullPath]; dup {
		return false
	}
	s.byPath[m.FullPath] = struct{}{}
	s.matches = append(s.matches, m)
	return true
}
