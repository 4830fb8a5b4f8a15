package types

import (
	"fmt"
	"strings"
)

// MatchedFile is a companion candidate found in the project forest
type MatchedFile struct {
	Filename    string // Base name only
	ProjectName string // Display name of the owning project
	FullPath    string // Canonical path, the dedup key
}

// NewMatchedFile derives a match from a physical path and its owning project
func NewMatchedFile(path string, project *ProjectNode) MatchedFile {
	m := MatchedFile{
		Filename: BaseName(path),
		FullPath: path,
	}
	if project != nil {
		m.ProjectName = project.Name
	}
	return m
}

// Validate checks if the match is usable as a navigation target
func (m MatchedFile) Validate() error {
	if m.FullPath == "" {
		return ErrMissingPath
	}
	if m.Filename == "" || m.Filename != BaseName(m.FullPath) {
		return ErrFilenameMismatch
	}
	return nil
}

// BaseName returns the last element of path. Both '/' and '\' separate
// elements since host paths may come from Windows solutions.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Action is the outcome of the disambiguation policy
type Action string

const (
	ActionSkip   Action = "skip"   // Document is not a source file, nothing was resolved
	ActionOpen   Action = "open"   // Exactly one match
	ActionReport Action = "report" // Zero or several matches
)

// Resolution is the result of resolving the companion of one document
type Resolution struct {
	Document       string
	TargetFilename string        // Empty when Action is ActionSkip
	Matches        []MatchedFile // Unique by FullPath, discovery order
	Action         Action
}

// NewResolution applies the disambiguation policy to a deduplicated match set
func NewResolution(document, target string, matches []MatchedFile) *Resolution {
	res := &Resolution{
		Document:       document,
		TargetFilename: target,
		Matches:        matches,
		Action:         ActionReport,
	}
	if len(matches) == 1 {
		res.Action = ActionOpen
	}
	return res
}

// SkippedResolution is the result for a document that is not a source file
func SkippedResolution(document string) *Resolution {
	return &Resolution{Document: document, Action: ActionSkip}
}

// Count returns the number of distinct matches
func (r *Resolution) Count() int {
	return len(r.Matches)
}

// Path returns the file to open, or "" unless the action is ActionOpen
func (r *Resolution) Path() string {
	if r.Action != ActionOpen || len(r.Matches) != 1 {
		return ""
	}
	return r.Matches[0].FullPath
}

// Message renders the report shown to the user when no single file can be
// opened.
func (r *Resolution) Message() string {
	if r.Action == ActionSkip {
		return ""
	}
	return fmt.Sprintf("%s\nNumber of files: %d", r.TargetFilename, r.Count())
}
