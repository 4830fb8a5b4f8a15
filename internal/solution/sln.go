package solution

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kmadof/mediare/pkg/types"
)

const slnHeader = "Microsoft Visual Studio Solution File"

var (
	ErrNotSolutionFile = errors.New("not a Visual Studio solution file")
	ErrInvalidEntry    = errors.New("invalid solution entry")
)

// Project("{type}") = "Name", "relative\path.csproj", "{guid}"
var projectLine = regexp.MustCompile(`^Project\("(\{[^}]*\})"\)\s*=\s*"([^"]*)"\s*,\s*"([^"]*)"\s*,\s*"(\{[^}]*\})"`)

// {child} = {parent}, also used for "file = file" solution items
var assignLine = regexp.MustCompile(`^(.+?)\s*=\s*(.+)$`)

// Entry is a Project block of a .sln file
type Entry struct {
	TypeGUID      string
	Name          string
	RelPath       string // As written in the file, backslashes normalized
	GUID          uuid.UUID
	SolutionItems []string // Relative paths of files attached to a solution folder
}

// File is a parsed .sln file
type File struct {
	Entries []*Entry
	Nested  map[uuid.UUID]uuid.UUID // child -> parent
}

// ParseSolution reads the project and nesting sections of a .sln file.
// Other sections (configurations, properties) are ignored.
func ParseSolution(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	f := &File{Nested: make(map[uuid.UUID]uuid.UUID)}

	var (
		sawHeader bool
		current   *Entry
		section   string
		lineNo    int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !sawHeader {
			if strings.HasPrefix(line, slnHeader) {
				sawHeader = true
				continue
			}
			return nil, ErrNotSolutionFile
		}

		switch {
		case strings.HasPrefix(line, "Project("):
			entry, err := parseProjectLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current = entry
			f.Entries = append(f.Entries, entry)

		case line == "EndProject":
			current = nil

		case strings.HasPrefix(line, "ProjectSection("), strings.HasPrefix(line, "GlobalSection("):
			section = sectionName(line)

		case line == "EndProjectSection", line == "EndGlobalSection":
			section = ""

		case section == "SolutionItems" && current != nil:
			if m := assignLine.FindStringSubmatch(line); m != nil {
				current.SolutionItems = append(current.SolutionItems, normalizeRel(m[1]))
			}

		case section == "NestedProjects":
			m := assignLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			child, errChild := uuid.Parse(m[1])
			parent, errParent := uuid.Parse(m[2])
			if errChild != nil || errParent != nil {
				return nil, fmt.Errorf("line %d: %w: nested project %q", lineNo, ErrInvalidEntry, line)
			}
			f.Nested[child] = parent
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read solution: %w", err)
	}
	if !sawHeader {
		return nil, ErrNotSolutionFile
	}

	return f, nil
}

func parseProjectLine(line string) (*Entry, error) {
	m := projectLine.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEntry, line)
	}

	id, err := uuid.Parse(m[4])
	if err != nil {
		return nil, fmt.Errorf("%w: project guid %q", ErrInvalidEntry, m[4])
	}

	return &Entry{
		TypeGUID: m[1],
		Name:     m[2],
		RelPath:  normalizeRel(m[3]),
		GUID:     id,
	}, nil
}

// sectionName extracts X from "ProjectSection(X) = preProject"
func sectionName(line string) string {
	open := strings.IndexByte(line, '(')
	end := strings.IndexByte(line, ')')
	if open < 0 || end < open {
		return ""
	}
	return line[open+1 : end]
}

func normalizeRel(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(strings.TrimSpace(p), `\`, "/"))
}

// LoadSolution parses the .sln file at path and builds its project forest.
// Project items are read from each project's directory.
func LoadSolution(ctx context.Context, path string, opts LoadOptions) ([]*types.ProjectNode, error) {
	opts = opts.withDefaults()

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open solution: %w", err)
	}
	defer func() { _ = fh.Close() }()

	sln, err := ParseSolution(fh)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve solution directory: %w", err)
	}

	return sln.Build(ctx, baseDir, opts)
}

// Build turns the parsed entries into a project forest rooted at baseDir.
// Projects are loaded concurrently; the forest keeps the order of the file.
func (f *File) Build(ctx context.Context, baseDir string, opts LoadOptions) ([]*types.ProjectNode, error) {
	opts = opts.withDefaults()

	nodes := make([]*types.ProjectNode, len(f.Entries))
	byGUID := make(map[uuid.UUID]*types.ProjectNode, len(f.Entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, entry := range f.Entries {
		node := &types.ProjectNode{
			ID:   entry.GUID.String(),
			Name: entry.Name,
			Kind: types.ParseProjectKind(entry.TypeGUID),
		}
		nodes[i] = node
		byGUID[entry.GUID] = node

		if node.IsSolutionFolder() {
			for _, rel := range entry.SolutionItems {
				abs := filepath.Join(baseDir, rel)
				node.Items = append(node.Items, types.NewFileItem(filepath.Base(abs), abs))
			}
			continue
		}

		node.Path = filepath.Join(baseDir, entry.RelPath)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items, err := LoadItems(node.Path, opts)
			if err != nil {
				// A missing or unreadable project leaves an empty project
				opts.Logger.Warn("failed to read project items", "project", node.Name, "path", node.Path, "err", err)
				return nil
			}
			node.Items = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var roots []*types.ProjectNode
	for i, entry := range f.Entries {
		parentID, nested := f.Nested[entry.GUID]
		parent := byGUID[parentID]
		if !nested || parent == nil || !parent.IsSolutionFolder() {
			roots = append(roots, nodes[i])
			continue
		}
		parent.Items = append(parent.Items, types.NewProjectItem(nodes[i]))
	}

	opts.Logger.Debug("loaded solution", "projects", len(nodes), "roots", len(roots))
	return roots, nil
}
