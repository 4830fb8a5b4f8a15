package solution

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kmadof/mediare/pkg/types"
)

// DefaultExcludeDirs are build output and tooling directories that are never
// part of a project's content
var DefaultExcludeDirs = []string{"bin", "obj", "node_modules", "packages", "TestResults"}

// LoadOptions configures how project trees are read from disk
type LoadOptions struct {
	Workers     int         // Projects read concurrently (default: runtime.NumCPU())
	ExcludeDirs []string    // Directory names to skip (default: DefaultExcludeDirs)
	Logger      *log.Logger // Default: discard
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.ExcludeDirs == nil {
		o.ExcludeDirs = DefaultExcludeDirs
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// LoadItems builds the item tree of the project whose file is projectPath.
// Like an SDK-style project every file below the project directory is an
// item, the project file included. Hidden and excluded directories are
// skipped and symlinks are not followed.
func LoadItems(projectPath string, opts LoadOptions) ([]*types.ItemNode, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat project: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("project path %s is a directory", projectPath)
	}

	exclude := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		exclude[strings.ToLower(name)] = struct{}{}
	}

	return readDir(filepath.Dir(projectPath), exclude, opts.Logger)
}

func readDir(dir string, exclude map[string]struct{}, logger *log.Logger) ([]*types.ItemNode, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	items := make([]*types.ItemNode, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if skipDir(name, exclude) {
				continue
			}
			children, err := readDir(path, exclude, logger)
			if err != nil {
				// Unreadable folders are left out, the rest of the tree is kept
				logger.Debug("skipping folder", "path", path, "err", err)
				continue
			}
			folder := types.NewFolderItem(name, children...)
			folder.Paths = []string{path}
			items = append(items, folder)
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}
		items = append(items, types.NewFileItem(name, path))
	}

	return items, nil
}

func skipDir(name string, exclude map[string]struct{}) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := exclude[strings.ToLower(name)]
	return ok
}
