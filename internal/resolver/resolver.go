package resolver

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/kmadof/mediare/internal/forest"
	"github.com/kmadof/mediare/internal/naming"
	"github.com/kmadof/mediare/pkg/types"
)

// Host supplies the active document and the project forest of a workspace
type Host interface {
	// ActiveDocument returns the display name of the open document, false if
	// no document is open.
	ActiveDocument() (string, bool)
	Projects(ctx context.Context) ([]*types.ProjectNode, error)
}

// Sink acts on a resolution: it opens the single match or shows a report
type Sink interface {
	Open(ctx context.Context, path string) error
	Report(ctx context.Context, res *types.Resolution) error
}

// Options configures a Resolver
type Options struct {
	Convention   naming.Convention // Default: naming.Default()
	SkipSuffixes []string          // Nil means DefaultSkipSuffixes; empty disables skipping
	Workers      int               // Projects walked concurrently (default: 1)
	Logger       *log.Logger       // Default: discard
}

// Resolver finds the companion files of documents in a project forest. It
// holds no state between calls and is safe for concurrent use.
type Resolver struct {
	convention   naming.Convention
	skipSuffixes []string
	workers      int
	logger       *log.Logger
}

// New creates a Resolver, applying defaults for unset options
func New(opts Options) *Resolver {
	r := &Resolver{
		convention:   opts.Convention,
		skipSuffixes: opts.SkipSuffixes,
		workers:      opts.Workers,
		logger:       opts.Logger,
	}

	if r.convention.SourceExtension == "" && len(r.convention.Rules) == 0 {
		r.convention = naming.Default()
	}
	if r.skipSuffixes == nil {
		r.skipSuffixes = DefaultSkipSuffixes
	}
	if r.workers <= 0 {
		r.workers = 1
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}

	return r
}

// Target returns the companion file name of document, false if document is
// not a source file.
func (r *Resolver) Target(document string) (string, bool) {
	return r.convention.TargetFilename(document)
}

// Resolve finds the companion of document among the projects reachable from
// roots. A document that is not a source file yields an ActionSkip
// resolution. The only error is cancellation of ctx.
func (r *Resolver) Resolve(ctx context.Context, document string, roots []*types.ProjectNode) (*types.Resolution, error) {
	target, ok := r.convention.TargetFilename(document)
	if !ok {
		r.logger.Debug("not a source document", "document", document)
		return types.SkippedResolution(document), nil
	}

	projects := forest.Enumerate(roots)

	matches, err := r.collect(ctx, target, projects)
	if err != nil {
		return nil, err
	}

	res := types.NewResolution(document, target, matches)
	r.logger.Debug("resolved companion",
		"document", document,
		"target", target,
		"projects", len(projects),
		"matches", res.Count(),
		"action", res.Action)

	return res, nil
}

// Run resolves the host's active document and hands the result to sink
func (r *Resolver) Run(ctx context.Context, host Host, sink Sink) (*types.Resolution, error) {
	document, ok := host.ActiveDocument()
	if !ok || document == "" {
		r.logger.Debug("no active document")
		return types.SkippedResolution(""), nil
	}

	// Loading the forest may walk the disk; skip it for non-source documents
	if _, ok := r.Target(document); !ok {
		return types.SkippedResolution(document), nil
	}

	roots, err := host.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	res, err := r.Resolve(ctx, document, roots)
	if err != nil {
		return nil, err
	}

	if err := Dispatch(ctx, res, sink); err != nil {
		return res, err
	}
	return res, nil
}

// Dispatch applies the disambiguation policy: a single match is opened,
// anything else is reported. Skipped resolutions reach neither.
func Dispatch(ctx context.Context, res *types.Resolution, sink Sink) error {
	switch res.Action {
	case types.ActionSkip:
		return nil
	case types.ActionOpen:
		if err := sink.Open(ctx, res.Path()); err != nil {
			return fmt.Errorf("failed to open %s: %w", res.Path(), err)
		}
		return nil
	default:
		if err := sink.Report(ctx, res); err != nil {
			return fmt.Errorf("failed to report %s: %w", res.TargetFilename, err)
		}
		return nil
	}
}

// collect gathers the matches of every project. With more than one worker
// projects are walked concurrently; results are merged in enumeration order
// so the outcome does not depend on scheduling.
func (r *Resolver) collect(ctx context.Context, target string, projects []*types.ProjectNode) ([]types.MatchedFile, error) {
	perProject := make([][]types.MatchedFile, len(projects))

	if r.workers <= 1 || len(projects) <= 1 {
		for i, p := range projects {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			perProject[i] = r.projectMatches(target, p)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.workers)

		for i, p := range projects {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				perProject[i] = r.projectMatches(target, p)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	set := newMatchSet()
	for _, matches := range perProject {
		for _, m := range matches {
			if !set.add(m) {
				r.logger.Debug("duplicate path", "path", m.FullPath, "project", m.ProjectName)
			}
		}
	}
	return set.matches, nil
}

func (r *Resolver) projectMatches(target string, project *types.ProjectNode) []types.MatchedFile {
	var matches []types.MatchedFile
	for path := range Candidates(project.Items, r.skipSuffixes) {
		if types.BaseName(path) == target {
			matches = append(matches, types.NewMatchedFile(path, project))
		}
	}
	return matches
}
