package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmadof/mediare/internal/naming"
	"github.com/kmadof/mediare/pkg/types"
)

func project(name string, items ...*types.ItemNode) *types.ProjectNode {
	return &types.ProjectNode{Name: name, Kind: types.KindProject, Items: items}
}

func solutionFolder(name string, subs ...*types.ProjectNode) *types.ProjectNode {
	folder := &types.ProjectNode{Name: name, Kind: types.KindSolutionFolder}
	for _, sub := range subs {
		folder.Items = append(folder.Items, types.NewProjectItem(sub))
	}
	return folder
}

func file(path string) *types.ItemNode {
	return types.NewFileItem(types.BaseName(path), path)
}

func folder(name string, children ...*types.ItemNode) *types.ItemNode {
	return types.NewFolderItem(name, children...)
}

func paths(matches []types.MatchedFile) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.FullPath)
	}
	return out
}

func replacing() Options {
	conv := naming.Default()
	conv.ReplaceEnding = true
	return Options{Convention: conv}
}

func TestResolve_SingleMatchOpens(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Orders",
			file("/src/Orders/OrderCommand.cs"),
			folder("Handlers", file("/src/Orders/Handlers/OrderHandler.cs")),
		),
	}

	res, err := New(replacing()).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, "OrderHandler.cs", res.TargetFilename)
	assert.Equal(t, types.ActionOpen, res.Action)
	assert.Equal(t, 1, res.Count())
	assert.Equal(t, "/src/Orders/Handlers/OrderHandler.cs", res.Path())
	assert.Equal(t, "Orders", res.Matches[0].ProjectName)
	assert.Equal(t, "OrderHandler.cs", res.Matches[0].Filename)
}

func TestResolve_AppendsSuffixByDefault(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Orders",
			file("/src/Orders/OrderHandler.cs"),
			file("/src/Orders/OrderCommandHandler.cs"),
		),
	}

	res, err := New(Options{}).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, "OrderCommandHandler.cs", res.TargetFilename)
	assert.Equal(t, types.ActionOpen, res.Action)
	assert.Equal(t, "/src/Orders/OrderCommandHandler.cs", res.Path())
}

func TestResolve_TwoProjectsReport(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Web", folder("Mappers", file("/src/Web/Mappers/CustomerMapper.cs"))),
		project("Admin", file("/src/Admin/CustomerMapper.cs")),
	}

	res, err := New(replacing()).Resolve(context.Background(), "CustomerViewModel.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, "CustomerMapper.cs", res.TargetFilename)
	assert.Equal(t, types.ActionReport, res.Action)
	assert.Equal(t, 2, res.Count())
	assert.Empty(t, res.Path())
	assert.Equal(t, "CustomerMapper.cs\nNumber of files: 2", res.Message())
	assert.ElementsMatch(t, []string{"/src/Web/Mappers/CustomerMapper.cs", "/src/Admin/CustomerMapper.cs"}, paths(res.Matches))
}

func TestResolve_NoRuleKeepsName(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Core", file("/src/Core/Utility.cs"), file("/src/Core/Other.cs")),
		project("Tools", folder("Helpers", file("/src/Tools/Helpers/Utility.cs"))),
		project("Empty"),
	}

	res, err := New(Options{}).Resolve(context.Background(), "Utility.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, "Utility.cs", res.TargetFilename)
	assert.Equal(t, 2, res.Count())
	assert.Equal(t, types.ActionReport, res.Action)
}

func TestResolve_NoMatchReportsZero(t *testing.T) {
	roots := []*types.ProjectNode{project("Core", file("/src/Core/Other.cs"))}

	res, err := New(Options{}).Resolve(context.Background(), "OrderQuery.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, "OrderQueryHandler.cs", res.TargetFilename)
	assert.Equal(t, types.ActionReport, res.Action)
	assert.Zero(t, res.Count())
	assert.Equal(t, "OrderQueryHandler.cs\nNumber of files: 0", res.Message())
}

func TestResolve_NonSourceDocumentSkipped(t *testing.T) {
	roots := []*types.ProjectNode{project("Web", file("/src/Web/index.html"), file("/src/Web/indexHandler.html"))}

	for _, doc := range []string{"index.html", "OrderCommand.vb", "README", "", "OrderCommand.cs.bak"} {
		res, err := New(Options{}).Resolve(context.Background(), doc, roots)
		require.NoError(t, err)

		assert.Equal(t, types.ActionSkip, res.Action, doc)
		assert.Empty(t, res.TargetFilename, doc)
		assert.Empty(t, res.Matches, doc)
		assert.Empty(t, res.Message(), doc)
	}
}

func TestResolve_DedupByPath(t *testing.T) {
	shared := "/src/Shared/OrderCommandHandler.cs"
	roots := []*types.ProjectNode{
		project("A", file(shared), folder("Linked", file(shared))),
		project("B", file(shared)),
	}

	res, err := New(Options{}).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)

	require.Equal(t, 1, res.Count())
	assert.Equal(t, types.ActionOpen, res.Action)
	assert.Equal(t, "A", res.Matches[0].ProjectName, "first occurrence wins")
}

func TestResolve_SkipSuffixes(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Native",
			file("/src/Native/Native.vcxproj"),
			file("/src/Native/Native.vcxproj.filters"),
		),
	}
	conv := naming.Convention{SourceExtension: ".vcxproj"}

	res, err := New(Options{Convention: conv}).Resolve(context.Background(), "Native.vcxproj", roots)
	require.NoError(t, err)
	assert.Zero(t, res.Count())

	res, err = New(Options{Convention: conv, SkipSuffixes: []string{}}).Resolve(context.Background(), "Native.vcxproj", roots)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count())
}

func TestResolve_NoMatchEndsWithSkipSuffix(t *testing.T) {
	conv := naming.Convention{SourceExtension: ".filters"}
	roots := []*types.ProjectNode{
		project("Native",
			file("/src/Native/App.vcxproj.filters"),
			file("/src/Other/App.filters"),
		),
	}

	res, err := New(Options{Convention: conv}).Resolve(context.Background(), "App.filters", roots)
	require.NoError(t, err)

	for _, m := range res.Matches {
		for _, suffix := range DefaultSkipSuffixes {
			assert.False(t, strings.HasSuffix(m.FullPath, suffix), m.FullPath)
		}
	}
	assert.Equal(t, []string{"/src/Other/App.filters"}, paths(res.Matches))
}

func TestResolve_FoldersAreNotCandidates(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Web",
			&types.ItemNode{
				Name:     "OrderCommandHandler.cs",
				Kind:     types.KindFolder,
				Paths:    []string{"/src/Web/OrderCommandHandler.cs"},
				Children: []*types.ItemNode{file("/src/Web/OrderCommandHandler.cs/OrderCommandHandler.cs")},
			},
			&types.ItemNode{
				Name:  "OrderCommandHandler.cs",
				Kind:  types.KindVirtualFolder,
				Paths: []string{"/virtual/OrderCommandHandler.cs"},
			},
		),
	}

	res, err := New(Options{}).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, []string{"/src/Web/OrderCommandHandler.cs/OrderCommandHandler.cs"}, paths(res.Matches))
}

func TestResolve_UnknownKindTreatedAsFile(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Setup", &types.ItemNode{
			Name:  "OrderCommandHandler.cs",
			Kind:  types.ParseKind("not-a-guid"),
			Paths: []string{"/src/Setup/OrderCommandHandler.cs"},
		}),
	}

	res, err := New(Options{}).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, types.ActionOpen, res.Action)
}

func TestResolve_AbsentPathSkippedNotItem(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Web", &types.ItemNode{
			Name:  "OrderCommandHandler.cs",
			Kind:  types.KindFile,
			Paths: []string{"", "/src/Web/OrderCommandHandler.cs"},
		}),
	}

	res, err := New(Options{}).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, []string{"/src/Web/OrderCommandHandler.cs"}, paths(res.Matches))
}

func TestResolve_MatchesCanonicalPathOnly(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Web", &types.ItemNode{
			Name:  "Form.xaml",
			Kind:  types.KindFile,
			Paths: []string{"/w/Form.xaml", "/w/OrderCommandHandler.cs"},
		}),
	}

	res, err := New(Options{}).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)

	assert.Zero(t, res.Count())
	assert.Equal(t, types.ActionReport, res.Action)
}

func TestResolve_SkippedCanonicalFallsBack(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Native", &types.ItemNode{
			Name:  "Native.vcxproj",
			Kind:  types.KindFile,
			Paths: []string{"/src/Native/Native.vcxproj", "/src/Native/NativeCommandHandler.cs"},
		}),
	}

	res, err := New(Options{}).Resolve(context.Background(), "NativeCommand.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, []string{"/src/Native/NativeCommandHandler.cs"}, paths(res.Matches))
}

func TestCandidates_OnePathPerItem(t *testing.T) {
	items := []*types.ItemNode{
		{Name: "A.cs", Kind: types.KindFile, Paths: []string{"/a/A.cs", "/b/A.cs"}},
		{Name: "B.cs", Kind: types.KindFile, Paths: []string{"", "/b/B.cs"}},
		{Name: "C", Kind: types.KindFile},
		{Name: "D.vcxproj", Kind: types.KindFile, Paths: []string{"/d/D.vcxproj"}},
	}

	var got []string
	for path := range Candidates(items, DefaultSkipSuffixes) {
		got = append(got, path)
	}
	assert.Equal(t, []string{"/a/A.cs", "/b/B.cs"}, got)
}

func TestResolve_SolutionFolderScenario(t *testing.T) {
	domain := project("Domain", folder("Orders", file("/src/Domain/Orders/OrderCommandHandler.cs")))
	infra := project("Infra", file("/src/Infra/OrderCommandHandler.cs"))
	src := solutionFolder("src", domain, infra)
	// Solution items live directly in the folder
	src.Items = append(src.Items, file("/sln/OrderCommandHandler.cs"))

	roots := []*types.ProjectNode{src}

	res, err := New(Options{}).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/src/Domain/Orders/OrderCommandHandler.cs",
		"/src/Infra/OrderCommandHandler.cs",
		"/sln/OrderCommandHandler.cs",
	}, paths(res.Matches))
	assert.Equal(t, "src", res.Matches[2].ProjectName)
}

func TestResolve_CyclicForestTerminates(t *testing.T) {
	a := solutionFolder("a")
	b := solutionFolder("b", a, project("Leaf", file("/src/Leaf/XCommandHandler.cs")))
	a.Items = append(a.Items, types.NewProjectItem(b))

	res, err := New(Options{}).Resolve(context.Background(), "XCommand.cs", []*types.ProjectNode{a, b})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count())
}

func TestResolve_Idempotent(t *testing.T) {
	roots := []*types.ProjectNode{
		project("Web", file("/src/Web/CustomerViewModelMapper.cs")),
		solutionFolder("libs", project("Admin", file("/src/Admin/CustomerViewModelMapper.cs"))),
	}
	r := New(Options{})

	first, err := r.Resolve(context.Background(), "CustomerViewModel.cs", roots)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "CustomerViewModel.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, first.TargetFilename, second.TargetFilename)
	assert.ElementsMatch(t, first.Matches, second.Matches)
}

func TestResolve_ParallelMatchesSequential(t *testing.T) {
	var roots []*types.ProjectNode
	for i := 0; i < 40; i++ {
		name := string(rune('A'+i%26)) + strings.Repeat("x", i/26)
		roots = append(roots, project(name,
			folder("F", file("/shared/OrderCommandHandler.cs")),
			file("/src/"+name+"/OrderCommandHandler.cs"),
			file("/src/"+name+"/Other.cs"),
		))
	}
	roots = append(roots, solutionFolder("group", roots[0], roots[1]))

	seq, err := New(Options{Workers: 1}).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)
	par, err := New(Options{Workers: 8}).Resolve(context.Background(), "OrderCommand.cs", roots)
	require.NoError(t, err)

	assert.Equal(t, seq.Matches, par.Matches)
	assert.Equal(t, 41, par.Count())
}

func TestResolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	roots := []*types.ProjectNode{project("A"), project("B")}

	_, err := New(Options{}).Resolve(ctx, "OrderCommand.cs", roots)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = New(Options{Workers: 4}).Resolve(ctx, "OrderCommand.cs", roots)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWalk_DescendantsFirst(t *testing.T) {
	items := []*types.ItemNode{
		folder("a", folder("b", file("/c")), file("/d")),
		nil,
		file("/e"),
	}

	var got []string
	for item := range Walk(items) {
		got = append(got, item.Name)
	}
	assert.Equal(t, []string{"c", "b", "d", "a", "e"}, got)
}

func TestWalk_StopsEarly(t *testing.T) {
	items := []*types.ItemNode{folder("a", file("/b"), file("/c")), file("/d")}

	var got []string
	for item := range Walk(items) {
		got = append(got, item.Name)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"b", "c"}, got)
}

// fakeHost and recordingSink stand in for the IDE
type fakeHost struct {
	document string
	open     bool
	roots    []*types.ProjectNode
	err      error
	loads    int
}

func (h *fakeHost) ActiveDocument() (string, bool) { return h.document, h.open }

func (h *fakeHost) Projects(ctx context.Context) ([]*types.ProjectNode, error) {
	h.loads++
	return h.roots, h.err
}

type recordingSink struct {
	opened   []string
	reported []*types.Resolution
	err      error
}

func (s *recordingSink) Open(ctx context.Context, path string) error {
	s.opened = append(s.opened, path)
	return s.err
}

func (s *recordingSink) Report(ctx context.Context, res *types.Resolution) error {
	s.reported = append(s.reported, res)
	return s.err
}

func TestRun(t *testing.T) {
	roots := []*types.ProjectNode{
		project("A", file("/a/OrderCommandHandler.cs"), file("/a/UserViewModelMapper.cs")),
		project("B", file("/b/UserViewModelMapper.cs")),
	}

	t.Run("single match opens", func(t *testing.T) {
		sink := &recordingSink{}
		res, err := New(Options{}).Run(context.Background(), &fakeHost{document: "OrderCommand.cs", open: true, roots: roots}, sink)
		require.NoError(t, err)
		assert.Equal(t, types.ActionOpen, res.Action)
		assert.Equal(t, []string{"/a/OrderCommandHandler.cs"}, sink.opened)
		assert.Empty(t, sink.reported)
	})

	t.Run("several matches report", func(t *testing.T) {
		sink := &recordingSink{}
		res, err := New(Options{}).Run(context.Background(), &fakeHost{document: "UserViewModel.cs", open: true, roots: roots}, sink)
		require.NoError(t, err)
		assert.Empty(t, sink.opened)
		require.Len(t, sink.reported, 1)
		assert.Same(t, res, sink.reported[0])
		assert.Equal(t, 2, res.Count())
	})

	t.Run("no active document", func(t *testing.T) {
		sink := &recordingSink{}
		host := &fakeHost{roots: roots}
		res, err := New(Options{}).Run(context.Background(), host, sink)
		require.NoError(t, err)
		assert.Equal(t, types.ActionSkip, res.Action)
		assert.Zero(t, host.loads)
		assert.Empty(t, sink.opened)
		assert.Empty(t, sink.reported)
	})

	t.Run("non source document does not load projects", func(t *testing.T) {
		host := &fakeHost{document: "app.config", open: true, roots: roots}
		res, err := New(Options{}).Run(context.Background(), host, &recordingSink{})
		require.NoError(t, err)
		assert.Equal(t, types.ActionSkip, res.Action)
		assert.Zero(t, host.loads)
	})

	t.Run("host failure", func(t *testing.T) {
		errHost := errors.New("solution closed")
		_, err := New(Options{}).Run(context.Background(), &fakeHost{document: "OrderCommand.cs", open: true, err: errHost}, &recordingSink{})
		assert.ErrorIs(t, err, errHost)
	})

	t.Run("sink failure", func(t *testing.T) {
		errSink := errors.New("editor busy")
		res, err := New(Options{}).Run(context.Background(), &fakeHost{document: "OrderCommand.cs", open: true, roots: roots}, &recordingSink{err: errSink})
		assert.ErrorIs(t, err, errSink)
		assert.NotNil(t, res)
	})
}
