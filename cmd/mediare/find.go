package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kmadof/mediare/internal/resolver"
	"github.com/kmadof/mediare/internal/solution"
	"github.com/kmadof/mediare/pkg/types"
)

func newFindCommand(a *app) *cobra.Command {
	var (
		forest forestFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "find <document>",
		Short: "Find the companion file of a document",
		Example: `  mediare find src/Api/Orders/OrderCommand.cs --solution App.sln
  mediare find UserViewModel.cs --snapshot forest.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := forest.source()
			if err != nil {
				return err
			}

			ws, err := solution.Open(src, args[0], a.cfg.LoadOptions(a.logger))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var sink resolver.Sink = &writerSink{w: out}
			if asJSON {
				sink = nopSink{}
			}

			res, err := resolver.New(a.cfg.ResolverOptions(a.logger)).Run(cmd.Context(), ws, sink)
			if err != nil {
				return err
			}

			if asJSON {
				return writeResolution(out, res)
			}
			if res.Action == types.ActionSkip {
				fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("skipped:"),
					fmt.Sprintf("%s is not a %s source file", res.Document, a.cfg.SourceExtension))
			}
			return nil
		},
	}

	forest.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resolution as JSON")

	return cmd
}

// writerSink prints the path to open, or the report followed by the matches
type writerSink struct {
	w io.Writer
}

func (s *writerSink) Open(ctx context.Context, path string) error {
	_, err := fmt.Fprintln(s.w, path)
	return err
}

func (s *writerSink) Report(ctx context.Context, res *types.Resolution) error {
	if _, err := fmt.Fprintln(s.w, res.Message()); err != nil {
		return err
	}
	for _, m := range res.Matches {
		if _, err := fmt.Fprintf(s.w, "  %s %s\n", nameStyle.Render(m.ProjectName), pathStyle.Render(m.FullPath)); err != nil {
			return err
		}
	}
	return nil
}

type nopSink struct{}

func (nopSink) Open(context.Context, string) error              { return nil }
func (nopSink) Report(context.Context, *types.Resolution) error { return nil }

type matchJSON struct {
	Filename string `json:"filename"`
	Project  string `json:"project"`
	Path     string `json:"path"`
}

type resolutionJSON struct {
	Document       string      `json:"document"`
	TargetFilename string      `json:"target_filename"`
	Action         string      `json:"action"`
	MatchCount     int         `json:"match_count"`
	Matches        []matchJSON `json:"matches"`
}

func writeResolution(w io.Writer, res *types.Resolution) error {
	out := resolutionJSON{
		Document:       res.Document,
		TargetFilename: res.TargetFilename,
		Action:         string(res.Action),
		MatchCount:     res.Count(),
		Matches:        make([]matchJSON, 0, len(res.Matches)),
	}
	for _, m := range res.Matches {
		out.Matches = append(out.Matches, matchJSON{Filename: m.Filename, Project: m.ProjectName, Path: m.FullPath})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
