package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmadof/mediare/internal/forest"
	"github.com/kmadof/mediare/internal/solution"
)

func newProjectsCommand(a *app) *cobra.Command {
	var (
		source forestFlags
		leaves bool
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects in the order they are searched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := source.source()
			if err != nil {
				return err
			}

			ws, err := solution.Open(src, "", a.cfg.LoadOptions(a.logger))
			if err != nil {
				return err
			}

			roots, err := ws.Projects(cmd.Context())
			if err != nil {
				return err
			}

			projects := forest.Enumerate(roots)
			if leaves {
				projects = forest.Leaves(projects)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Projects"), countStyle.Render(fmt.Sprintf("(%d)", len(projects))))
			for _, p := range projects {
				line := fmt.Sprintf("  %s %s", nameStyle.Render(p.Name), kindStyle.Render(p.Kind.String()))
				if p.Path != "" {
					line += " " + pathStyle.Render(p.Path)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().BoolVar(&leaves, "leaves", false, "omit solution folders")

	return cmd
}
