package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kmadof/mediare/internal/config"
	"github.com/kmadof/mediare/internal/solution"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
)

// app holds state shared by all subcommands, filled in by the root
// command's PersistentPreRunE
type app struct {
	cfgPath  string
	logLevel string

	cfg    *config.Config
	logger *log.Logger
}

// forestFlags selects the project forest of find and projects
type forestFlags struct {
	solution string
	snapshot string
}

func (f *forestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.solution, "solution", "", "path to a Visual Studio .sln file")
	cmd.Flags().StringVar(&f.snapshot, "snapshot", "", "path to a JSON forest snapshot exported by the IDE")
	cmd.MarkFlagsMutuallyExclusive("solution", "snapshot")
	cmd.MarkFlagsOneRequired("solution", "snapshot")
}

func (f *forestFlags) source() (solution.Source, error) {
	if f.snapshot != "" {
		snap, err := solution.LoadSnapshot(f.snapshot)
		if err != nil {
			return solution.Source{}, err
		}
		return solution.Source{Snapshot: snap}, nil
	}
	return solution.Source{SolutionPath: f.solution}, nil
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mediare",
		Short: "Jump between a C# type and its companion file",
		Long: titleStyle.Render("mediare") + ` finds the companion of a source file across a solution:

  OrderCommand.cs   -> OrderCommandHandler.cs
  UserViewModel.cs  -> UserViewModelMapper.cs

A single match is opened (printed); otherwise the number of matches is
reported. Run "mediare serve" to expose the same lookup as MCP tools.`,
		Version:       fmt.Sprintf("%s (built: %s)", version, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", config.DefaultFile, "config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newServeCommand(a))
	root.AddCommand(newFindCommand(a))
	root.AddCommand(newProjectsCommand(a))

	return root
}

// init loads configuration and creates the stderr logger
func (a *app) init() error {
	cfg, err := config.LoadEnv(a.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	a.cfg = cfg
	a.logger = cfg.NewLogger("mediare")
	return nil
}
