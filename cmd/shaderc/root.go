package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/internal/shaderc"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	targetStyle  = lipgloss.NewStyle().Bold(true).Width(18)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
)

// version returns the module version from build info.
func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

// buildOptions are the flags of build and watch.
type buildOptions struct {
	srcDir  string
	outDir  string
	formats string
	defines []string
	force   bool
}

func (o *buildOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.srcDir, "src", "s", "", "directory of <shader>.wgsl sources (default: embedded)")
	cmd.Flags().StringVarP(&o.outDir, "out", "o", "shaders/out", "output directory")
	cmd.Flags().StringVarP(&o.formats, "formats", "f", "spirv", "comma-separated formats: spirv, glsl, msl, hlsl or all")
	cmd.Flags().StringArrayVarP(&o.defines, "define", "D", nil, "NAME=VALUE injected as a WGSL const (repeatable)")
	cmd.Flags().BoolVar(&o.force, "force", false, "rebuild up-to-date targets")
}

// builder turns the flags into a Builder and the selected targets.
func (o *buildOptions) builder(args []string) (*shaderc.Builder, []shaderc.Target, error) {
	formats, err := shaderc.ParseFormats(o.formats)
	if err != nil {
		return nil, nil, err
	}
	defines, err := shaderc.ParseDefines(o.defines)
	if err != nil {
		return nil, nil, err
	}
	targets, err := shaderc.ParseTargets(args)
	if err != nil {
		return nil, nil, err
	}
	return &shaderc.Builder{
		SrcDir:  o.srcDir,
		OutDir:  o.outDir,
		Defines: defines,
		Formats: formats,
		Force:   o.force,
	}, targets, nil
}

func newRootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:          "shaderc",
		Short:        "Compile the portfolio shaders",
		Version:      version(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			portfolio.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every compile step")
	cmd.AddCommand(newBuildCmd(), newWatchCmd(), newListCmd())
	return cmd
}

// report prints one line per result and the error, if any.
func report(w io.Writer, results []shaderc.Result, err error) {
	for _, r := range results {
		status := okStyle.Render("built")
		if r.Skipped {
			status = skipStyle.Render("up to date")
		}
		fmt.Fprintf(w, "%s %s\n", targetStyle.Render(r.Target.String()), status)
	}
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", errorStyle.Render("error"), err)
	}
}
