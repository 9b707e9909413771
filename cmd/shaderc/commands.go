package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/portfolio/internal/shaderc"
)

func newBuildCmd() *cobra.Command {
	var opts buildOptions
	cmd := &cobra.Command{
		Use:   "build [target...]",
		Short: "Compile shaders once",
		Long: `Compile the given targets, or every target without arguments.
A target is a shader name (both stages) or shader.stage, e.g. triangle.fs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, targets, err := opts.builder(args)
			if err != nil {
				return err
			}
			results, err := b.Build(targets)
			report(cmd.OutOrStdout(), results, err)
			return err
		},
	}
	opts.register(cmd)
	return cmd
}

func newWatchCmd() *cobra.Command {
	var opts buildOptions
	cmd := &cobra.Command{
		Use:   "watch [target...]",
		Short: "Compile shaders and recompile them when their source changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.srcDir == "" {
				return shaderc.ErrNoSourceDir
			}
			b, targets, err := opts.builder(args)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", headingStyle.Render("watching"), opts.srcDir)
			return shaderc.Watch(ctx, b, targets, func(results []shaderc.Result, err error) {
				report(out, results, err)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List build targets and their entry points",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headingStyle.Render("targets"))
			for _, t := range shaderc.Targets() {
				fmt.Fprintf(out, "%s %s\n", targetStyle.Render(t.String()), t.Stage.Entry())
			}
			fmt.Fprintf(out, "%s %s\n", headingStyle.Render("formats"),
				strings.ReplaceAll(shaderc.FormatAll.String(), ",", " "))
		},
	}
}
