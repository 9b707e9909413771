package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/integration/gogpuhost"
	"github.com/gogpu/portfolio/internal/config"
)

// demoFlags are the config overrides shared by run and snapshot.
type demoFlags struct {
	demo    string
	shaders string
}

func (f *demoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.demo, "demo", "d", "", "initial demo (triangle, mandelbrot, model3d, physics, tetris)")
	cmd.Flags().StringVar(&f.shaders, "shaders", "", "shader representation: wgsl or spirv")
}

// apply copies the flags that were set over cfg and validates the result.
func (f *demoFlags) apply(cfg *config.Config) error {
	if f.demo != "" {
		cfg.Demo.Initial = f.demo
	}
	if f.shaders != "" {
		cfg.GPU.Shaders = f.shaders
	}
	return cfg.Validate()
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	var flags demoFlags
	var title string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the portfolio window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if title != "" {
				cfg.Window.Title = title
			}
			if err := flags.apply(&cfg); err != nil {
				return err
			}
			return gogpuhost.Run(portfolio.NewWorkspace(), cfg)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&title, "title", "", "window title")
	return cmd
}
