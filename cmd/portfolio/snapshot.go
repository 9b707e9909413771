package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/internal/config"
	"github.com/gogpu/portfolio/internal/gpu"
	"github.com/gogpu/portfolio/internal/session"
)

func newSnapshotCmd(opts *globalOptions) *cobra.Command {
	var (
		flags      demoFlags
		output     string
		backend    string
		canvasOnly bool
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame to a PNG file without a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Snapshot.Output = output
			}
			if err := flags.apply(&cfg); err != nil {
				return err
			}
			img, err := snapshot(cfg, backend, canvasOnly)
			if err != nil {
				return err
			}
			if err := writePNG(cfg.Snapshot.Output, img); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n",
				cfg.Snapshot.Output, img.Bounds().Dx(), img.Bounds().Dy())
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path")
	cmd.Flags().StringVar(&backend, "backend", gpu.NameSoftware, "GPU backend to render with")
	cmd.Flags().BoolVar(&canvasOnly, "canvas-only", false, "write the demo canvas without the panels")
	return cmd
}

// snapshot renders one frame of cfg on a device opened from backend.
func snapshot(cfg config.Config, backend string, canvasOnly bool) (*image.RGBA, error) {
	s, err := session.New(portfolio.NewWorkspace(), cfg)
	if err != nil {
		return nil, err
	}
	dev, err := gpu.Open([]string{backend})
	if err != nil {
		return nil, err
	}
	defer dev.Close()

	if err := s.Open(dev.Device, dev.Queue); err != nil {
		return nil, err
	}
	defer s.Close()

	if canvasOnly {
		return s.RenderCanvas()
	}
	return s.Render()
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
