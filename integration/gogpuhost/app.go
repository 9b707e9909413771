// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuhost

import (
	"image"

	"github.com/gogpu/gogpu"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/internal/config"
	"github.com/gogpu/portfolio/internal/session"
)

// Run opens the portfolio window and blocks until it is closed. Input from
// the window drives ws through the panel controller.
func Run(ws *portfolio.Workspace, cfg config.Config) error {
	s, err := session.New(ws, cfg)
	if err != nil {
		return err
	}
	size := s.Layout().Size()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Window.Title).
		WithSize(size.X, size.Y).
		WithContinuousRender(cfg.Window.Continuous))

	host := New(s)
	if c := s.Controller(); c != nil {
		c.Attach(app.EventSource())
	}

	var reported bool
	var rejected image.Point
	app.OnDraw(func(dc *gogpu.Context) {
		if dc.Width() <= 0 || dc.Height() <= 0 {
			return
		}
		if err := host.Resize(dc.Width(), dc.Height()); err != nil {
			if window := image.Pt(dc.Width(), dc.Height()); window != rejected {
				portfolio.Logger().Warn("keeping layout", "err", err)
				rejected = window
			}
		}
		err := host.Draw(dc.AsTextureDrawer(), app.GPUContextProvider())
		if err != nil && !reported {
			portfolio.Logger().Error("draw failed", "err", err)
			reported = host.Err() != nil
		}
	})
	app.OnClose(host.Close)

	if err := app.Run(); err != nil {
		return err
	}
	return host.Err()
}
