package shaderc

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/shaders"
)

// ErrNoSourceDir is returned by Watch when the builder reads embedded
// sources.
var ErrNoSourceDir = errors.New("shaderc: watch needs a source directory")

// settle is how long Watch waits after the last change to a shader before
// rebuilding it. Editors often write a file in several steps.
const settle = 100 * time.Millisecond

// BuildFunc receives the outcome of every build Watch runs. A compile
// error is reported here and does not stop watching.
type BuildFunc func(results []Result, err error)

// Watch builds targets once, then rebuilds the targets of a shader every
// time its source in b.SrcDir changes, until ctx is done. Only targets in
// the given set are rebuilt.
func Watch(ctx context.Context, b *Builder, targets []Target, fn BuildFunc) error {
	if b.SrcDir == "" {
		return ErrNoSourceDir
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(b.SrcDir); err != nil {
		return fmt.Errorf("watch %s: %w", b.SrcDir, err)
	}

	fn(b.Build(targets))

	rebuild := *b
	rebuild.Force = true

	pending := make(map[shaders.Name]bool)
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, ok := shaderOf(event.Name)
			if !ok {
				continue
			}
			portfolio.Logger().Debug("shaderc: source changed", "shader", string(name), "op", event.Op.String())
			pending[name] = true
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			portfolio.Logger().Warn("shaderc: watcher error", "err", err)
		case <-timer.C:
			sel := selectPending(targets, pending)
			clear(pending)
			if len(sel) > 0 {
				fn(rebuild.Build(sel))
			}
		}
	}
}

// shaderOf maps a changed file to the shader it holds.
func shaderOf(path string) (shaders.Name, bool) {
	base, ok := strings.CutSuffix(filepath.Base(path), ".wgsl")
	if !ok {
		return "", false
	}
	for _, n := range buildShaders {
		if string(n) == base {
			return n, true
		}
	}
	return "", false
}

func selectPending(targets []Target, pending map[shaders.Name]bool) []Target {
	var sel []Target
	for _, t := range targets {
		if pending[t.Shader] {
			sel = append(sel, t)
		}
	}
	return sel
}
