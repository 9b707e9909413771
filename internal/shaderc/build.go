package shaderc

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/internal/cache"
	"github.com/gogpu/portfolio/shaders"
)

// Builder compiles targets and writes their outputs.
type Builder struct {
	// SrcDir holds <shader>.wgsl files. Empty means the embedded sources.
	SrcDir string

	// OutDir receives the outputs; it is created when missing.
	OutDir string

	Defines map[string]string
	Formats Format

	// Force rebuilds targets whose outputs are up to date.
	Force bool

	// memo keeps outputs by source content, so rewriting a file without
	// changing it does not recompile.
	memo *cache.Cache[compileKey, *Output]
}

type compileKey struct {
	target  Target
	formats Format
	sum     [sha256.Size]byte
}

// memoLimit bounds the outputs kept across rebuilds.
const memoLimit = 64

// Result reports what Build did for one target.
type Result struct {
	Target  Target
	Files   []string
	Skipped bool
}

// Build compiles targets in order and stops at the first failure. Results
// for the targets finished before the failure are returned with the error.
func (b *Builder) Build(targets []Target) ([]Result, error) {
	formats := b.Formats
	if formats == 0 {
		formats = FormatSPIRV
	}
	if err := os.MkdirAll(b.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		res, err := b.buildOne(t, formats)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (b *Builder) buildOne(t Target, formats Format) (Result, error) {
	src, modTime, err := b.source(t.Shader)
	if err != nil {
		return Result{}, err
	}
	names := outputNames(t, formats)
	res := Result{Target: t, Files: make([]string, len(names))}
	for i, n := range names {
		res.Files[i] = filepath.Join(b.OutDir, n)
	}

	if !b.Force && len(b.Defines) == 0 && upToDate(res.Files, modTime) {
		res.Skipped = true
		portfolio.Logger().Debug("shaderc: up to date", "target", t.String())
		return res, nil
	}

	out, err := b.compile(t, src, formats)
	if err != nil {
		return Result{}, err
	}
	for _, f := range out.files(formats) {
		path := filepath.Join(b.OutDir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return Result{}, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return res, nil
}

func (b *Builder) compile(t Target, src string, formats Format) (*Output, error) {
	if b.memo == nil {
		b.memo = cache.New[compileKey, *Output](memoLimit)
	}
	key := compileKey{
		target:  t,
		formats: formats,
		sum:     sha256.Sum256([]byte(ApplyDefines(src, b.Defines))),
	}
	return b.memo.GetOrCreate(key, func() (*Output, error) {
		return Compile(t, src, b.Defines, formats)
	})
}

// source returns the WGSL text of a shader and its modification time. The
// time is zero for embedded sources.
func (b *Builder) source(name shaders.Name) (string, time.Time, error) {
	if b.SrcDir == "" {
		src, err := shaders.Source(name)
		return src, time.Time{}, err
	}
	path := SourcePath(b.SrcDir, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("read %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), info.ModTime(), nil
}

// SourcePath returns the path of a shader's WGSL file in dir.
func SourcePath(dir string, name shaders.Name) string {
	return filepath.Join(dir, string(name)+".wgsl")
}

// upToDate reports whether every file exists and is not older than src.
// A zero src time is never up to date.
func upToDate(files []string, src time.Time) bool {
	if src.IsZero() {
		return false
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return false
		}
		if info.ModTime().Before(src) {
			return false
		}
	}
	return true
}
