// Package codebase keeps a set of parsed Java files, scans directories in
// parallel and serves them to the language server.
package codebase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/jsyn/config"
	"github.com/dhamidi/jsyn/diag"
	"github.com/dhamidi/jsyn/java/parser"
)

var log = commonlog.GetLogger("jsyn.codebase")

type Codebase struct {
	mu      sync.RWMutex
	fs      afero.Fs
	rootDir string
	cfg     *config.Config
	opts    []parser.Option
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path        string
	Content     []byte
	AST         *parser.Node
	Diagnostics []diag.Diagnostic
	// Err is set when the parse was canceled; AST is then partial.
	Err error
}

// New returns an empty codebase rooted at rootDir. A nil cfg means the
// defaults.
func New(fs afero.Fs, rootDir string, cfg *config.Config) *Codebase {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Codebase{
		fs:      fs,
		rootDir: rootDir,
		cfg:     cfg,
		opts:    cfg.ParserOptions(),
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Fs() afero.Fs {
	return c.fs
}

// JavaFiles lists the files under the root selected by the include and
// exclude patterns. Hidden directories are skipped.
func (c *Codebase) JavaFiles() ([]string, error) {
	var paths []string
	err := afero.Walk(c.fs, c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := c.rel(path)
		if info.IsDir() {
			if path != c.rootDir && (strings.HasPrefix(info.Name(), ".") || c.cfg.Excluded(rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if c.cfg.Included(rel) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func (c *Codebase) rel(path string) string {
	rel, err := filepath.Rel(c.rootDir, path)
	if err != nil {
		return path
	}
	if rel == "." {
		return filepath.Base(path)
	}
	return rel
}

// ScanAll parses every Java file under the root, several at a time. Files
// that cannot be read are reported together once all others are parsed. A
// root naming a zip or jar file is scanned with ScanArchive.
func (c *Codebase) ScanAll(ctx context.Context) error {
	if IsArchive(c.rootDir) {
		return c.ScanArchive(ctx, c.rootDir)
	}
	paths, err := c.JavaFiles()
	if err != nil {
		return fmt.Errorf("scan %s: %w", c.rootDir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	var mu sync.Mutex
	var readErrs *multierror.Error
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.ScanFile(ctx, path); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				mu.Lock()
				readErrs = multierror.Append(readErrs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("scanned %d files in %s", len(paths), c.rootDir)
	return readErrs.ErrorOrNil()
}

func (c *Codebase) ScanFile(ctx context.Context, path string) error {
	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return c.UpdateFile(ctx, path, content).Err
}

// UpdateFile reparses path from content and replaces its previous state.
func (c *Codebase) UpdateFile(ctx context.Context, path string, content []byte) *FileInfo {
	opts := append([]parser.Option{parser.WithFile(path), parser.WithContext(ctx)}, c.opts...)
	p := parser.ParseCompilationUnit(bytes.NewReader(content), opts...)
	ast := p.Finish()
	info := &FileInfo{
		Path:        path,
		Content:     content,
		AST:         ast,
		Diagnostics: diag.FromTree(path, ast),
		Err:         p.Err(),
	}

	c.mu.Lock()
	c.files[path] = info
	c.mu.Unlock()
	log.Debugf("updated %s: %d syntax errors", path, len(info.Diagnostics))
	return info
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known files in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Diagnostics returns the syntax errors of all files, ordered by file.
func (c *Codebase) Diagnostics() []diag.Diagnostic {
	var all []diag.Diagnostic
	for _, p := range c.Paths() {
		if f := c.GetFile(p); f != nil {
			all = append(all, f.Diagnostics...)
		}
	}
	return all
}
