// Package namespaces collects JSON fragment files grouped by namespace
// directories and folds each namespace into one ordered mapping.
//
// Layout:
//
//	<root>/
//	  core/
//	    a.json   {"x": 1}
//	    b.json   {"x": 2, "y": 3}
//	  audio/
//	    ...
//
// Every immediate subdirectory of root is a namespace. Its files are read in
// sorted order and their top-level keys merged with later-wins semantics:
// the namespace above merges to {"x": 2, "y": 3}. Non-directory entries of
// root are ignored.
package namespaces

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agentstation/nsmerge/pkg/document"
	"github.com/agentstation/nsmerge/pkg/errors"
	"github.com/agentstation/nsmerge/pkg/logging"
)

// Progress describes the namespace and file the collector is working on.
// File is empty when a namespace has just been entered.
type Progress struct {
	Namespace string
	File      string
}

// Collector walks an input root and merges namespace files.
type Collector struct {
	root     string
	exclude  []string
	progress func(Progress)
}

// Option configures a Collector.
type Option func(*Collector)

// WithExclude skips files whose "namespace/file" path or bare file name
// matches any of the doublestar patterns.
func WithExclude(patterns ...string) Option {
	return func(c *Collector) {
		c.exclude = append(c.exclude, patterns...)
	}
}

// WithProgress registers a callback invoked before each namespace and file.
func WithProgress(fn func(Progress)) Option {
	return func(c *Collector) {
		c.progress = fn
	}
}

// NewCollector creates a collector for root.
func NewCollector(root string, opts ...Option) *Collector {
	c := &Collector{root: root}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the input root directory.
func (c *Collector) Root() string {
	return c.root
}

// ValidatePatterns reports the first malformed exclude pattern.
func (c *Collector) ValidatePatterns() error {
	for _, p := range c.exclude {
		if !doublestar.ValidatePattern(p) {
			return errors.NewConfigError("exclude", fmt.Sprintf("invalid pattern %q", p), doublestar.ErrBadPattern)
		}
	}
	return nil
}

// Namespaces returns the sorted namespace names under root.
// A missing root yields ErrInputNotFound.
func (c *Collector) Namespaces() ([]string, error) {
	info, err := os.Stat(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Join(errors.ErrInputNotFound, errors.NewNotFoundError(errors.ResourceInputDir, c.root))
		}
		return nil, errors.WrapIO("stat", c.root, err)
	}
	if !info.IsDir() {
		return nil, errors.WrapIO("list", c.root, errNotDirectory)
	}

	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, errors.WrapIO("list", c.root, err)
	}

	var names []string
	for _, entry := range entries {
		// Stat rather than entry.IsDir so symlinked directories count.
		fi, err := os.Stat(filepath.Join(c.root, entry.Name()))
		if err != nil || !fi.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Collect merges every namespace under root into one document keyed by
// namespace name, in sorted order. The first failing file aborts the walk;
// errors are wrapped in *errors.PipelineError naming the namespace and file.
func (c *Collector) Collect(ctx context.Context) (*document.Object, error) {
	if err := c.ValidatePatterns(); err != nil {
		return nil, errors.NewPipelineError(errors.StageCollect, "", "", err)
	}

	names, err := c.Namespaces()
	if err != nil {
		return nil, errors.NewPipelineError(errors.StageCollect, "", c.root, err)
	}

	merged := document.NewObject()
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewPipelineError(errors.StageCollect, name, "", errors.WrapCanceled(err))
		}
		nsCtx := logging.WithNamespace(ctx, name)
		data, err := c.collectNamespace(nsCtx, name)
		if err != nil {
			return nil, err
		}
		merged.Set(name, data)
	}
	return merged, nil
}

func (c *Collector) collectNamespace(ctx context.Context, name string) (*document.Object, error) {
	logger := logging.FromContext(ctx)
	logger.Info().Msg("Processing namespace")
	c.report(Progress{Namespace: name})

	dir := filepath.Join(c.root, name)
	files, err := c.files(dir, name)
	if err != nil {
		return nil, errors.NewPipelineError(errors.StageCollect, name, dir, err)
	}

	acc := document.NewObject()
	for _, file := range files {
		path := filepath.Join(dir, file)
		if err := ctx.Err(); err != nil {
			return nil, errors.NewPipelineError(errors.StageCollect, name, path, errors.WrapCanceled(err))
		}

		c.report(Progress{Namespace: name, File: path})
		logger.Debug().Str("file", path).Msg("Processing file")

		obj, err := ReadFile(path)
		if err != nil {
			return nil, errors.NewPipelineError(errors.StageCollect, name, path, err)
		}
		Merge(acc, obj)
	}

	logger.Info().Int("files", len(files)).Int("keys", acc.Len()).Msg("Completed namespace")
	return acc, nil
}

// files lists the entries of a namespace directory in sorted order, minus excludes.
func (c *Collector) files(dir, namespace string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("list", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if c.excluded(namespace, entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (c *Collector) excluded(namespace, file string) bool {
	rel := namespace + "/" + file
	for _, p := range c.exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, file); ok {
			return true
		}
	}
	return false
}

func (c *Collector) report(p Progress) {
	if c.progress != nil {
		c.progress(p)
	}
}

// Merge folds src into dst: every top-level key of src overwrites dst's
// value whole. Nested objects are replaced, never merged.
func Merge(dst, src *document.Object) {
	dst.Update(src)
}

