package stache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Folder is a set of templates loaded from a directory tree. Template
// names are slash-separated paths relative to the root, extension
// included, and partial tags resolve against the same root: a template
// containing {{>partials/head.html}} pulls in that file at compile
// time, wherever in the tree the referencing template lives.
//
// Partials may only name files inside the root. A name escaping it via
// "..", or a symlink whose target lies outside the root, fails with
// IllegalPartialError.
type Folder struct {
	dir string
	ext string
	log *zap.Logger

	mu        sync.RWMutex
	templates map[string]*Template
}

type FolderOption func(*Folder)

// WithLogger attaches a logger to the folder. The default discards
// everything.
func WithLogger(log *zap.Logger) FolderOption {
	return func(f *Folder) { f.log = log }
}

func newFolder(dir, ext string, opts ...FolderOption) (*Folder, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	// Resolve symlinks so the containment check below compares real
	// paths, not lexical ones.
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("template folder %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("template folder %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template folder %q: not a directory", dir)
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	f := &Folder{
		dir:       abs,
		ext:       ext,
		log:       zap.NewNop(),
		templates: make(map[string]*Template),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FromFolder loads and compiles every file under dir carrying ext.
// Loading stops at the first template that fails to compile.
func FromFolder(dir, ext string, opts ...FolderOption) (*Folder, error) {
	f, err := newFolder(dir, ext, opts...)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	err = filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != f.ext {
			return nil
		}
		name, err := filepath.Rel(f.dir, path)
		if err != nil {
			return err
		}
		_, err = f.load(filepath.ToSlash(name))
		return err
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Lazy verifies dir exists but loads nothing. Templates compile on
// first request through FromFile.
func Lazy(dir, ext string, opts ...FolderOption) (*Folder, error) {
	return newFolder(dir, ext, opts...)
}

// Get returns an already loaded template by name.
func (f *Folder) Get(name string) (*Template, bool) {
	f.mu.RLock()
	t, ok := f.templates[name]
	f.mu.RUnlock()
	return t, ok
}

// FromFile returns the template for name, loading and compiling it
// along with any partials it references if it isn't cached yet.
func (f *Folder) FromFile(name string) (*Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(name)
}

// Names returns the names of all loaded templates, sorted.
func (f *Folder) Names() []string {
	f.mu.RLock()
	names := make([]string, 0, len(f.templates))
	for name := range f.templates {
		names = append(names, name)
	}
	f.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Dir returns the canonicalized root directory.
func (f *Folder) Dir() string {
	return f.dir
}

func (f *Folder) load(name string) (*Template, error) {
	return f.loadWith(name, make(map[string]bool))
}

// contains reports whether path sits under the folder root. Both sides
// must already be absolute; f.dir has its symlinks resolved.
func (f *Folder) contains(path string) bool {
	rel, err := filepath.Rel(f.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}

// loadWith compiles name and, through the resolver, everything it
// includes. The loading set holds names whose compilation is in
// progress further up the call chain; hitting one again means the
// partial graph has a cycle. Must be called with f.mu held for writing.
func (f *Folder) loadWith(name string, loading map[string]bool) (*Template, error) {
	if t, ok := f.templates[name]; ok {
		return t, nil
	}
	if loading[name] {
		return nil, &PartialCycleError{Name: name}
	}

	path := filepath.Join(f.dir, filepath.FromSlash(name))
	if !f.contains(path) {
		return nil, &IllegalPartialError{Name: name}
	}
	// A symlink inside the root can still point outside it, so check
	// containment again on the resolved path.
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("reading template %q: %w", name, err)
	}
	if !f.contains(resolved) {
		return nil, &IllegalPartialError{Name: name}
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("reading template %q: %w", name, err)
	}

	loading[name] = true
	t, err := CompileWithPartials(string(raw), &folderResolver{folder: f, loading: loading})
	delete(loading, name)
	if err != nil {
		return nil, fmt.Errorf("compiling template %q: %w", name, err)
	}
	f.templates[name] = t
	f.log.Info("loaded template", zap.String("name", name), zap.Int("capacity", t.capacity))
	return t, nil
}

type folderResolver struct {
	folder  *Folder
	loading map[string]bool
}

func (r *folderResolver) GetPartial(name string) (*Template, error) {
	return r.folder.loadWith(name, r.loading)
}

type reloadResult struct {
	name string
	tpl  *Template
	err  error
}

// refresh throws away every compiled template and recompiles the set
// from disk. Partials are inlined at compile time, so editing one file
// can stale any template that includes it; recompiling everything is
// the only safe granularity.
func (f *Folder) refresh() []reloadResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.templates))
	for name := range f.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	f.templates = make(map[string]*Template, len(names))

	results := make([]reloadResult, 0, len(names))
	for _, name := range names {
		t, err := f.load(name)
		if err != nil {
			f.log.Error("template reload failed", zap.String("name", name), zap.Error(err))
		}
		results = append(results, reloadResult{name: name, tpl: t, err: err})
	}
	return results
}
