package stache

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// CompileCache memoizes compilation keyed by the xxHash of the source.
// The source is kept next to the compiled template and compared on hit,
// so a hash collision degrades to a recompile instead of serving the
// wrong template.
type CompileCache struct {
	mu        sync.RWMutex
	templates map[uint64]cacheEntry
	maxSize   int
}

type cacheEntry struct {
	source string
	tpl    *Template
}

// NewCompileCache creates a cache holding at most maxSize templates.
func NewCompileCache(maxSize int) *CompileCache {
	if maxSize <= 0 {
		maxSize = 500
	}
	return &CompileCache{
		templates: make(map[uint64]cacheEntry),
		maxSize:   maxSize,
	}
}

var globalCompileCache = NewCompileCache(500)

// CompileCached compiles a template with process-wide in-memory caching.
func CompileCached(source string) (*Template, error) {
	return globalCompileCache.Compile(source)
}

func (cc *CompileCache) Compile(source string) (*Template, error) {
	key := xxhash.Sum64String(source)

	cc.mu.RLock()
	entry, exists := cc.templates[key]
	cc.mu.RUnlock()
	if exists && entry.source == source {
		return entry.tpl, nil
	}

	tpl, err := Compile(source)
	if err != nil {
		return nil, err
	}

	cc.mu.Lock()
	if len(cc.templates) >= cc.maxSize {
		// Simple eviction: remove an arbitrary entry.
		for k := range cc.templates {
			delete(cc.templates, k)
			break
		}
	}
	cc.templates[key] = cacheEntry{source: source, tpl: tpl}
	cc.mu.Unlock()

	return tpl, nil
}

// Len returns the number of cached templates.
func (cc *CompileCache) Len() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.templates)
}

// Clear empties the cache.
func (cc *CompileCache) Clear() {
	cc.mu.Lock()
	cc.templates = make(map[uint64]cacheEntry)
	cc.mu.Unlock()
}

// FileCache caches templates compiled from single files, invalidated by
// modification time. Unlike Folder it has no root and resolves no
// partials; it suits one-off templates addressed by path.
type FileCache struct {
	mu        sync.RWMutex
	templates map[string]*cachedFile
	maxSize   int
}

type cachedFile struct {
	template *Template
	modTime  time.Time
}

var globalFileCache = NewFileCache(1000)

// NewFileCache creates a file cache holding at most maxSize templates.
func NewFileCache(maxSize int) *FileCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &FileCache{
		templates: make(map[string]*cachedFile),
		maxSize:   maxSize,
	}
}

// CompileFile compiles a template from a file with process-wide caching.
func CompileFile(filename string) (*Template, error) {
	return globalFileCache.CompileFile(filename)
}

// CompileFile compiles the file at filename, serving the cached template
// while the file's modification time is unchanged.
func (fc *FileCache) CompileFile(filename string) (*Template, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("template file %q: %w", filename, err)
	}

	fc.mu.RLock()
	cached, exists := fc.templates[filename]
	fc.mu.RUnlock()
	if exists && !cached.modTime.Before(info.ModTime()) {
		return cached.template, nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading template %q: %w", filename, err)
	}
	tpl, err := Compile(string(content))
	if err != nil {
		return nil, fmt.Errorf("compiling template %q: %w", filename, err)
	}

	fc.mu.Lock()
	if len(fc.templates) >= fc.maxSize {
		for k := range fc.templates {
			delete(fc.templates, k)
			break
		}
	}
	fc.templates[filename] = &cachedFile{template: tpl, modTime: info.ModTime()}
	fc.mu.Unlock()

	return tpl, nil
}

// ClearCache empties the file cache.
func (fc *FileCache) ClearCache() {
	fc.mu.Lock()
	fc.templates = make(map[string]*cachedFile)
	fc.mu.Unlock()
}
