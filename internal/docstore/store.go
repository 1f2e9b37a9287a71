// Package docstore holds the text and version of open documents and caches
// their extracted outlines per version.
package docstore

import (
	"fmt"
	"sync"

	"github.com/maypok86/otter"

	"github.com/codemapper/rubyoutline/internal/outline"
	"github.com/codemapper/rubyoutline/internal/syntax"
)

// outlineCacheSize bounds the number of cached symbol trees. Superseded
// document versions are never invalidated explicitly; they age out.
const outlineCacheSize = 256

// Document is one open document.
type Document struct {
	URI        string
	LanguageID string
	Version    int32
	Text       string
}

// Store is a thread-safe in-memory document store. Extraction itself is
// pure, so cached outlines can be shared between readers freely.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document

	parser   *syntax.Parser
	registry *outline.Registry
	outlines otter.Cache[string, []*outline.Symbol]
}

// NewStore creates a store that extracts outlines with the given registry.
// A nil registry uses the built-in DSL tables.
func NewStore(registry *outline.Registry) (*Store, error) {
	if registry == nil {
		registry = outline.NewRegistry()
	}

	outlines, err := otter.MustBuilder[string, []*outline.Symbol](outlineCacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build outline cache: %w", err)
	}

	return &Store{
		docs:     make(map[string]*Document),
		parser:   syntax.NewParser(),
		registry: registry,
		outlines: outlines,
	}, nil
}

// Open tracks a newly opened document.
func (s *Store) Open(uri, languageID string, version int32, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &Document{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Text:       text,
	}
}

// Change replaces a document's text (full-sync semantics).
func (s *Store) Change(uri string, version int32, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return fmt.Errorf("document not open: %s", uri)
	}
	doc.Version = version
	doc.Text = text
	return nil
}

// Close forgets a document.
func (s *Store) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Get returns the current state of a document.
func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil, false
	}
	snapshot := *doc
	return &snapshot, true
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Symbols extracts the outline for an open document. Repeated calls for
// the same document version return the cached tree.
func (s *Store) Symbols(uri string) ([]*outline.Symbol, error) {
	doc, ok := s.Get(uri)
	if !ok {
		return nil, fmt.Errorf("document not open: %s", uri)
	}

	key := fmt.Sprintf("%s@%d", doc.URI, doc.Version)
	if symbols, ok := s.outlines.Get(key); ok {
		return symbols, nil
	}

	root := s.parser.Parse([]byte(doc.Text))
	symbols := outline.Extract(root, s.registry)
	s.outlines.Set(key, symbols)
	return symbols, nil
}

// Shutdown releases the outline cache.
func (s *Store) Shutdown() {
	s.outlines.Close()
}
