package lsp

import (
	"github.com/terror/pyproject/internal/analysis"
	"github.com/terror/pyproject/internal/toml"
)

// document is one open manifest tracked by the session.
type document struct {
	text    string
	version int32
	// result is the last completed analysis. It may lag behind version
	// while a debounced run is pending; publishers compare versions and
	// discard stale output.
	result *analysis.Result
}

// snapshotDoc is an immutable view of a document taken under the lock for
// use by an analysis run.
type snapshotDoc struct {
	uri     string
	text    string
	version int32
}

func (s *Server) lookupDocument(uri string) (snapshotDoc, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return snapshotDoc{}, false
	}
	return snapshotDoc{uri: uri, text: doc.text, version: doc.version}, true
}

// parseCurrent parses the live text of a document. Request handlers use
// this instead of the cached analysis result so completion and hover see
// the very latest edits.
func (s *Server) parseCurrent(uri string) (*toml.Document, bool) {
	doc, ok := s.lookupDocument(uri)
	if !ok {
		return nil, false
	}
	return toml.Parse(doc.text, doc.version), true
}
