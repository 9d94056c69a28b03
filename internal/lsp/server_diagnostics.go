package lsp

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/terror/pyproject/internal/analysis"
	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/source"
)

func (s *Server) scheduleDiagnostics() {
	s.mu.Lock()
	seq := atomic.AddUint64(&s.analysisSeq, 1)
	atomic.StoreUint64(&s.latestSeq, seq)
	if s.diagCancel != nil {
		s.diagCancel()
	}
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(seq)
	})
	s.mu.Unlock()
}

func (s *Server) isLatestSeq(seq uint64) bool {
	if seq == 0 {
		return false
	}
	return seq == atomic.LoadUint64(&s.latestSeq)
}

// runDiagnostics analyzes every open document. Each result is tagged with
// the document version it was computed from; results for superseded
// versions are discarded rather than published.
func (s *Server) runDiagnostics(seq uint64) {
	if !s.isLatestSeq(seq) {
		return
	}
	s.mu.Lock()
	if len(s.docs) == 0 {
		s.mu.Unlock()
		s.clearPublishedDiagnostics()
		return
	}
	if s.diagCancel != nil {
		s.diagCancel()
	}
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.diagCancel = cancel
	snapshots := make([]snapshotDoc, 0, len(s.docs))
	for uri, doc := range s.docs {
		snapshots = append(snapshots, snapshotDoc{uri: uri, text: doc.text, version: doc.version})
	}
	trace := s.traceLSP
	s.mu.Unlock()

	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].uri < snapshots[j].uri })

	for _, snap := range snapshots {
		if ctx.Err() != nil || !s.isLatestSeq(seq) {
			if trace {
				s.logf("analysis discarded: seq=%d uri=%s", seq, snap.uri)
			}
			return
		}
		result := analysis.Analyze(snap.text, snap.version)
		s.applyResult(seq, snap, result, trace)
	}
}

// applyResult stores and publishes an analysis result unless the document
// moved on while the analysis ran.
func (s *Server) applyResult(seq uint64, snap snapshotDoc, result *analysis.Result, trace bool) {
	s.mu.Lock()
	doc, open := s.docs[snap.uri]
	if !open || doc.version != snap.version || !s.isLatestSeq(seq) {
		s.mu.Unlock()
		if trace {
			s.logf("analysis discarded: seq=%d uri=%s version=%d", seq, snap.uri, snap.version)
		}
		return
	}
	doc.result = result
	s.published[snap.uri] = struct{}{}
	s.mu.Unlock()

	list := make([]lspDiagnostic, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		list = append(list, toLSPDiagnostic(result.Doc.File, d))
	}
	if trace {
		s.logf("publish: uri=%s version=%d count=%d", snap.uri, snap.version, len(list))
	}
	if err := s.sendPublish(snap.uri, snap.version, list); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
	}
}

func toLSPDiagnostic(file *source.File, d diag.Diagnostic) lspDiagnostic {
	return lspDiagnostic{
		Range:    rangeForSpan(file, d.Span),
		Severity: int(d.Severity),
		Code:     d.Rule,
		Source:   "pyproject",
		Message:  d.Message,
	}
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.published))
	for uri := range s.published {
		uris = append(uris, uri)
	}
	s.published = make(map[string]struct{})
	s.mu.Unlock()

	sort.Strings(uris)
	for _, uri := range uris {
		if err := s.sendPublish(uri, 0, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}
