package lsp

import (
	"encoding/json"
	"strings"

	"github.com/terror/pyproject/internal/format"
)

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	doc, ok := s.lookupDocument(uri)
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	formatted := format.Source(doc.text)
	if formatted == doc.text {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	// One whole-document edit keeps version bookkeeping on the client
	// trivial.
	edit := textEdit{
		Range: lspRange{
			Start: position{Line: 0, Character: 0},
			End:   endPosition(doc.text),
		},
		NewText: formatted,
	}
	return s.sendResponse(msg.ID, []textEdit{edit})
}

func endPosition(text string) position {
	line := strings.Count(text, "\n")
	last := text
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		last = text[i+1:]
	}
	col := 0
	for _, r := range last {
		if r > 0xFFFF {
			col += 2
		} else {
			col++
		}
	}
	return position{Line: line, Character: col}
}
