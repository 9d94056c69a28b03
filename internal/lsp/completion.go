package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/terror/pyproject/internal/completion"
)

const (
	completionItemKindField    = 5
	completionItemKindModule   = 9
	completionItemKindProperty = 10
	completionItemKindValue    = 12
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	doc, ok := s.parseCurrent(uri)
	if !ok {
		return s.sendResponse(msg.ID, completionList{Items: []completionItem{}})
	}
	offset := offsetForPositionInFile(doc.File, params.Position)
	items := completion.Complete(doc, offset)

	out := make([]completionItem, 0, len(items))
	for i, item := range items {
		out = append(out, completionItem{
			Label:    item.Label,
			Kind:     completionKind(item.Kind),
			Detail:   item.Detail,
			SortText: fmt.Sprintf("%04d", i),
		})
	}
	return s.sendResponse(msg.ID, completionList{Items: out})
}

// completionKind maps candidate kinds onto LSP completion item kinds.
func completionKind(kind completion.ItemKind) int {
	switch kind {
	case completion.KindTable:
		return completionItemKindModule
	case completion.KindKey:
		return completionItemKindProperty
	case completion.KindValue:
		return completionItemKindValue
	default:
		return completionItemKindField
	}
}
