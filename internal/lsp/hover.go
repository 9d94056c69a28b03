package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/terror/pyproject/internal/schema"
	"github.com/terror/pyproject/internal/toml"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	doc, ok := s.parseCurrent(uri)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	offset := offsetForPositionInFile(doc.File, params.Position)

	table, entry := keyAt(doc.Root, "", offset)
	if entry == nil {
		return s.sendResponse(msg.ID, nil)
	}
	info := keyDoc(table, entry.Key.Text)
	if info == "" {
		return s.sendResponse(msg.ID, nil)
	}
	span := rangeForSpan(doc.File, entry.Key.Span)
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{
			Kind:  "markdown",
			Value: fmt.Sprintf("**%s**\n\n%s", entry.Key.Text, info),
		},
		Range: &span,
	})
}

// keyAt finds the deepest table entry whose key span contains the offset
// and returns it with the dot path of its enclosing table.
func keyAt(table *toml.Node, path string, offset uint32) (string, *toml.Entry) {
	if !table.IsTable() {
		return "", nil
	}
	for _, e := range table.Entries {
		if e.Key.Span.Contains(offset) {
			return path, e
		}
		if e.Value.IsTable() {
			child := path
			if child == "" {
				child = e.Key.Text
			} else {
				child += "." + e.Key.Text
			}
			if p, found := keyAt(e.Value, child, offset); found != nil {
				return p, found
			}
		}
	}
	return "", nil
}

func keyDoc(table, key string) string {
	var keys []schema.Key
	switch table {
	case "":
		keys = schema.RootKeys()
	case "project":
		keys = schema.ProjectKeys()
	case "build-system":
		keys = schema.BuildSystemKeys()
	default:
		return ""
	}
	for _, k := range keys {
		if k.Name == key {
			return k.Doc
		}
	}
	return ""
}
