package wikidata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node is a single object in a JSON-LD @graph. Values are kept generic
// because Wikidata emits both single objects and arrays for the same keys.
type Node map[string]interface{}

// LangValue is a monolingual text value from a label or description
type LangValue struct {
	Lang  string
	Value string
}

// Document is a parsed Special:EntityData JSON-LD document
type Document struct {
	Graph []Node `json:"@graph"`
}

// ParseDocument parses JSON-LD bytes into a Document. An input without a
// @graph is unreadable and treated as a fatal error by callers.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON-LD document: %w", err)
	}
	if doc.Graph == nil {
		return nil, fmt.Errorf("JSON-LD document has no @graph")
	}
	return &doc, nil
}

// ID returns the node's @id, or empty string
func (n Node) ID() string {
	id, _ := n["@id"].(string)
	return id
}

// EntityID returns the bare Q-ID when the node is a wd: entity
func (n Node) EntityID() string {
	id := n.ID()
	if strings.HasPrefix(id, "wd:") {
		return strings.TrimPrefix(id, "wd:")
	}
	return ""
}

// HasType reports whether the node's @type (string or array) contains t
func (n Node) HasType(t string) bool {
	switch typed := n["@type"].(type) {
	case string:
		return typed == t
	case []interface{}:
		for _, item := range typed {
			if s, ok := item.(string); ok && s == t {
				return true
			}
		}
	}
	return false
}

// Raw returns the raw value for a key
func (n Node) Raw(key string) (interface{}, bool) {
	v, ok := n[key]
	return v, ok
}

// String returns the value for a key when it is a plain string
func (n Node) String(key string) (string, bool) {
	s, ok := n[key].(string)
	return s, ok
}

// LangValues returns the monolingual values under a key, normalizing the
// single-object and array forms Wikidata uses interchangeably.
func (n Node) LangValues(key string) []LangValue {
	raw, ok := n[key]
	if !ok {
		return nil
	}

	var items []interface{}
	switch typed := raw.(type) {
	case []interface{}:
		items = typed
	case map[string]interface{}:
		items = []interface{}{typed}
	default:
		return nil
	}

	var values []LangValue
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		value, _ := entry["@value"].(string)
		lang, _ := entry["@language"].(string)
		if value != "" {
			values = append(values, LangValue{Lang: lang, Value: value})
		}
	}
	return values
}

// Entity returns the wd: node for the given Q-ID, or nil
func (d *Document) Entity(qid string) Node {
	target := "wd:" + qid
	for _, node := range d.Graph {
		if node.ID() == target {
			return node
		}
	}
	return nil
}

// Labels returns all label values for an entity
func (d *Document) Labels(qid string) []LangValue {
	node := d.Entity(qid)
	if node == nil {
		return nil
	}
	return node.LangValues("label")
}

// Descriptions returns all description values for an entity
func (d *Document) Descriptions(qid string) []LangValue {
	node := d.Entity(qid)
	if node == nil {
		return nil
	}
	return node.LangValues("description")
}

// Label returns the label for an entity in the given language
func (d *Document) Label(qid, lang string) (string, bool) {
	for _, lv := range d.Labels(qid) {
		if lv.Lang == lang {
			return lv.Value, true
		}
	}
	return "", false
}

// PropertyString returns a direct string property of an entity, e.g.
// P569 (date of birth) on the entity node.
func (d *Document) PropertyString(qid, property string) (string, bool) {
	node := d.Entity(qid)
	if node == nil {
		return "", false
	}
	return node.String(property)
}

// HasCantoneseLabel reports whether any entity in the document carries a
// label in one of the given language codes (yue, falling back to zh-hk).
func (d *Document) HasCantoneseLabel(langs ...string) bool {
	for _, node := range d.Graph {
		for _, lv := range node.LangValues("label") {
			for _, lang := range langs {
				if lv.Lang == lang {
					return true
				}
			}
		}
	}
	return false
}
