// Package catalog implements the asset catalog: parsing a JSON catalog
// document into raw entries, then validating and hashing those entries
// into a lookup table keyed by AssetId.
package catalog

import (
	"fmt"

	"github.com/ohler55/ojg/oj"

	"github.com/spaghettifunk/animavault/engine/asset/asserr"
)

// RawEntry is one unvalidated, unhashed catalog row as the parser reads
// it off the wire: plain strings, no id/type hashing, so that concern
// stays isolated in AssetCatalog.
type RawEntry struct {
	Id   string
	Type string
	Path string
}

const supportedVersion = 1

// ParseCatalog decodes a UTF-8 JSON catalog document of the form
// { "version": 1, "assets": [...] } or the object-keyed form
// { "version": 1, "assets": { "<id>": {"type":…, "path":…}, … } }.
func ParseCatalog(data []byte) ([]RawEntry, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, asserr.New(asserr.ParseFailed, "catalog: invalid JSON", err.Error())
	}

	doc, ok := v.(map[string]interface{})
	if !ok {
		return nil, asserr.New(asserr.ParseFailed, "catalog: document is not an object", "")
	}

	version, err := intField(doc, "version")
	if err != nil {
		return nil, asserr.New(asserr.ParseFailed, "catalog: missing or invalid version", err.Error())
	}
	if version != supportedVersion {
		return nil, asserr.New(asserr.ParseFailed, "catalog: unsupported version", fmt.Sprintf("%d", version))
	}

	assets, ok := doc["assets"]
	if !ok {
		return nil, asserr.New(asserr.ParseFailed, "catalog: missing assets field", "")
	}

	switch a := assets.(type) {
	case []interface{}:
		return parseArrayForm(a)
	case map[string]interface{}:
		return parseObjectForm(a)
	default:
		return nil, asserr.New(asserr.ParseFailed, "catalog: assets must be an array or object", "")
	}
}

func parseArrayForm(items []interface{}) ([]RawEntry, error) {
	out := make([]RawEntry, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, asserr.New(asserr.InvalidCatalogEntry, "catalog: entry is not an object", fmt.Sprintf("index %d", i))
		}
		id, err := stringField(m, "id")
		if err != nil {
			return nil, asserr.New(asserr.InvalidCatalogEntry, "catalog: entry missing id", fmt.Sprintf("index %d", i))
		}
		typ, err := stringField(m, "type")
		if err != nil {
			return nil, asserr.New(asserr.InvalidCatalogEntry, "catalog: entry missing type", id)
		}
		p, err := stringField(m, "path")
		if err != nil {
			return nil, asserr.New(asserr.InvalidCatalogEntry, "catalog: entry missing path", id)
		}
		out = append(out, RawEntry{Id: id, Type: typ, Path: p})
	}
	return out, nil
}

func parseObjectForm(obj map[string]interface{}) ([]RawEntry, error) {
	out := make([]RawEntry, 0, len(obj))
	for id, item := range obj {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, asserr.New(asserr.InvalidCatalogEntry, "catalog: entry is not an object", id)
		}
		typ, err := stringField(m, "type")
		if err != nil {
			return nil, asserr.New(asserr.InvalidCatalogEntry, "catalog: entry missing type", id)
		}
		p, err := stringField(m, "path")
		if err != nil {
			return nil, asserr.New(asserr.InvalidCatalogEntry, "catalog: entry missing path", id)
		}
		out = append(out, RawEntry{Id: id, Type: typ, Path: p})
	}
	return out, nil
}

func stringField(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("field %q must be a non-empty string", key)
	}
	return s, nil
}

func intField(m map[string]interface{}, key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("field %q must be a number", key)
	}
}
