package vcon

import (
	"bytes"
	"encoding/json"
)

// IndexList holds one or more indices into an ordered collection. The wire
// form accepts either a bare number or an array of numbers; encoding always
// emits an array.
type IndexList []int

func (l *IndexList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var indices []int
		if err := json.Unmarshal(trimmed, &indices); err != nil {
			return err
		}
		*l = indices
		return nil
	}
	var single int
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*l = IndexList{single}
	return nil
}

// HashList holds one or more content-hash strings. The wire form accepts a
// bare string or an array of strings; encoding always emits an array.
type HashList []string

func (l *HashList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var hashes []string
		if err := json.Unmarshal(trimmed, &hashes); err != nil {
			return err
		}
		*l = hashes
		return nil
	}
	var single string
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*l = HashList{single}
	return nil
}

func knownSet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

// foldUnknown collects the raw keys of data that are not in the known set,
// decoded to plain values. Entities that carry a meta mapping merge the
// result into it; the document shape has nowhere else to keep such keys.
func foldUnknown(data []byte, known map[string]struct{}) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var folded map[string]any
	for key, value := range raw {
		if _, ok := known[key]; ok {
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return nil, err
		}
		if folded == nil {
			folded = map[string]any{}
		}
		folded[key] = decoded
	}
	return folded, nil
}

func mergeMeta(meta map[string]any, folded map[string]any) map[string]any {
	if len(folded) == 0 {
		return meta
	}
	if meta == nil {
		return folded
	}
	for key, value := range folded {
		if _, exists := meta[key]; !exists {
			meta[key] = value
		}
	}
	return meta
}

// strictDecode rejects unknown keys outright; used for entities that have
// no meta mapping to absorb them.
func strictDecode(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}
