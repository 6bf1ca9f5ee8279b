// FILE: speechrules/prefs/loader.go
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Namespaces recognized at the top level of a preference document. Anything
// else at the top level is ignored.
var preferenceNamespaces = []string{"Speech", "Navigation", "Braille"}

// maxFlattenDepth bounds the recursive descent through nested mappings. The
// documented schema is two levels deep; the headroom covers hand-rolled files.
const maxFlattenDepth = 4

// LoadPreferenceFiles merges the preference files at paths, in order, over a
// copy of defaults. Later files win per key. A file that cannot be used
// contributes nothing and is reported through log; the accumulated state is
// never partially overwritten by a broken file.
func LoadPreferenceFiles(defaults PreferenceSet, paths []string, log Logger) PreferenceSet {
	merged := defaults.Clone()
	for _, path := range paths {
		applyPreferenceFile(merged, path, log)
	}
	return merged
}

// applyPreferenceFile loads one document and flattens its namespaces into dst.
func applyPreferenceFile(dst PreferenceSet, path string, log Logger) {
	root, err := readDocument(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("preference file missing", "path", path)
		} else {
			log.Error("ignoring unusable preference file", "path", path, "error", err)
		}
		return
	}

	record, ok := asMapping(root)
	if !ok {
		log.Error("ignoring preference file without a top-level record", "path", path)
		return
	}

	for _, namespace := range preferenceNamespaces {
		value, present := record[namespace]
		if !present {
			log.Warn("preference namespace missing", "namespace", namespace, "path", path)
			continue
		}
		if !isMapping(value) {
			log.Warn("preference namespace is not a mapping", "namespace", namespace, "path", path)
			continue
		}
		flattenInto(dst, value, "", path, 0, log)
	}
}

// flattenInto walks a namespace mapping and stores its scalar leaves in dst.
// Top-level entries keep their bare key; nested mappings prepend "<key>_" to
// every descendant. Sequences and non-text keys are skipped with a
// diagnostic, never aborting the rest of the namespace.
func flattenInto(dst PreferenceSet, node any, prefix, path string, depth int, log Logger) {
	if depth > maxFlattenDepth {
		log.Warn("preference nesting too deep", "prefix", prefix, "path", path)
		return
	}

	switch m := node.(type) {
	case map[string]any:
		for key, value := range m {
			flattenEntry(dst, key, value, prefix, path, depth, log)
		}
	case map[any]any:
		for key, value := range m {
			name, ok := key.(string)
			if !ok {
				log.Warn("ignoring non-text preference key", "key", fmt.Sprintf("%v", key), "path", path)
				continue
			}
			flattenEntry(dst, name, value, prefix, path, depth, log)
		}
	}
}

// flattenEntry stores one key's value, descending when the value is itself a
// mapping.
func flattenEntry(dst PreferenceSet, key string, value any, prefix, path string, depth int, log Logger) {
	name := prefix + strings.TrimSpace(key)
	switch value.(type) {
	case map[string]any, map[any]any:
		flattenInto(dst, value, name+"_", path, depth+1, log)
	case []any:
		log.Warn("sequence values are not allowed in preferences", "key", name, "path", path)
	default:
		v, ok := valueFromAny(value)
		if !ok {
			log.Warn("unsupported preference value", "key", name, "path", path, "type", fmt.Sprintf("%T", value))
			return
		}
		dst.Set(name, v)
	}
}

// asMapping returns the string-keyed form of a mapping node. Non-text keys
// cannot name a namespace and are dropped at this level.
func asMapping(node any) (map[string]any, bool) {
	switch m := node.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for key, value := range m {
			if name, ok := key.(string); ok {
				out[name] = value
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// isMapping reports whether node is a mapping of either parsed shape.
func isMapping(node any) bool {
	switch node.(type) {
	case map[string]any, map[any]any:
		return true
	default:
		return false
	}
}
