// File: speechrules/prefs/io.go
package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MaxDocumentSize bounds how much of a preference file is read.
const MaxDocumentSize = 1 << 20

// readDocument reads one preference file and returns the root of its parsed
// tree. Exactly one document per file; a missing file surfaces as
// fs.ErrNotExist so callers can tell it apart from parse failures.
func readDocument(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%q exceeds maximum size %d bytes", path, MaxDocumentSize)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("unable to determine document format for %q", path)
		}
	}

	return parseDocument(data, format, path)
}

// parseDocument parses data in the given format, enforcing the one-document,
// one-top-level-record rule.
func parseDocument(data []byte, format, path string) (any, error) {
	switch format {
	case "yaml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		var root any
		count := 0
		for {
			var doc any
			err := decoder.Decode(&doc)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to parse YAML in %q: %w", path, err)
			}
			if count == 0 {
				root = doc
			}
			count++
		}
		if count != 1 {
			return nil, fmt.Errorf("%q should contain a single document, found %d", path, count)
		}
		return root, nil

	case "toml":
		doc := make(map[string]any)
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML in %q: %w", path, err)
		}
		return doc, nil

	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		var root any
		if err := decoder.Decode(&root); err != nil {
			return nil, fmt.Errorf("failed to parse JSON in %q: %w", path, err)
		}
		if decoder.More() {
			return nil, fmt.Errorf("%q should contain a single document", path)
		}
		return root, nil

	default:
		return nil, fmt.Errorf("unsupported document format %q for %q", format, path)
	}
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".conf", ".config":
		// Try to detect from content
		return ""
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try YAML (superset of JSON, so check after JSON)
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	// Try TOML last
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
