// FILE: speechrules/prefs/resolver.go
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FallbackChain is the ordered list of found paths for one resource, most
// general first. The rule engine loads every entry in order and lets later
// entries override earlier ones. Entry count never exceeds the locale depth
// plus one; position carries no meaning beyond relative precedence.
type FallbackChain []string

// maxLocaleSegments caps how many locale segments take part in the directory
// descent. The layout is language/region; anything deeper is ignored.
const maxLocaleSegments = 2

// DefaultFallbackLocale is the locale retried when the requested one has no
// usable resources.
const DefaultFallbackLocale = "en"

// ResolveChain finds every existing copy of fileName along the locale
// directory walk under rulesDir, most general first. When the locale yields
// nothing the resolution is retried once with fallbackLocale; an empty
// fallbackLocale disables the retry. Failure after the retry is fatal for
// the caller: without at least one copy of the file the engine has no
// baseline resource.
func ResolveChain(rulesDir, locale, fallbackLocale, fileName string, log Logger) (FallbackChain, error) {
	chain, err := resolveOnce(rulesDir, locale, fileName)
	if err == nil {
		return chain, nil
	}
	if fallbackLocale == "" || fallbackLocale == locale {
		return nil, err
	}

	log.Warn("locale has no usable resources, retrying with fallback",
		"locale", locale, "fallback", fallbackLocale, "file", fileName)
	chain, ferr := resolveOnce(rulesDir, fallbackLocale, fileName)
	if ferr != nil {
		return nil, fmt.Errorf("fallback locale %q failed after locale %q: %w", fallbackLocale, locale, ferr)
	}
	return chain, nil
}

// resolveOnce performs a single resolution pass for one locale.
func resolveOnce(rulesDir, locale, fileName string) (FallbackChain, error) {
	root := filepath.Clean(rulesDir)

	// Descend one segment at a time, stopping at the first missing directory.
	segments := strings.Split(locale, "-")
	if len(segments) > maxLocaleSegments {
		segments = segments[:maxLocaleSegments]
	}
	deepest := root
	for _, segment := range segments {
		// SECURITY: locale tags come from preference files; never let a
		// segment walk outside the rules tree.
		if segment == "" || segment == "." || segment == ".." || strings.ContainsAny(segment, `/\`) {
			break
		}
		next := filepath.Join(deepest, segment)
		if !dirExists(next) {
			break
		}
		deepest = next
	}
	if deepest == root {
		// Not even the language directory exists.
		return nil, fmt.Errorf("%w: locale %q under %q", ErrLocaleDirNotFound, locale, rulesDir)
	}

	// Walk back up toward the root, collecting the file wherever it exists.
	// Collection runs specific to general; the chain is handed out reversed.
	var found []string
	for dir := deepest; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, fileName)
		if fileExists(candidate) {
			found = append(found, candidate)
		}
		if dir == root {
			break
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %q for locale %q under %q", ErrResourceNotFound, fileName, locale, rulesDir)
	}

	chain := make(FallbackChain, 0, len(found))
	for i := len(found) - 1; i >= 0; i-- {
		chain = append(chain, found[i])
	}
	return chain, nil
}

// dirExists reports whether path names an existing directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
