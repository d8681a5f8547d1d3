// Package pattern derives semantic patterns from computed insight cards and
// gives each one a stable identity.
package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/quillt/insight-engine/internal/model"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// MakeID builds the deterministic identity string for a pattern:
// "<kind>:<k1>=<v1>,<k2>=<v2>,..." with keys sorted lexicographically and
// values normalized. Identical semantic pattern yields a byte-identical id
// regardless of attribute order or originating window. Empty attribute maps
// are legal and produce "<kind>:".
func MakeID(kind model.PatternKind, attrs map[string]any) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+normalizeValue(attrs[k]))
	}
	return string(kind) + ":" + strings.Join(parts, ",")
}

// normalizeValue lower-cases, trims, strips non-word characters, and
// collapses internal whitespace to hyphens. Numbers format without
// locale-dependent noise.
func normalizeValue(v any) string {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case float64:
		s = strconv.FormatFloat(x, 'g', -1, 64)
	default:
		s = fmt.Sprintf("%v", x)
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	return s
}
