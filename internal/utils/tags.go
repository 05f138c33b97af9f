// Tag helpers shared by the weather, analysis, and product layers.
//
// Tags are short labels ("soğuk", "casual", "yağmurlu") used both for
// weather-derived hints and catalog categorization. Matching is always
// case-insensitive with Turkish-aware lowercasing (dotted/dotless I), so
// every tag entering a comparison goes through NormalizeTags first.
package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerTR = cases.Lower(language.Turkish)

// NormalizeTag trims and lowercases a single tag using Turkish casing rules.
func NormalizeTag(s string) string {
	return lowerTR.String(strings.TrimSpace(s))
}

// NormalizeTags normalizes every element, drops empties, and removes
// duplicates while preserving first-seen order.
func NormalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// MergeTags returns the normalized set union of the given tag lists,
// preserving first-seen order across lists.
func MergeTags(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return NormalizeTags(all)
}

// SplitCSV splits a comma-separated tag string into trimmed, non-empty parts.
// It does not normalize; callers pass the result through NormalizeTags.
func SplitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
