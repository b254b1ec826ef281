// Package matching scores keyword overlap between a subject and a pool of
// candidates and picks the best match.
package matching

import (
	"sort"
	"strings"
)

// KeywordSet is a set of normalized keywords
type KeywordSet map[string]struct{}

// Normalize lower-cases and trims every keyword and collapses duplicates.
// A nil or empty list yields an empty set. Whitespace-only keywords become
// the empty string and are kept.
func Normalize(keywords []string) KeywordSet {
	set := make(KeywordSet, len(keywords))
	for _, kw := range keywords {
		set[strings.TrimSpace(strings.ToLower(kw))] = struct{}{}
	}
	return set
}

// Len returns the number of keywords in the set
func (s KeywordSet) Len() int {
	return len(s)
}

// Contains reports whether the normalized keyword is in the set
func (s KeywordSet) Contains(keyword string) bool {
	_, ok := s[keyword]
	return ok
}

// Keywords returns the members in sorted order
func (s KeywordSet) Keywords() []string {
	out := make([]string, 0, len(s))
	for kw := range s {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the keywords present in both sets
func (s KeywordSet) Intersect(other KeywordSet) KeywordSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	shared := make(KeywordSet)
	for kw := range small {
		if large.Contains(kw) {
			shared[kw] = struct{}{}
		}
	}
	return shared
}
