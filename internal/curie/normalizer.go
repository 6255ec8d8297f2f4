// Package curie canonicalizes external database identifiers into a uniform
// namespace:localId form. Source exports are inconsistent about prefixes
// (MIM vs OMIM, doubled HGNC:HGNC, mixed-case Ensembl); every parser routes
// raw cross-reference tokens through Clean so that the same external record
// always spells its id the same way across source files.
package curie

import (
	"regexp"
	"strings"
)

type rewrite struct {
	pattern *regexp.Regexp
	replace string
}

// The rewrite table is ordered and applied rule by rule; downstream
// equivalence links depend on these exact substitutions, so the set must not
// be "cleaned up" or reordered.
var rewrites = []rewrite{
	// MIM:123456 --> OMIM:123456
	{regexp.MustCompile(`^MIM`), "OMIM"},
	// HGNC:HGNC:123 --> HGNC:123
	{regexp.MustCompile(`^HGNC:HGNC`), "HGNC"},
	// Ensembl:ENSG... --> ENSEMBL:ENSG...
	{regexp.MustCompile(`^Ensembl`), "ENSEMBL"},
	// MGI:MGI:123 --> MGI:123
	{regexp.MustCompile(`^MGI:MGI`), "MGI"},
	{regexp.MustCompile(`FLYBASE`), "FlyBase"},
}

// Clean rewrites a raw cross-reference token into its canonical spelling.
// Tokens with no matching rule pass through unchanged; Clean is idempotent
// over its own output.
func Clean(token string) string {
	for _, r := range rewrites {
		token = r.pattern.ReplaceAllString(token, r.replace)
	}
	return token
}

// Make joins a namespace and a local id into a CURIE.
func Make(namespace, localID string) string {
	return namespace + ":" + localID
}

// Prefix returns the namespace part of a CURIE, or "" if the token has no
// colon.
func Prefix(id string) string {
	if i := strings.Index(id, ":"); i >= 0 {
		return id[:i]
	}
	return ""
}

// LocalID returns the part of a CURIE after the first colon.
func LocalID(id string) string {
	if i := strings.Index(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}
