package rdf

import (
	"crypto/sha1" //nolint:gosec // required for the premis:hasMessageDigest urn:sha1: form, not a security boundary
	"encoding/hex"
	"strings"
)

// Checksum computes a canonical digest of a graph for use as
// premis:hasMessageDigest. The graph is serialized as sorted N-Triples-like
// lines before hashing so the digest is insensitive to triple insertion
// order but sensitive to any change in triple content.
func Checksum(g *Graph) string {
	h := sha1.New() //nolint:gosec

	for _, t := range g.Triples() {
		h.Write([]byte(t.String())) //nolint:errcheck
		h.Write([]byte{'\n'})       //nolint:errcheck
	}

	return hex.EncodeToString(h.Sum(nil))
}

// MessageDigestURN formats a checksum as the urn:sha1:<hex> form the engine
// writes into premis:hasMessageDigest.
func MessageDigestURN(g *Graph) string {
	return "urn:sha1:" + Checksum(g)
}

// IsMessageDigestURN reports whether s looks like a digest this package produced.
func IsMessageDigestURN(s string) bool {
	return strings.HasPrefix(s, "urn:sha1:")
}
