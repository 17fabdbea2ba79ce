// Package tbx converts between the external URIs a client sends over HTTP
// and the internal URNs the triple store adapter and lifecycle engine use as
// subjects. Keeping URNs in a closed, webroot-independent namespace lets the
// store be relocated or mirrored without rewriting stored triples.
package tbx

import (
	"strings"
)

const (
	// NSFcres is the namespace every addressable resource's URN lives in.
	NSFcres = "info:fcres:"
	// NSFcsystem holds reserved, non-addressable system URNs.
	NSFcsystem = "info:fcsystem:"

	// RootURN is the URN of the repository root resource.
	RootURN = NSFcsystem + "root"
	// MetaGraphURN is the discovery graph recording primaryTopic per graph.
	MetaGraphURN = NSFcsystem + "meta"
	// HistoricGraphURN is the graph recording version/tombstone history.
	HistoricGraphURN = NSFcsystem + "historic"
)

// Toolbox converts between a single configured webroot and the internal URN
// space. It holds no mutable state and is safe for concurrent use.
type Toolbox struct {
	webroot string
}

// New builds a Toolbox bound to the given webroot. webroot must not carry a
// trailing slash.
func New(webroot string) *Toolbox {
	return &Toolbox{webroot: strings.TrimRight(webroot, "/")}
}

// UIDToURI renders a resource uid as an externally-addressable URI. The
// empty uid maps to the webroot itself.
func (t *Toolbox) UIDToURI(uid string) string {
	if uid == "" {
		return t.webroot
	}

	return t.webroot + "/" + uid
}

// URIToUID is the inverse of UIDToURI. It returns ("", true) for the
// webroot itself, and ("", false) when uri does not address a resource
// under this webroot (the caller should treat this as "not our resource",
// matching the reference implementation's None for fcsystem:root).
func (t *Toolbox) URIToUID(uri string) (uid string, ok bool) {
	switch {
	case uri == RootURN:
		return "", false
	case uri == t.webroot:
		return "", true
	case strings.HasPrefix(uri, t.webroot+"/"):
		return strings.TrimPrefix(uri, t.webroot+"/"), true
	case strings.HasPrefix(uri, NSFcres):
		return strings.TrimPrefix(uri, NSFcres), true
	default:
		return "", false
	}
}

// URNForUID returns the internal URN for a resource uid. The empty uid maps
// to the repository root.
func URNForUID(uid string) string {
	if uid == "" {
		return RootURN
	}

	return NSFcres + uid
}

// UIDForURN is the inverse of URNForUID.
func UIDForURN(urn string) string {
	if urn == RootURN {
		return ""
	}

	return strings.TrimPrefix(urn, NSFcres)
}

// LocalizeString rewrites every occurrence of the webroot (with or without
// a trailing path segment) in a textual RDF payload to the internal URN
// form. URIs outside the webroot are left untouched, matching the reference
// localize_ext_str semantics used when ingesting client-provided graphs.
func (t *Toolbox) LocalizeString(s string) string {
	if t.webroot == "" {
		return s
	}

	if s != t.webroot && strings.HasPrefix(s, t.webroot) {
		s = strings.TrimSuffix(s, "/")
	}

	out := strings.ReplaceAll(s, t.webroot+"/", NSFcres)
	out = strings.ReplaceAll(out, t.webroot, RootURN)

	return out
}

// GlobalizeString is the inverse of LocalizeString: it rewrites internal
// URNs back to externally-addressable webroot URIs for responses sent to
// clients.
func (t *Toolbox) GlobalizeString(s string) string {
	out := strings.ReplaceAll(s, NSFcres, t.webroot+"/")
	out = strings.ReplaceAll(out, RootURN, t.webroot)

	return out
}
