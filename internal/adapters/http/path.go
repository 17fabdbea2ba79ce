package http

import "strings"

// pathKind classifies a wildcard-captured /ldp path into the LDP surface's
// four addressable shapes, since fiber's wildcard route matching can't
// itself distinguish "<uid>", "<uid>/fcr:versions", "<uid>/fcr:versions/<ver>"
// and "<uid>/fcr:tombstone" at the routing layer.
type pathKind int

const (
	kindResource pathKind = iota
	kindVersions
	kindVersion
	kindTombstone
)

const (
	versionsSegment  = "fcr:versions"
	tombstoneSegment = "fcr:tombstone"
)

// ldpPath is the parsed shape of a captured /ldp/* path.
type ldpPath struct {
	uid string
	kind pathKind
	ver  string
}

// parseLDPPath splits raw (the wildcard capture after "/ldp/") into a target
// uid and the operation family the trailing segment(s) select.
func parseLDPPath(raw string) ldpPath {
	raw = strings.Trim(raw, "/")
	if raw == "" {
		return ldpPath{uid: "", kind: kindResource}
	}

	segs := strings.Split(raw, "/")
	n := len(segs)

	switch {
	case segs[n-1] == tombstoneSegment:
		return ldpPath{uid: strings.Join(segs[:n-1], "/"), kind: kindTombstone}
	case n >= 2 && segs[n-2] == versionsSegment:
		return ldpPath{uid: strings.Join(segs[:n-2], "/"), kind: kindVersion, ver: segs[n-1]}
	case segs[n-1] == versionsSegment:
		return ldpPath{uid: strings.Join(segs[:n-1], "/"), kind: kindVersions}
	default:
		return ldpPath{uid: raw, kind: kindResource}
	}
}
