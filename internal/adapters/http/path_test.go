package http

import "testing"

func TestParseLDPPath(t *testing.T) {
	cases := []struct {
		raw  string
		want ldpPath
	}{
		{"", ldpPath{uid: "", kind: kindResource}},
		{"1", ldpPath{uid: "1", kind: kindResource}},
		{"1/2", ldpPath{uid: "1/2", kind: kindResource}},
		{"1/fcr:versions", ldpPath{uid: "1", kind: kindVersions}},
		{"1/fcr:versions/v1", ldpPath{uid: "1", kind: kindVersion, ver: "v1"}},
		{"1/fcr:tombstone", ldpPath{uid: "1", kind: kindTombstone}},
	}

	for _, tc := range cases {
		got := parseLDPPath(tc.raw)
		if got != tc.want {
			t.Errorf("parseLDPPath(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}
