package tbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUIDToURIAndBack(t *testing.T) {
	tb := New("http://example.org/ldp")

	assert.Equal(t, "http://example.org/ldp/1234", tb.UIDToURI("1234"))
	assert.Equal(t, "http://example.org/ldp", tb.UIDToURI(""))

	uid, ok := tb.URIToUID("http://example.org/ldp/test01")
	assert.True(t, ok)
	assert.Equal(t, "test01", uid)

	uid, ok = tb.URIToUID("http://example.org/ldp/test01/test02")
	assert.True(t, ok)
	assert.Equal(t, "test01/test02", uid)

	uid, ok = tb.URIToUID("http://example.org/ldp")
	assert.True(t, ok)
	assert.Equal(t, "", uid)

	_, ok = tb.URIToUID(RootURN)
	assert.False(t, ok)
}

func TestURNForUID(t *testing.T) {
	assert.Equal(t, RootURN, URNForUID(""))
	assert.Equal(t, NSFcres+"1234", URNForUID("1234"))
	assert.Equal(t, "", UIDForURN(RootURN))
	assert.Equal(t, "1234/5678", UIDForURN(NSFcres+"1234/5678"))
}

func TestLocalizeGlobalizeStringRoundTrip(t *testing.T) {
	tb := New("http://example.org/ldp")

	assert.Equal(t, NSFcres+"test/uid", tb.LocalizeString("http://example.org/ldp/test/uid"))
	assert.Equal(t, RootURN, tb.LocalizeString("http://example.org/ldp"))
	assert.Equal(t, "http://bogus.org/test/uid", tb.LocalizeString("http://bogus.org/test/uid"))

	assert.Equal(t,
		"http://example.org/ldp/test/uid",
		tb.GlobalizeString(tb.LocalizeString("http://example.org/ldp/test/uid")))
}
