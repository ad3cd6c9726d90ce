package arweave

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleTxID = "dQzTM9hXV5MD1fRniOKI3MvPF_-8b2XDLmpfcMN9hi8"

func TestIsValidTxID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"valid 43-char id", sampleTxID, true},
		{"valid all underscores", strings.Repeat("_", 43), true},
		{"valid all dashes", strings.Repeat("-", 43), true},
		{"empty", "", false},
		{"too short", sampleTxID[:42], false},
		{"too long", sampleTxID + "x", false},
		{"plus outside alphabet", strings.Repeat("a", 42) + "+", false},
		{"slash outside alphabet", strings.Repeat("a", 42) + "/", false},
		{"equals padding", strings.Repeat("a", 42) + "=", false},
		{"embedded space", strings.Repeat("a", 21) + " " + strings.Repeat("a", 21), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidTxID(tt.id))
		})
	}
}

func TestExtractTxID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"arweave.net gateway", "https://x.arweave.net/" + sampleTxID, sampleTxID, true},
		{"ar.io gateway", "https://x.ar.io/" + sampleTxID, sampleTxID, true},
		{"bare arweave.net", "https://arweave.net/" + sampleTxID, sampleTxID, true},
		{"generic trailing segment", "https://gateway.example.com/" + sampleTxID, sampleTxID, true},
		{"no id", "https://arweave.net/", "", false},
		{"short segment", "https://arweave.net/abc123", "", false},
		{"not a url at all", "hello world", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTxID(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractTxIDRoundTrip(t *testing.T) {
	for _, host := range []string{"arweave.net", "ar.io"} {
		got, ok := ExtractTxID("https://x." + host + "/" + sampleTxID)
		assert.True(t, ok, host)
		assert.Equal(t, sampleTxID, got, host)
	}
}

func TestExtractTxIDHostPatternWinsOverTrailing(t *testing.T) {
	other := strings.Repeat("b", 43)
	// Both the host-qualified and the trailing-segment pattern could
	// match here; the host-qualified one must win.
	got, ok := ExtractTxID("https://x.arweave.net/" + sampleTxID + "/" + other)
	assert.True(t, ok)
	assert.Equal(t, sampleTxID, got)
}

func TestPermawebURLPattern(t *testing.T) {
	tests := []struct {
		name string
		url  string
		ok   bool
	}{
		{"accepted", "https://foo.arweave.net/abc123", true},
		{"accepted full id", "https://foo.arweave.net/" + sampleTxID, true},
		{"wrong scheme", "http://foo.arweave.net/abc123", false},
		{"empty segment", "https://foo.arweave.net/", false},
		{"no subdomain", "https://arweave.net/abc123", false},
		{"wrong host", "https://foo.example.net/abc123", false},
		{"extra path segment", "https://foo.arweave.net/abc/def", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, PermawebURLPattern.MatchString(tt.url))
		})
	}
}
