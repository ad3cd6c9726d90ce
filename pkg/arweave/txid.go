package arweave

import "regexp"

// txIDPattern matches an Arweave transaction id: 43 characters of the
// base64url alphabet.
var txIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{43}$`)

// PermawebURLPattern is the full-URL shape accepted by the migrate flow:
// an arweave.net subdomain gateway URL whose last path segment is the
// transaction id.
var PermawebURLPattern = regexp.MustCompile(`^https://[a-zA-Z0-9_-]+\.arweave\.net/[a-zA-Z0-9_-]+$`)

// extractPatterns are tried in order. The host-qualified patterns come
// first so a malformed host cannot satisfy the generic trailing-segment
// rule ahead of a correct one. The order is relied on by existing URLs;
// do not reorder.
var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`arweave\.net/([A-Za-z0-9_-]{43})`),
	regexp.MustCompile(`ar\.io/([A-Za-z0-9_-]{43})`),
	regexp.MustCompile(`/([A-Za-z0-9_-]{43})$`),
}

// IsValidTxID reports whether id is a well-formed Arweave transaction id.
func IsValidTxID(id string) bool {
	return txIDPattern.MatchString(id)
}

// ExtractTxID pulls a transaction id out of a permaweb URL. The first
// pattern whose captured segment is a valid transaction id wins.
func ExtractTxID(url string) (string, bool) {
	for _, p := range extractPatterns {
		m := p.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		if IsValidTxID(m[1]) {
			return m[1], true
		}
	}
	return "", false
}
