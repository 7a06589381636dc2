package anchor

import (
	"net/url"
	"strings"
)

// FragmentID percent-encodes text into an identifier safe for use in an
// HTML name attribute and as a URL fragment. Spaces are encoded as %20,
// not +, so the result is uniform percent-encoding throughout.
//
// No uniqueness is enforced: two regions with identical trimmed text yield
// identical, colliding ids.
func FragmentID(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
