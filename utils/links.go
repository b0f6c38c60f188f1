package utils

import (
	"net/url"
	"strings"
)

// IsHTTPSURL reports whether s is empty or a well-formed https:// URL.
// Meeting links, cover images and file URLs must all be HTTPS.
func IsHTTPSURL(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, "https") && u.Host != ""
}
