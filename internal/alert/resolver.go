package alert

import (
	"net/url"
	"regexp"
	"strings"
)

var redirectURLParam = regexp.MustCompile(`url=([^&]+)`)

// ResolveURL unwraps a Google tracking link to the underlying article URL.
// Plain http(s) links pass through; anything else yields an empty string,
// malformed input included.
func ResolveURL(href string) string {
	if strings.Contains(href, "google.com/url?") {
		m := redirectURLParam.FindStringSubmatch(href)
		if m == nil {
			return ""
		}
		decoded, err := url.QueryUnescape(m[1])
		if err != nil {
			return ""
		}
		return decoded
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}
