package utils

import (
	"net/url"
	"strings"
)

// NormalizeBaseUrl makes sure a base URL ends with a path separator by
// truncating after the last "/". A URL that already ends with "/" is returned
// unchanged. Chapter pages, the index page, and the bare book URL all
// normalize to the same base this way.
func NormalizeBaseUrl(baseUrl string) string {
	if strings.HasSuffix(baseUrl, "/") {
		return baseUrl
	}
	if idx := strings.LastIndex(baseUrl, "/"); idx != -1 {
		return baseUrl[:idx+1]
	}
	return baseUrl
}

// ResolveRef resolves a reference against a base URL. An already-absolute
// reference wins over the base and is returned unchanged, so resolution is
// idempotent. Unparseable input is returned as-is rather than dropped.
func ResolveRef(baseUrl string, ref string) string {
	base, err := url.Parse(NormalizeBaseUrl(baseUrl))
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}
