package models

import "strings"

const keyPrefix = "civreg:ratelimit:"

// SanitizeKeySegment escapes delimiter characters in rate limit key segments
// so a caller-controlled value containing ':' cannot address another bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// NewIPKey builds the bucket key for requests to scope from ip.
func NewIPKey(scope, ip string) string {
	return keyPrefix + SanitizeKeySegment(scope) + ":ip:" + SanitizeKeySegment(ip)
}
