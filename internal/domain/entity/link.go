package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs.
const maxURLLength = 2048

// IsArticleLink reports whether raw is an absolute http(s) URL with a host.
// Relative links, anchors, mailto:, javascript: and similar are rejected.
func IsArticleLink(raw string) bool {
	if raw == "" || len(raw) > maxURLLength {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// CleanLinks keeps the article links in raw, drops duplicates while keeping
// the first occurrence, and stops once limit links are collected. A limit of
// zero or less yields an empty, non-nil slice.
func CleanLinks(raw []string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(raw))
	cleaned := make([]string, 0, min(limit, len(raw)))
	for _, link := range raw {
		link = strings.TrimSpace(link)
		if !IsArticleLink(link) {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		cleaned = append(cleaned, link)
		if len(cleaned) >= limit {
			break
		}
	}
	return cleaned
}

// ValidateSourceURL checks the homepage URL given on the command line.
// Returns a ValidationError if the URL is empty, too long, or not http(s).
func ValidateSourceURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "source_url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "source_url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}
	if !IsArticleLink(rawURL) {
		return &ValidationError{Field: "source_url", Message: "URL must be absolute and use http or https scheme"}
	}
	return nil
}
