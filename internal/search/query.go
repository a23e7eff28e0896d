package search

import (
	"errors"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

const unknownDomain = "unknown"

var ErrEmptyQuery = errors.New("at least one of keyword, subject, type or difficulty is required")

// Filters narrow a provider search. Every non-empty field becomes part of the
// query text.
type Filters struct {
	Keyword    string `json:"keyword"`
	Subject    string `json:"subject"`
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
}

// Item is one normalized provider hit. Subject, Difficulty and Type echo the
// caller's filters.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Type        string `json:"type,omitempty"`
}

type Result struct {
	Items        []Item `json:"items"`
	TotalResults int64  `json:"totalResults"`
	Query        string `json:"query"`
	StartIndex   int    `json:"startIndex"`
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
}

// BuildQuery joins the trimmed filter values in keyword, subject, type,
// difficulty order.
func BuildQuery(f Filters) (string, error) {
	parts := make([]string, 0, 4)
	for _, v := range []string{f.Keyword, f.Subject, f.Type, f.Difficulty} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "", ErrEmptyQuery
	}
	return strings.Join(parts, " "), nil
}

// NormalizePaging replaces a page or size below 1 with the defaults.
func NormalizePaging(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return page, size
}

// StartIndex converts a 1-based page into the provider's 1-based result offset.
func StartIndex(page, size int) int {
	page, size = NormalizePaging(page, size)
	return (page-1)*size + 1
}

// ExtractDomain returns the host between "://" and the next "/", "?" or "#".
// Anything without a scheme separator yields "unknown".
func ExtractDomain(rawURL string) string {
	_, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return unknownDomain
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return unknownDomain
	}
	return rest
}
