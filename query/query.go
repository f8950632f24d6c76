// Package query implements the in-memory half of every list endpoint:
// equality and search filters over a loaded collection, pagination windows
// with their metadata, and the leaderboard top-N sort.
package query

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when the page parameter is absent or unusable.
	DefaultPage = 1
	// DefaultLimit is used when the limit parameter is absent or unusable.
	DefaultLimit = 10
)

// Pagination is the metadata block returned alongside every paginated list.
// Total counts the post-filter, pre-window records.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Params reads page and limit from the request query string. Missing or
// non-positive values fall back to the defaults.
func Params(r *http.Request) (page, limit int) {
	page = intParam(r, "page", DefaultPage)
	limit = intParam(r, "limit", DefaultLimit)
	return page, limit
}

func intParam(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Paginate slices the 1-indexed page window out of items and returns it with
// its metadata. Pages is zero when items is empty. A page past the end yields
// an empty window, never an error.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	total := len(items)
	meta := Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: Pages(total, limit),
	}

	start := (page - 1) * limit
	if start >= total {
		return []T{}, meta
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], meta
}

// Pages is ceil(total/limit), 0 when total is 0.
func Pages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Filter returns the items for which keep is true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// TopN sorts a copy of items descending by score and truncates it to limit.
// The sort is stable so ties keep their insertion order.
func TopN[T any](items []T, limit int, score func(T) float64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i]) > score(out[j])
	})
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// MatchesSearch reports whether term is contained, case-insensitively, in any
// of the fields. An empty term matches everything.
func MatchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// IsTrue implements the boolean query-parameter convention: only the literal
// "true", compared case-insensitively, counts as true.
func IsTrue(raw string) bool {
	return strings.EqualFold(raw, "true")
}
