package common

import (
	"net/url"
	"strconv"
	"strings"
)

// ParsePositiveInt parses positive integers with fallback.
func ParsePositiveInt(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback, false
	}
	return parsed, true
}

// PageParams reads page and limit from the query. Bad values fall back; limit is capped.
func PageParams(query url.Values, defaultLimit int) (page, limit int) {
	page, _ = ParsePositiveInt(query.Get("page"), 1)
	limit, _ = ParsePositiveInt(query.Get("limit"), defaultLimit)
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// Pagination is the metadata block of paginated lists.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Total: total, Page: page, Pages: pages}
}
