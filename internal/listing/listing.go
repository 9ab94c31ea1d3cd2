package listing

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Visibility decides which lifecycle states a read returns.
type Visibility int

const (
	ActiveOnly Visibility = iota
	IncludeInactive
	InactiveOnly
)

// VisibilityFor maps the caller's privilege to the default list visibility.
func VisibilityFor(privileged bool) Visibility {
	if privileged {
		return IncludeInactive
	}
	return ActiveOnly
}

type Params struct {
	Page   int
	Limit  int
	SortBy string
	Desc   bool
	Filter string
}

// FromValues reads page, limit, sortBy|sort, sortOrder|order and filter.
// Out-of-range page or limit values fall back to the defaults.
func FromValues(q url.Values) Params {
	p := Params{
		Page:   DefaultPage,
		Limit:  DefaultLimit,
		SortBy: first(q, "sortBy", "sort"),
		Filter: strings.TrimSpace(q.Get("filter")),
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 && n <= MaxLimit {
		p.Limit = n
	}

	p.Desc = strings.EqualFold(first(q, "sortOrder", "order"), "DESC")

	return p
}

func first(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// OrderClause resolves SortBy through the allowed map (public name to
// column) and falls back to def. The result is safe to pass to ORDER BY.
func (p Params) OrderClause(allowed map[string]string, def string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = def
	}
	if p.Desc {
		return col + " DESC"
	}
	return col + " ASC"
}
