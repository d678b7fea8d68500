package repository

import "strings"

// ListQuery is the explicit per-request shape of a listing: a free-text
// filter plus a sort field and direction. It is constructed once per
// request from the query string and validated here against a whitelist —
// raw request values are never interpolated into SQL.
type ListQuery struct {
	Filter    string // case-insensitive substring match
	SortField string // one of the whitelisted sortable columns
	SortOrder string // "asc" or "desc"
}

// sortableColumns are the fields both listings may sort by. The map value
// is the literal column name spliced into ORDER BY after the lookup.
var sortableColumns = map[string]string{
	"name":    "name",
	"email":   "email",
	"address": "address",
}

// orderBy resolves the ListQuery into a safe "column direction" pair.
// Unknown sort fields fall back to name, unknown directions to ascending.
func (q ListQuery) orderBy() (col, dir string) {
	col, ok := sortableColumns[strings.ToLower(strings.TrimSpace(q.SortField))]
	if !ok {
		col = "name"
	}
	dir = "ASC"
	if strings.EqualFold(strings.TrimSpace(q.SortOrder), "desc") {
		dir = "DESC"
	}
	return col, dir
}

// like builds the argument for a LOWER(col) LIKE ? substring match.
func (q ListQuery) like() string {
	return "%" + strings.ToLower(q.Filter) + "%"
}
