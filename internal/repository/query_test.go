package repository

import "testing"

func TestListQueryOrderBy(t *testing.T) {
	cases := []struct {
		field, order string
		wantCol      string
		wantDir      string
	}{
		{"", "", "name", "ASC"},
		{"name", "asc", "name", "ASC"},
		{"email", "desc", "email", "DESC"},
		{"address", "DESC", "address", "DESC"},
		{"Name", "Desc", "name", "DESC"},
		{"created_at", "asc", "name", "ASC"},         // not whitelisted
		{"; DROP TABLE users", "asc", "name", "ASC"}, // never reaches SQL
		{"name", "sideways", "name", "ASC"},          // unknown direction
	}
	for _, tc := range cases {
		q := ListQuery{SortField: tc.field, SortOrder: tc.order}
		col, dir := q.orderBy()
		if col != tc.wantCol || dir != tc.wantDir {
			t.Errorf("orderBy(%q,%q) = (%q,%q), want (%q,%q)",
				tc.field, tc.order, col, dir, tc.wantCol, tc.wantDir)
		}
	}
}

func TestListQueryLike(t *testing.T) {
	if got := (ListQuery{Filter: "MaRkEt"}).like(); got != "%market%" {
		t.Errorf("like() = %q, want %%market%%", got)
	}
	if got := (ListQuery{}).like(); got != "%%" {
		t.Errorf("empty filter like() = %q, want %%%%", got)
	}
}
