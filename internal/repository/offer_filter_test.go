package repository

import (
	"reflect"
	"strings"
	"testing"
)

func TestCompileFiltersWhitelist(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]string
	}{
		{name: "nil map", filters: nil},
		{name: "empty map", filters: map[string]string{}},
		{name: "only unknown names", filters: map[string]string{
			"owner":     "bob",
			"id":        "1",
			"1=1; DROP": "x",
		}},
		{name: "empty values dropped", filters: map[string]string{
			"brand": " , , ",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := CompileFilters(tt.filters, false)
			if where != "active = 1" {
				t.Errorf("where = %q, want bare active predicate", where)
			}
			if len(args) != 0 {
				t.Errorf("args = %v, want none", args)
			}

			where, args = CompileFilters(tt.filters, true)
			if where != "1=1" {
				t.Errorf("privileged where = %q, want 1=1", where)
			}
			if len(args) != 0 {
				t.Errorf("privileged args = %v, want none", args)
			}
		})
	}
}

func TestCompileFiltersMulti(t *testing.T) {
	where, args := CompileFilters(map[string]string{"brand": "Renault, Peugeot"}, false)
	wantFrag := "(LOWER(JSON_UNQUOTE(JSON_EXTRACT(informations, '$.brand'))) LIKE ? OR LOWER(JSON_UNQUOTE(JSON_EXTRACT(informations, '$.brand'))) LIKE ?)"
	if where != "active = 1 AND "+wantFrag {
		t.Fatalf("where = %q", where)
	}
	if !reflect.DeepEqual(args, []any{"%renault%", "%peugeot%"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestCompileFiltersMultiExact(t *testing.T) {
	where, args := CompileFilters(map[string]string{"gearbox": "manuelle"}, true)
	want := "(JSON_UNQUOTE(JSON_EXTRACT(informations, '$.gearbox')) = ?)"
	if where != want {
		t.Fatalf("where = %q, want %q", where, want)
	}
	if !reflect.DeepEqual(args, []any{"manuelle"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestCompileFiltersRangeSwap(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "ordered bounds", value: "10;50"},
		{name: "reversed bounds", value: "50;10"},
	}
	var wheres []string
	var argsList [][]any
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := CompileFilters(map[string]string{"price": tt.value}, true)
			wheres = append(wheres, where)
			argsList = append(argsList, args)
		})
	}
	if wheres[0] != wheres[1] {
		t.Errorf("predicates differ: %q vs %q", wheres[0], wheres[1])
	}
	if !reflect.DeepEqual(argsList[0], argsList[1]) {
		t.Errorf("args differ: %v vs %v", argsList[0], argsList[1])
	}
	if !reflect.DeepEqual(argsList[0], []any{10.0, 50.0}) {
		t.Errorf("args = %v, want [10 50]", argsList[0])
	}
}

func TestCompileFiltersRangeInt(t *testing.T) {
	where, args := CompileFilters(map[string]string{"mileage": "120000;30000"}, true)
	if where != "(mileage >= ? AND mileage <= ?)" {
		t.Fatalf("where = %q", where)
	}
	if !reflect.DeepEqual(args, []any{int64(30000), int64(120000)}) {
		t.Fatalf("args = %v", args)
	}
}

func TestCompileFiltersRangeMalformed(t *testing.T) {
	for _, bad := range []string{"10", "a;b", "10;", ";50"} {
		where, _ := CompileFilters(map[string]string{"price": bad}, false)
		if where != "active = 1" {
			t.Errorf("value %q: where = %q, want filter dropped", bad, where)
		}
	}
}

func TestCompileFiltersJSONArray(t *testing.T) {
	where, args := CompileFilters(map[string]string{"equipments_list": "GPS, Toit ouvrant"}, true)
	want := "(JSON_SEARCH(LOWER(equipments_list), 'all', ?) IS NOT NULL OR JSON_SEARCH(LOWER(equipments_list), 'all', ?) IS NOT NULL)"
	if where != want {
		t.Fatalf("where = %q", where)
	}
	if !reflect.DeepEqual(args, []any{"%gps%", "%toit ouvrant%"}) {
		t.Fatalf("args = %v", args)
	}
}

// Different filter names combine with AND; a filter's own value list
// combines with OR.
func TestCompileFiltersAndAcrossNames(t *testing.T) {
	where, args := CompileFilters(map[string]string{
		"brand": "Renault",
		"price": "10;50",
	}, false)
	if !strings.HasPrefix(where, "active = 1 AND ") {
		t.Fatalf("where = %q, missing active predicate", where)
	}
	if !strings.Contains(where, ") AND (") {
		t.Fatalf("where = %q, filters not AND-ed", where)
	}
	if len(args) != 3 {
		t.Fatalf("args = %v, want 3 bound values", args)
	}
}

func TestCompileFiltersPrefixStripping(t *testing.T) {
	plain, plainArgs := CompileFilters(map[string]string{"brand": "Renault"}, true)
	prefixed, prefixedArgs := CompileFilters(map[string]string{"Informations_brand": "Renault"}, true)
	if plain != prefixed || !reflect.DeepEqual(plainArgs, prefixedArgs) {
		t.Errorf("prefixed key compiled differently: %q vs %q", plain, prefixed)
	}

	array, _ := CompileFilters(map[string]string{"equipments_list_terms": "gps"}, true)
	if !strings.Contains(array, "JSON_SEARCH") {
		t.Errorf("equipments_list_* key not routed to the array filter: %q", array)
	}
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name      string
		count     int64
		page      int
		perPage   int
		wantPage  int
		wantPer   int
		wantTotal int64
		wantOff   int64
	}{
		{name: "plain first page", count: 100, page: 1, perPage: 10, wantPage: 1, wantPer: 10, wantTotal: 10, wantOff: 0},
		{name: "middle page", count: 100, page: 3, perPage: 10, wantPage: 3, wantPer: 10, wantTotal: 10, wantOff: 20},
		{name: "per_page clamped to count", count: 5, page: 4, perPage: 10, wantPage: 1, wantPer: 5, wantTotal: 1, wantOff: 0},
		{name: "per_page floored at one", count: 10, page: 2, perPage: 0, wantPage: 2, wantPer: 1, wantTotal: 10, wantOff: 1},
		{name: "uneven last page", count: 11, page: 1, perPage: 4, wantPage: 1, wantPer: 4, wantTotal: 3, wantOff: 0},
		{name: "no rows", count: 0, page: 1, perPage: 10, wantPage: 1, wantPer: 10, wantTotal: 0, wantOff: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg, off := NormalizePagination(tt.count, tt.page, tt.perPage)
			if pg.Page != tt.wantPage || pg.PerPage != tt.wantPer {
				t.Errorf("page/per_page = %d/%d, want %d/%d", pg.Page, pg.PerPage, tt.wantPage, tt.wantPer)
			}
			if pg.TotalPage != tt.wantTotal {
				t.Errorf("total_page = %d, want %d", pg.TotalPage, tt.wantTotal)
			}
			if pg.Total != tt.count {
				t.Errorf("total = %d, want %d", pg.Total, tt.count)
			}
			if off != tt.wantOff {
				t.Errorf("offset = %d, want %d", off, tt.wantOff)
			}
		})
	}
}
