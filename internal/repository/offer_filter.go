package repository

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// The offer listing accepts an open-ended map of filter name -> raw value
// from the client.  Only names present in the registry below can ever reach
// the SQL text; values are always bound as parameters.  That whitelist is
// the injection defense for filter columns.
//
// Three strategies exist:
//   kindMulti     comma-separated value list, exact or substring match
//   kindRange     "min;max" numeric range, bounds swapped when reversed
//   kindJSONArray substring search inside a JSON array column
//
// Fragments of one filter's own value list are joined with OR; fragments of
// different filter names are joined with AND.  Non-privileged callers get
// `active = 1` on top.

type filterKind int

const (
	kindMulti filterKind = iota
	kindRange
	kindJSONArray
)

// filterSpec is one registry entry: the strategy, the SQL expression the
// value lives in, and how to match or coerce it.  Component is the widget
// hint returned by the filter-limits endpoint.
type filterSpec struct {
	kind      filterKind
	expr      string // SQL expression producing the filtered value
	exact     bool   // kindMulti: equality instead of substring
	float     bool   // kindRange: coerce bounds as float instead of int
	component string // UI hint: input | select | range | autocomplete
}

// infoText extracts a string value from the informations JSON document.
func infoText(key string) string {
	return "JSON_UNQUOTE(JSON_EXTRACT(informations, '$." + key + "'))"
}

// infoInt extracts a numeric value from the informations JSON document.
func infoInt(key string) string {
	return "CAST(JSON_EXTRACT(informations, '$." + key + "') AS SIGNED)"
}

// filterRegistry is the fixed whitelist of client filter names.  Keys are
// the canonical names after prefix stripping.
var filterRegistry = map[string]filterSpec{
	"name":            {kind: kindMulti, expr: "name", component: "input"},
	"brand":           {kind: kindMulti, expr: infoText("brand"), component: "select"},
	"model":           {kind: kindMulti, expr: infoText("model"), component: "select"},
	"color":           {kind: kindMulti, expr: infoText("color"), component: "select"},
	"fuel":            {kind: kindMulti, expr: infoText("fuel"), exact: true, component: "select"},
	"type":            {kind: kindMulti, expr: infoText("type"), exact: true, component: "select"},
	"gearbox":         {kind: kindMulti, expr: infoText("gearbox"), exact: true, component: "select"},
	"doors":           {kind: kindMulti, expr: infoInt("doors"), exact: true, component: "select"},
	"sites":           {kind: kindMulti, expr: infoInt("sites"), exact: true, component: "select"},
	"din":             {kind: kindRange, expr: infoInt("din"), component: "range"},
	"fiscal":          {kind: kindRange, expr: infoInt("fiscal"), component: "range"},
	"price":           {kind: kindRange, expr: "price", float: true, component: "range"},
	"mileage":         {kind: kindRange, expr: "mileage", component: "range"},
	"release_date":    {kind: kindRange, expr: "YEAR(release_date)", component: "range"},
	"equipments_list": {kind: kindJSONArray, expr: "equipments_list", component: "autocomplete"},
}

// canonicalFilterName lower-cases a client key and strips the UI prefixes so
// "Informations_brand" resolves to "brand" and any "equipments_list*" key
// resolves to the array filter.
func canonicalFilterName(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if strings.HasPrefix(key, "equipments_list") {
		return "equipments_list"
	}
	return strings.TrimPrefix(key, "informations_")
}

// CompileFilters turns the client filter map into a WHERE clause body and
// its bound arguments.  Unknown names are silently dropped.  When
// includeInactive is false the `active = 1` predicate is AND-ed on top so
// anonymous callers only ever see published offers.
func CompileFilters(filters map[string]string, includeInactive bool) (string, []any) {
	names := make([]string, 0, len(filters))
	byName := make(map[string]string, len(filters))
	for k, v := range filters {
		name := canonicalFilterName(k)
		if _, ok := filterRegistry[name]; !ok {
			continue // whitelist: unknown names never influence the query
		}
		if _, dup := byName[name]; !dup {
			names = append(names, name)
		}
		byName[name] = v
	}
	sort.Strings(names) // deterministic SQL for identical filter maps

	conds := []string{}
	args := []any{}
	for _, name := range names {
		spec := filterRegistry[name]
		var frag string
		var fragArgs []any
		switch spec.kind {
		case kindMulti:
			frag, fragArgs = multiFragment(spec, byName[name])
		case kindRange:
			frag, fragArgs = rangeFragment(spec, byName[name])
		case kindJSONArray:
			frag, fragArgs = jsonArrayFragment(spec, byName[name])
		}
		if frag == "" {
			continue
		}
		conds = append(conds, frag)
		args = append(args, fragArgs...)
	}

	where := strings.Join(conds, " AND ")
	if !includeInactive {
		if where == "" {
			where = "active = 1"
		} else {
			where = "active = 1 AND " + where
		}
	}
	if where == "" {
		where = "1=1"
	}
	return where, args
}

// multiFragment builds the OR group for a comma-separated value list.
// Exact filters compare directly; inexact ones do a case-insensitive
// substring match.
func multiFragment(spec filterSpec, raw string) (string, []any) {
	parts := []string{}
	args := []any{}
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if spec.exact {
			parts = append(parts, spec.expr+" = ?")
			args = append(args, v)
		} else {
			parts = append(parts, "LOWER("+spec.expr+") LIKE ?")
			args = append(args, "%"+strings.ToLower(v)+"%")
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// rangeFragment builds the inclusive bounds predicate for a "min;max"
// value.  Reversed bounds are swapped rather than rejected.
func rangeFragment(spec filterSpec, raw string) (string, []any) {
	bounds := strings.SplitN(raw, ";", 2)
	if len(bounds) != 2 {
		return "", nil
	}
	if spec.float {
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
		if err1 != nil || err2 != nil {
			return "", nil
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return fmt.Sprintf("(%s >= ? AND %s <= ?)", spec.expr, spec.expr), []any{lo, hi}
	}
	lo, err1 := strconv.ParseInt(strings.TrimSpace(bounds[0]), 10, 64)
	hi, err2 := strconv.ParseInt(strings.TrimSpace(bounds[1]), 10, 64)
	if err1 != nil || err2 != nil {
		return "", nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("(%s >= ? AND %s <= ?)", spec.expr, spec.expr), []any{lo, hi}
}

// jsonArrayFragment matches comma-separated terms anywhere inside a JSON
// array column.
func jsonArrayFragment(spec filterSpec, raw string) (string, []any) {
	parts := []string{}
	args := []any{}
	for _, term := range strings.Split(raw, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		parts = append(parts, "JSON_SEARCH(LOWER("+spec.expr+"), 'all', ?) IS NOT NULL")
		args = append(args, "%"+strings.ToLower(term)+"%")
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// Pagination carries the resolved paging values returned alongside a result
// page.
type Pagination struct {
	Page      int   `json:"page"`
	PerPage   int   `json:"per_page"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NormalizePagination resolves the requested page/per_page against the row
// count: per_page is floored at 1 and clamped to the count (resetting to
// page 1 when clamped), total_page is ceil(count/per_page).
func NormalizePagination(count int64, page, perPage int) (Pagination, int64) {
	if perPage < 1 {
		perPage = 1
	}
	if count > 0 && int64(perPage) > count {
		perPage = int(count)
		page = 1
	}
	if page < 1 {
		page = 1
	}
	totalPage := int64(0)
	if count > 0 {
		totalPage = (count + int64(perPage) - 1) / int64(perPage)
	}
	offset := int64(page-1) * int64(perPage)
	return Pagination{Page: page, PerPage: perPage, Total: count, TotalPage: totalPage}, offset
}
