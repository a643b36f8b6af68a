package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"

	"github.com/ateliermartel/garage-api/internal/model"
)

type OfferRepo struct{ DB *sql.DB }

func NewOfferRepo(db *sql.DB) *OfferRepo { return &OfferRepo{DB: db} }

// release_date is truncated to year-month on every read.
const offerCols = "id,name,description,price,DATE_FORMAT(release_date,'%Y-%m'),mileage,active,informations,equipments_list,COALESCE(image,'')"

func scanOffer(row interface{ Scan(...any) error }) (model.Offer, error) {
	var (
		o    model.Offer
		info []byte
		eq   []byte
	)
	err := row.Scan(&o.ID, &o.Name, &o.Description, &o.Price, &o.ReleaseDate,
		&o.Mileage, &o.Active, &info, &eq, &o.Image)
	if err != nil {
		return o, err
	}
	o.Informations = model.DecodeInformations(info)
	o.EquipmentsList = model.DecodeEquipments(eq)
	return o, nil
}

// Search runs the compiled filter query: COUNT first to resolve pagination,
// then the data page with the same WHERE and arguments.
func (r *OfferRepo) Search(ctx context.Context, filters map[string]string, page, perPage int, includeInactive bool) ([]model.Offer, Pagination, error) {
	where, args := CompileFilters(filters, includeInactive)

	var count int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM offers WHERE "+where, args...).Scan(&count); err != nil {
		return nil, Pagination{}, err
	}

	pg, offset := NormalizePagination(count, page, perPage)
	if count == 0 {
		return []model.Offer{}, pg, nil
	}

	dataArgs := append(append([]any{}, args...), pg.PerPage, offset)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+offerCols+" FROM offers WHERE "+where+" ORDER BY id DESC LIMIT ? OFFSET ?",
		dataArgs...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	out := make([]model.Offer, 0, pg.PerPage)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		out = append(out, o)
	}
	return out, pg, rows.Err()
}

// GetByID fetches a single offer.
func (r *OfferRepo) GetByID(ctx context.Context, id uint64) (model.Offer, error) {
	return scanOffer(r.DB.QueryRowContext(ctx,
		"SELECT "+offerCols+" FROM offers WHERE id=? LIMIT 1", id))
}

// Create inserts an offer.  The informations document is marshalled from
// the fixed-key struct, so a subset supplied by the client still persists
// all ten keys with defaults.
func (r *OfferRepo) Create(ctx context.Context, o *model.Offer) (uint64, error) {
	info, err := json.Marshal(o.Informations)
	if err != nil {
		return 0, err
	}
	eq, err := json.Marshal(o.EquipmentsList)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO offers (name, description, price, release_date, mileage, active, informations, equipments_list, image)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		o.Name, o.Description, o.Price, o.ReleaseDate+"-01", o.Mileage, o.Active, info, eq, o.Image)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites all mutable columns of an offer.
func (r *OfferRepo) Update(ctx context.Context, o *model.Offer) error {
	info, err := json.Marshal(o.Informations)
	if err != nil {
		return err
	}
	eq, err := json.Marshal(o.EquipmentsList)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE offers SET name=?, description=?, price=?, release_date=?, mileage=?, active=?, informations=?, equipments_list=? WHERE id=?`,
		o.Name, o.Description, o.Price, o.ReleaseDate+"-01", o.Mileage, o.Active, info, eq, o.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		// distinguish "no such offer" from "nothing changed"
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM offers WHERE id=?", o.ID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes an offer row.  The gallery directory is the handler's
// concern.
func (r *OfferRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM offers WHERE id=?", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// FilterLimit describes the legal value space of one registered filter so
// the frontend can render the right widget without hardcoding it.
type FilterLimit struct {
	Key       string   `json:"key"`
	Component string   `json:"component"`
	Options   []string `json:"options,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	List      []string `json:"list,omitempty"`
}

// FiltersLimits derives the per-filter descriptor from the active offers:
// DISTINCT choices for multi filters, MIN/MAX for range filters, and a
// normalized distinct term list for the array filter.
func (r *OfferRepo) FiltersLimits(ctx context.Context) ([]FilterLimit, error) {
	names := make([]string, 0, len(filterRegistry))
	for name := range filterRegistry {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]FilterLimit, 0, len(names))
	for _, name := range names {
		spec := filterRegistry[name]
		limit := FilterLimit{Key: name, Component: spec.component}
		var err error
		switch spec.kind {
		case kindMulti:
			limit.Options, err = r.distinctValues(ctx, spec.expr)
		case kindRange:
			limit.Min, limit.Max, err = r.minMax(ctx, spec.expr)
		case kindJSONArray:
			limit.List, err = r.distinctEquipments(ctx)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, limit)
	}
	return out, nil
}

func (r *OfferRepo) distinctValues(ctx context.Context, expr string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT DISTINCT "+expr+" FROM offers WHERE active = 1 AND "+expr+" IS NOT NULL ORDER BY 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out, rows.Err()
}

func (r *OfferRepo) minMax(ctx context.Context, expr string) (*float64, *float64, error) {
	var lo, hi sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		"SELECT MIN("+expr+"), MAX("+expr+") FROM offers WHERE active = 1").Scan(&lo, &hi)
	if err != nil {
		return nil, nil, err
	}
	if !lo.Valid || !hi.Valid {
		return nil, nil, nil
	}
	return &lo.Float64, &hi.Float64, nil
}

func (r *OfferRepo) distinctEquipments(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT equipments_list FROM offers WHERE active = 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seen := map[string]string{} // lower-cased -> first-seen casing
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		for _, item := range model.DecodeEquipments(raw) {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			key := strings.ToLower(item)
			if _, ok := seen[key]; !ok {
				seen[key] = item
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}
