package territory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// LoadChecks reads territory checks from the backend of record. This side
// only ever reads; check writes belong to the booking backend. When states is
// non-empty the load is restricted to those state codes, which is how the CLI
// tools avoid pulling the whole country for a single-scope question.
//
// Rows with a null or empty state are skipped rather than failing the load;
// garbage ZIPs are filtered later by NewDataset.
func LoadChecks(ctx context.Context, db *gorm.DB, states []string) ([]Check, error) {
	query := `
		SELECT id, raw_location, state, county, city, zip,
		       lat, lng, verdict, service_radius_mi, checked_at
		FROM territory.checks
	`
	var args []interface{}
	if len(states) > 0 {
		normed := make([]string, 0, len(states))
		for _, s := range states {
			if n := normState(s); n != "" {
				normed = append(normed, n)
			}
		}
		query += ` WHERE state = ANY($1)`
		args = append(args, pq.Array(normed))
	}

	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("check load query failed: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var (
			id            uuid.UUID
			rawLocation   sql.NullString
			state         sql.NullString
			county        sql.NullString
			city          sql.NullString
			zip           sql.NullString
			lat, lng      sql.NullFloat64
			verdict       sql.NullString
			serviceRadius sql.NullFloat64
			checkedAt     sql.NullTime
		)
		if err := rows.Scan(&id, &rawLocation, &state, &county, &city, &zip,
			&lat, &lng, &verdict, &serviceRadius, &checkedAt); err != nil {
			// One bad row should undercount, not kill the snapshot.
			continue
		}
		if !state.Valid || state.String == "" {
			continue
		}
		c := Check{
			ID:          id,
			RawLocation: rawLocation.String,
			State:       state.String,
			County:      county.String,
			City:        city.String,
			Zip:         zip.String,
			Verdict:     verdict.String,
		}
		if lat.Valid && lng.Valid {
			c.Coordinate = &Coordinate{Lat: lat.Float64, Lng: lng.Float64}
		}
		if serviceRadius.Valid {
			v := serviceRadius.Float64
			c.ServiceRadiusMi = &v
		}
		if checkedAt.Valid {
			c.CheckedAt = checkedAt.Time
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("check load scan: %w", err)
	}
	return checks, nil
}
