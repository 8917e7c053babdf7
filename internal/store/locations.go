package store

import (
	"context"
	"database/sql"
	"errors"
)

// FindLocationWithin returns the first location whose coordinates fall inside
// the given bounding box, or ErrNotFound. The box is the caller's tolerance
// window; matching is axis-aligned, not great-circle.
func (s *Store) FindLocationWithin(ctx context.Context, minLat, maxLat, minLng, maxLng float64) (*Location, error) {
	row := s.DB.QueryRowContext(ctx, `
        SELECT id, city, state, country, zipcode, locality, neighborhood,
               latitude, longitude, formatted_address, created_at
        FROM locations
        WHERE latitude BETWEEN $1 AND $2
          AND longitude BETWEEN $3 AND $4
        ORDER BY created_at
        LIMIT 1`,
		minLat, maxLat, minLng, maxLng,
	)
	var loc Location
	err := row.Scan(&loc.ID, &loc.City, &loc.State, &loc.Country, &loc.Zipcode,
		&loc.Locality, &loc.Neighborhood, &loc.Latitude, &loc.Longitude,
		&loc.FormattedAddress, &loc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *Store) CreateLocation(ctx context.Context, loc *Location) error {
	_, err := s.DB.ExecContext(ctx, `
        INSERT INTO locations (id, city, state, country, zipcode, locality, neighborhood,
                               latitude, longitude, formatted_address)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		loc.ID, loc.City, loc.State, loc.Country, loc.Zipcode, loc.Locality,
		loc.Neighborhood, loc.Latitude, loc.Longitude, loc.FormattedAddress,
	)
	return err
}
