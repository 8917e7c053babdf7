package ingest

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/listings-api/internal/store"
)

// CoordTolerance is the half-width in degrees of the location dedup window
// (~11m at the equator). Two geocoded points within this box on both axes are
// treated as the same place. The box is axis-aligned, not a geodesic radius;
// false negatives near the corners are accepted.
const CoordTolerance = 0.0001

// DefaultCountry fills in for geocoder results that omit the country.
const DefaultCountry = "India"

// resolveLocation geocodes the address and finds-or-creates the deduplicated
// location row. Existing rows are returned as-is, never refreshed from the
// new geocode result. The search-then-create window is not synchronized:
// concurrent calls for near-identical addresses can both miss and create two
// near-duplicate rows (accepted limitation).
func (p *Pipeline) resolveLocation(ctx context.Context, address string) (string, error) {
	res, err := p.Geocoder.Geocode(ctx, address)
	if err != nil {
		p.log().Error("geocode call failed", zap.String("address", address), zap.Error(err))
		return "", internalErr(err)
	}
	if res == nil {
		return "", badRequest("Could not geocode the provided address")
	}

	existing, err := p.Store.FindLocationWithin(ctx,
		res.Latitude-CoordTolerance, res.Latitude+CoordTolerance,
		res.Longitude-CoordTolerance, res.Longitude+CoordTolerance,
	)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", internalErr(err)
	}

	country := res.Country
	if country == "" {
		country = DefaultCountry
	}
	loc := &store.Location{
		ID:               uuid.NewString(),
		City:             res.City,
		State:            res.State,
		Country:          country,
		Zipcode:          res.Zipcode,
		Locality:         res.Locality,
		Neighborhood:     res.Neighborhood,
		Latitude:         res.Latitude,
		Longitude:        res.Longitude,
		FormattedAddress: res.FormattedAddress,
	}
	if err := p.Store.CreateLocation(ctx, loc); err != nil {
		return "", internalErr(err)
	}
	return loc.ID, nil
}
