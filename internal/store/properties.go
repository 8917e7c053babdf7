package store

import (
	"context"
	"database/sql"
	"errors"
)

const propertyColumns = `
        p.id, p.name, p.description, p.type, p.builder_id, p.location_id, p.posted_by_user_id,
        p.banner_image_url, p.floorplan_image_urls, p.clubhouse_image_urls, p.gallery_image_urls,
        p.thumbnail_url, p.image_urls, p.website_link, p.brochure_url, p.walkthrough_video_url,
        p.highlights, p.amenities, p.is_archived, p.is_sold, p.created_at, p.updated_at,
        l.id, l.city, l.state, l.country, l.zipcode, l.locality, l.neighborhood,
        l.latitude, l.longitude, l.formatted_address, l.created_at,
        b.id, b.name, b.website, b.created_at`

// GetPropertyByID fetches a property with its location and builder attached.
func (s *Store) GetPropertyByID(ctx context.Context, id string) (*Property, error) {
	row := s.DB.QueryRowContext(ctx, `
        SELECT `+propertyColumns+`
        FROM properties p
        JOIN locations l ON l.id = p.location_id
        JOIN builders  b ON b.id = p.builder_id
        WHERE p.id = $1`, id)
	return scanProperty(row)
}

func scanProperty(row *sql.Row) (*Property, error) {
	var (
		p                                      Property
		loc                                    Location
		bld                                    Builder
		floorplans, clubhouse, gallery, images []byte
		highlights, amenities                  []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Type, &p.BuilderID, &p.LocationID, &p.PostedByUserID,
		&p.BannerImageURL, &floorplans, &clubhouse, &gallery,
		&p.ThumbnailURL, &images, &p.WebsiteLink, &p.BrochureURL, &p.WalkthroughVideoURL,
		&highlights, &amenities, &p.IsArchived, &p.IsSold, &p.CreatedAt, &p.UpdatedAt,
		&loc.ID, &loc.City, &loc.State, &loc.Country, &loc.Zipcode, &loc.Locality, &loc.Neighborhood,
		&loc.Latitude, &loc.Longitude, &loc.FormattedAddress, &loc.CreatedAt,
		&bld.ID, &bld.Name, &bld.Website, &bld.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.FloorplanImageURLs = scanStrings(floorplans)
	p.ClubhouseImageURLs = scanStrings(clubhouse)
	p.GalleryImageURLs = scanStrings(gallery)
	p.ImageURLs = scanStrings(images)
	p.Highlights = scanStrings(highlights)
	p.Amenities = scanStrings(amenities)
	p.Location = &loc
	p.Builder = &bld
	return &p, nil
}

func (s *Store) CreateProperty(ctx context.Context, p *Property) error {
	_, err := s.DB.ExecContext(ctx, `
        INSERT INTO properties (
            id, name, description, type, builder_id, location_id, posted_by_user_id,
            banner_image_url, floorplan_image_urls, clubhouse_image_urls, gallery_image_urls,
            thumbnail_url, image_urls, website_link, brochure_url, walkthrough_video_url,
            highlights, amenities, is_archived, is_sold
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		p.ID, p.Name, p.Description, p.Type, p.BuilderID, p.LocationID, p.PostedByUserID,
		p.BannerImageURL, jsonStrings(p.FloorplanImageURLs), jsonStrings(p.ClubhouseImageURLs),
		jsonStrings(p.GalleryImageURLs), p.ThumbnailURL, jsonStrings(p.ImageURLs),
		p.WebsiteLink, p.BrochureURL, p.WalkthroughVideoURL,
		jsonStrings(p.Highlights), jsonStrings(p.Amenities), p.IsArchived, p.IsSold,
	)
	return err
}

// UpdateProperty writes every mutable column; posted_by_user_id and created_at
// are never touched after creation.
func (s *Store) UpdateProperty(ctx context.Context, p *Property) error {
	res, err := s.DB.ExecContext(ctx, `
        UPDATE properties SET
            name = $2, description = $3, type = $4, builder_id = $5, location_id = $6,
            banner_image_url = $7, floorplan_image_urls = $8, clubhouse_image_urls = $9,
            gallery_image_urls = $10, thumbnail_url = $11, image_urls = $12,
            website_link = $13, brochure_url = $14, walkthrough_video_url = $15,
            highlights = $16, amenities = $17, updated_at = now()
        WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Type, p.BuilderID, p.LocationID,
		p.BannerImageURL, jsonStrings(p.FloorplanImageURLs), jsonStrings(p.ClubhouseImageURLs),
		jsonStrings(p.GalleryImageURLs), p.ThumbnailURL, jsonStrings(p.ImageURLs),
		p.WebsiteLink, p.BrochureURL, p.WalkthroughVideoURL,
		jsonStrings(p.Highlights), jsonStrings(p.Amenities),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetPropertyArchived(ctx context.Context, id string, archived bool) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE properties SET is_archived = $2, updated_at = now() WHERE id = $1`, id, archived)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetPropertySold(ctx context.Context, id string, sold bool) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE properties SET is_sold = $2, updated_at = now() WHERE id = $1`, id, sold)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
