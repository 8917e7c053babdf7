package store

import (
	"context"
	"database/sql"
	"errors"
)

const projectColumns = `
        p.id, p.name, p.description, p.type, p.builder_id, p.location_id, p.posted_by_user_id,
        p.banner_image_url, p.floorplan_image_urls, p.clubhouse_image_urls, p.gallery_image_urls,
        p.site_layout_image_urls, p.thumbnail_url, p.image_urls, p.website_link, p.brochure_url,
        p.walkthrough_video_url, p.highlights, p.amenities, p.is_archived, p.is_sold,
        p.created_at, p.updated_at,
        l.id, l.city, l.state, l.country, l.zipcode, l.locality, l.neighborhood,
        l.latitude, l.longitude, l.formatted_address, l.created_at,
        b.id, b.name, b.website, b.created_at`

// GetProjectByID fetches a project with its location and builder attached.
func (s *Store) GetProjectByID(ctx context.Context, id string) (*Project, error) {
	row := s.DB.QueryRowContext(ctx, `
        SELECT `+projectColumns+`
        FROM projects p
        JOIN locations l ON l.id = p.location_id
        JOIN builders  b ON b.id = p.builder_id
        WHERE p.id = $1`, id)
	return scanProject(row)
}

func scanProject(row *sql.Row) (*Project, error) {
	var (
		p                                                  Project
		loc                                                Location
		bld                                                Builder
		floorplans, clubhouse, gallery, siteLayout, images []byte
		highlights, amenities                              []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Type, &p.BuilderID, &p.LocationID, &p.PostedByUserID,
		&p.BannerImageURL, &floorplans, &clubhouse, &gallery,
		&siteLayout, &p.ThumbnailURL, &images, &p.WebsiteLink, &p.BrochureURL,
		&p.WalkthroughVideoURL, &highlights, &amenities, &p.IsArchived, &p.IsSold,
		&p.CreatedAt, &p.UpdatedAt,
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
	p.SiteLayoutImageURLs = scanStrings(siteLayout)
	p.ImageURLs = scanStrings(images)
	p.Highlights = scanStrings(highlights)
	p.Amenities = scanStrings(amenities)
	p.Location = &loc
	p.Builder = &bld
	return &p, nil
}

func (s *Store) CreateProject(ctx context.Context, p *Project) error {
	_, err := s.DB.ExecContext(ctx, `
        INSERT INTO projects (
            id, name, description, type, builder_id, location_id, posted_by_user_id,
            banner_image_url, floorplan_image_urls, clubhouse_image_urls, gallery_image_urls,
            site_layout_image_urls, thumbnail_url, image_urls, website_link, brochure_url,
            walkthrough_video_url, highlights, amenities, is_archived, is_sold
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		p.ID, p.Name, p.Description, p.Type, p.BuilderID, p.LocationID, p.PostedByUserID,
		p.BannerImageURL, jsonStrings(p.FloorplanImageURLs), jsonStrings(p.ClubhouseImageURLs),
		jsonStrings(p.GalleryImageURLs), jsonStrings(p.SiteLayoutImageURLs), p.ThumbnailURL,
		jsonStrings(p.ImageURLs), p.WebsiteLink, p.BrochureURL, p.WalkthroughVideoURL,
		jsonStrings(p.Highlights), jsonStrings(p.Amenities), p.IsArchived, p.IsSold,
	)
	return err
}

func (s *Store) UpdateProject(ctx context.Context, p *Project) error {
	res, err := s.DB.ExecContext(ctx, `
        UPDATE projects SET
            name = $2, description = $3, type = $4, builder_id = $5, location_id = $6,
            banner_image_url = $7, floorplan_image_urls = $8, clubhouse_image_urls = $9,
            gallery_image_urls = $10, site_layout_image_urls = $11, thumbnail_url = $12,
            image_urls = $13, website_link = $14, brochure_url = $15,
            walkthrough_video_url = $16, highlights = $17, amenities = $18, updated_at = now()
        WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Type, p.BuilderID, p.LocationID,
		p.BannerImageURL, jsonStrings(p.FloorplanImageURLs), jsonStrings(p.ClubhouseImageURLs),
		jsonStrings(p.GalleryImageURLs), jsonStrings(p.SiteLayoutImageURLs), p.ThumbnailURL,
		jsonStrings(p.ImageURLs), p.WebsiteLink, p.BrochureURL, p.WalkthroughVideoURL,
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

func (s *Store) SetProjectArchived(ctx context.Context, id string, archived bool) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE projects SET is_archived = $2, updated_at = now() WHERE id = $1`, id, archived)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetProjectSold(ctx context.Context, id string, sold bool) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE projects SET is_sold = $2, updated_at = now() WHERE id = $1`, id, sold)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
