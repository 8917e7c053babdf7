package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil { return nil, err }
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS builders (
            id          UUID PRIMARY KEY,
            name        TEXT NOT NULL,
            website     TEXT NOT NULL DEFAULT '',
            created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS locations (
            id                 UUID PRIMARY KEY,
            city               TEXT NOT NULL DEFAULT '',
            state              TEXT NOT NULL DEFAULT '',
            country            TEXT NOT NULL DEFAULT '',
            zipcode            TEXT NOT NULL DEFAULT '',
            locality           TEXT NOT NULL DEFAULT '',
            neighborhood       TEXT NOT NULL DEFAULT '',
            latitude           DOUBLE PRECISION NOT NULL,
            longitude          DOUBLE PRECISION NOT NULL,
            formatted_address  TEXT NOT NULL DEFAULT '',
            created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_locations_coords ON locations(latitude, longitude);`,
		`CREATE TABLE IF NOT EXISTS properties (
            id                     UUID PRIMARY KEY,
            name                   TEXT NOT NULL,
            description            TEXT NOT NULL,
            type                   TEXT NOT NULL,
            builder_id             UUID NOT NULL REFERENCES builders(id),
            location_id            UUID NOT NULL REFERENCES locations(id),
            posted_by_user_id      UUID NOT NULL,
            banner_image_url       TEXT NOT NULL DEFAULT '',
            floorplan_image_urls   JSONB NOT NULL DEFAULT '[]',
            clubhouse_image_urls   JSONB NOT NULL DEFAULT '[]',
            gallery_image_urls     JSONB NOT NULL DEFAULT '[]',
            thumbnail_url          TEXT NOT NULL DEFAULT '',
            image_urls             JSONB NOT NULL DEFAULT '[]',
            website_link           TEXT NOT NULL DEFAULT '',
            brochure_url           TEXT NOT NULL DEFAULT '',
            walkthrough_video_url  TEXT NOT NULL DEFAULT '',
            highlights             JSONB NOT NULL DEFAULT '[]',
            amenities              JSONB NOT NULL DEFAULT '[]',
            is_archived            BOOLEAN NOT NULL DEFAULT false,
            is_sold                BOOLEAN NOT NULL DEFAULT false,
            created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_properties_owner ON properties(posted_by_user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_properties_location ON properties(location_id);`,
		`CREATE TABLE IF NOT EXISTS projects (
            id                      UUID PRIMARY KEY,
            name                    TEXT NOT NULL,
            description             TEXT NOT NULL,
            type                    TEXT NOT NULL,
            builder_id              UUID NOT NULL REFERENCES builders(id),
            location_id             UUID NOT NULL REFERENCES locations(id),
            posted_by_user_id       UUID NOT NULL,
            banner_image_url        TEXT NOT NULL DEFAULT '',
            floorplan_image_urls    JSONB NOT NULL DEFAULT '[]',
            clubhouse_image_urls    JSONB NOT NULL DEFAULT '[]',
            gallery_image_urls      JSONB NOT NULL DEFAULT '[]',
            site_layout_image_urls  JSONB NOT NULL DEFAULT '[]',
            thumbnail_url           TEXT NOT NULL DEFAULT '',
            image_urls              JSONB NOT NULL DEFAULT '[]',
            website_link            TEXT NOT NULL DEFAULT '',
            brochure_url            TEXT NOT NULL DEFAULT '',
            walkthrough_video_url   TEXT NOT NULL DEFAULT '',
            highlights              JSONB NOT NULL DEFAULT '[]',
            amenities               JSONB NOT NULL DEFAULT '[]',
            is_archived             BOOLEAN NOT NULL DEFAULT false,
            is_sold                 BOOLEAN NOT NULL DEFAULT false,
            created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at              TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(posted_by_user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_projects_location ON projects(location_id);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil { return err }
	}
	return nil
}
