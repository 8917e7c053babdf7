package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourorg/listings-api/blobstore"
	"github.com/yourorg/listings-api/geocode"
	"github.com/yourorg/listings-api/internal/store"
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	FindLocationWithin(ctx context.Context, minLat, maxLat, minLng, maxLng float64) (*store.Location, error)
	CreateLocation(ctx context.Context, loc *store.Location) error
	BuilderExists(ctx context.Context, id string) (bool, error)

	GetPropertyByID(ctx context.Context, id string) (*store.Property, error)
	CreateProperty(ctx context.Context, p *store.Property) error
	UpdateProperty(ctx context.Context, p *store.Property) error
	SetPropertyArchived(ctx context.Context, id string, archived bool) error
	SetPropertySold(ctx context.Context, id string, sold bool) error

	GetProjectByID(ctx context.Context, id string) (*store.Project, error)
	CreateProject(ctx context.Context, p *store.Project) error
	UpdateProject(ctx context.Context, p *store.Project) error
	SetProjectArchived(ctx context.Context, id string, archived bool) error
	SetProjectSold(ctx context.Context, id string, sold bool) error
}

// Geocoder resolves free-text addresses; a nil result means "nothing found".
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geocode.Result, error)
}

// Uploader turns base64 payloads into durable URLs.
type Uploader interface {
	UploadOne(ctx context.Context, in blobstore.UploadInput) (string, error)
	UploadMany(ctx context.Context, entityName, category string, base64Images []string) ([]string, error)
}

// Pipeline sequences validation, builder checks, location resolution, media
// uploads and persistence for listing create/update requests. One instance is
// shared by all handlers; it holds no per-request state.
type Pipeline struct {
	Store    Store
	Geocoder Geocoder
	Uploader Uploader
	Log      *zap.Logger
}

func (p *Pipeline) log() *zap.Logger {
	if p.Log != nil {
		return p.Log
	}
	return zap.NewNop()
}

func (p *Pipeline) checkBuilder(ctx context.Context, builderID string) error {
	ok, err := p.Store.BuilderExists(ctx, builderID)
	if err != nil {
		return internalErr(err)
	}
	if !ok {
		return badRequest("Invalid builder ID")
	}
	return nil
}

// uploadSingle uploads one optional base64 payload, returning "" when the
// payload is absent.
func (p *Pipeline) uploadSingle(ctx context.Context, entityID, category, base64Data string) (string, error) {
	if base64Data == "" {
		return "", nil
	}
	url, err := p.Uploader.UploadOne(ctx, blobstore.UploadInput{
		EntityName: entityID,
		Category:   category,
		Base64Data: base64Data,
	})
	if err != nil {
		p.log().Error("upload failed", zap.String("category", category), zap.Error(err))
		return "", uploadFailed(err)
	}
	return url, nil
}

// uploadList truncates the batch to the category ceiling, then uploads.
// Truncation happens before upload so no more than a ceiling's worth of
// uploads is ever attempted.
func (p *Pipeline) uploadList(ctx context.Context, entityID, category string, images []string, ceiling int) ([]string, error) {
	batch := Truncate(images, ceiling)
	if len(batch) == 0 {
		return nil, nil
	}
	urls, err := p.Uploader.UploadMany(ctx, entityID, category, batch)
	if err != nil {
		p.log().Error("upload failed", zap.String("category", category), zap.Error(err))
		return nil, uploadFailed(err)
	}
	return urls, nil
}

// deriveThumbnail picks the listing card thumbnail. Source priority, in
// order: banner URL, first gallery URL, none.
func deriveThumbnail(banner string, gallery []string) string {
	if banner != "" {
		return banner
	}
	if len(gallery) > 0 {
		return gallery[0]
	}
	return ""
}

// combineImageURLs builds the flattened display list stored alongside the
// per-category fields: floorplans, then clubhouse, then gallery.
func combineImageURLs(floorplans, clubhouse, gallery []string) []string {
	out := make([]string, 0, len(floorplans)+len(clubhouse)+len(gallery))
	out = append(out, floorplans...)
	out = append(out, clubhouse...)
	out = append(out, gallery...)
	if len(out) == 0 {
		return nil
	}
	return out
}

func defaultType(t string) string {
	if t == "" {
		return DefaultListingType
	}
	return t
}
