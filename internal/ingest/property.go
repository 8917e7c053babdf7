package ingest

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/listings-api/internal/store"
)

// CreateProperty runs the full ingestion pipeline for a new property and
// returns the persisted entity with its location and builder attached.
func (p *Pipeline) CreateProperty(ctx context.Context, userID string, in PropertyInput) (*store.Property, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}
	if err := p.checkBuilder(ctx, in.BuilderID); err != nil {
		return nil, err
	}
	locationID, err := p.resolveLocation(ctx, in.LocationAddress)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	banner, err := p.uploadSingle(ctx, id, CategoryBanner, in.BannerImageBase64)
	if err != nil {
		return nil, err
	}
	brochure, err := p.uploadSingle(ctx, id, CategoryBrochure, in.BrochureBase64)
	if err != nil {
		return nil, err
	}
	floorplans, err := p.uploadList(ctx, id, CategoryFloorplans, in.FloorplanImagesBase64, MaxFloorplanImages)
	if err != nil {
		return nil, err
	}
	clubhouse, err := p.uploadList(ctx, id, CategoryClubhouse, in.ClubhouseImagesBase64, MaxClubhouseImages)
	if err != nil {
		return nil, err
	}
	gallery, err := p.uploadList(ctx, id, CategoryGallery, in.GalleryImagesBase64, MaxGalleryImages)
	if err != nil {
		return nil, err
	}

	prop := &store.Property{
		ID:                  id,
		Name:                in.Name,
		Description:         in.Description,
		Type:                defaultType(in.Type),
		BuilderID:           in.BuilderID,
		LocationID:          locationID,
		PostedByUserID:      userID,
		BannerImageURL:      banner,
		FloorplanImageURLs:  floorplans,
		ClubhouseImageURLs:  clubhouse,
		GalleryImageURLs:    gallery,
		ThumbnailURL:        deriveThumbnail(banner, gallery),
		ImageURLs:           combineImageURLs(floorplans, clubhouse, gallery),
		WebsiteLink:         in.WebsiteLink,
		BrochureURL:         brochure,
		WalkthroughVideoURL: in.WalkthroughVideoURL,
		Highlights:          in.Highlights,
		Amenities:           in.Amenities,
		IsArchived:          false,
	}
	if err := p.Store.CreateProperty(ctx, prop); err != nil {
		p.log().Error("property insert failed", zap.Error(err))
		return nil, internalErr(err)
	}
	created, err := p.Store.GetPropertyByID(ctx, id)
	if err != nil {
		return nil, internalErr(err)
	}
	return created, nil
}

// UpdateProperty applies an update payload to an existing property. Ownership
// is checked before anything is uploaded or mutated.
func (p *Pipeline) UpdateProperty(ctx context.Context, userID, propertyID string, in PropertyInput) (*store.Property, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, badRequest("Property ID is required")
	}
	existing, err := p.Store.GetPropertyByID(ctx, propertyID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Property not found")
	}
	if err != nil {
		return nil, internalErr(err)
	}
	if existing.PostedByUserID != userID {
		return nil, forbidden("You are not authorized to update this property")
	}
	if err := in.validate(false); err != nil {
		return nil, err
	}
	if err := p.checkBuilder(ctx, in.BuilderID); err != nil {
		return nil, err
	}

	next := *existing
	next.Name = in.Name
	next.Description = in.Description
	next.BuilderID = in.BuilderID
	if in.Type != "" {
		next.Type = in.Type
	}
	if in.LocationAddress != "" {
		locationID, err := p.resolveLocation(ctx, in.LocationAddress)
		if err != nil {
			return nil, err
		}
		next.LocationID = locationID
	}

	keep := in.KeepExistingImages
	banner, err := p.uploadSingle(ctx, existing.ID, CategoryBanner, in.BannerImageBase64)
	if err != nil {
		return nil, err
	}
	next.BannerImageURL = applySingle(existing.BannerImageURL, keep.Banner, banner)

	brochure, err := p.uploadSingle(ctx, existing.ID, CategoryBrochure, in.BrochureBase64)
	if err != nil {
		return nil, err
	}
	next.BrochureURL = applySingle(existing.BrochureURL, keep.Brochure, brochure)

	floorplans, err := p.uploadList(ctx, existing.ID, CategoryFloorplans, in.FloorplanImagesBase64, MaxFloorplanImages)
	if err != nil {
		return nil, err
	}
	next.FloorplanImageURLs = applyList(existing.FloorplanImageURLs, keep.Floorplans, floorplans, MaxFloorplanImages)

	clubhouse, err := p.uploadList(ctx, existing.ID, CategoryClubhouse, in.ClubhouseImagesBase64, MaxClubhouseImages)
	if err != nil {
		return nil, err
	}
	next.ClubhouseImageURLs = applyList(existing.ClubhouseImageURLs, keep.Clubhouse, clubhouse, MaxClubhouseImages)

	gallery, err := p.uploadList(ctx, existing.ID, CategoryGallery, in.GalleryImagesBase64, MaxGalleryImages)
	if err != nil {
		return nil, err
	}
	next.GalleryImageURLs = applyList(existing.GalleryImageURLs, keep.Gallery, gallery, MaxGalleryImages)

	if in.WebsiteLink != "" {
		next.WebsiteLink = in.WebsiteLink
	}
	if in.WalkthroughVideoURL != "" {
		next.WalkthroughVideoURL = in.WalkthroughVideoURL
	}
	if in.Highlights != nil {
		next.Highlights = in.Highlights
	}
	if in.Amenities != nil {
		next.Amenities = in.Amenities
	}

	if err := p.Store.UpdateProperty(ctx, &next); err != nil {
		p.log().Error("property update failed", zap.Error(err))
		return nil, internalErr(err)
	}
	updated, err := p.Store.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, internalErr(err)
	}
	return updated, nil
}

// SetPropertyArchived flips the archive flag; owner-only.
func (p *Pipeline) SetPropertyArchived(ctx context.Context, userID, propertyID string, archived bool) (*store.Property, error) {
	existing, err := p.ownedProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	if err := p.Store.SetPropertyArchived(ctx, existing.ID, archived); err != nil {
		return nil, internalErr(err)
	}
	updated, err := p.Store.GetPropertyByID(ctx, existing.ID)
	if err != nil {
		return nil, internalErr(err)
	}
	return updated, nil
}

// SetPropertySold flips the sold flag; owner-only.
func (p *Pipeline) SetPropertySold(ctx context.Context, userID, propertyID string, sold bool) (*store.Property, error) {
	existing, err := p.ownedProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	if err := p.Store.SetPropertySold(ctx, existing.ID, sold); err != nil {
		return nil, internalErr(err)
	}
	updated, err := p.Store.GetPropertyByID(ctx, existing.ID)
	if err != nil {
		return nil, internalErr(err)
	}
	return updated, nil
}

// GetProperty fetches one property with relations.
func (p *Pipeline) GetProperty(ctx context.Context, propertyID string) (*store.Property, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, badRequest("Property ID is required")
	}
	prop, err := p.Store.GetPropertyByID(ctx, propertyID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Property not found")
	}
	if err != nil {
		return nil, internalErr(err)
	}
	return prop, nil
}

func (p *Pipeline) ownedProperty(ctx context.Context, userID, propertyID string) (*store.Property, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, badRequest("Property ID is required")
	}
	existing, err := p.Store.GetPropertyByID(ctx, propertyID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Property not found")
	}
	if err != nil {
		return nil, internalErr(err)
	}
	if existing.PostedByUserID != userID {
		return nil, forbidden("You are not authorized to update this property")
	}
	return existing, nil
}
