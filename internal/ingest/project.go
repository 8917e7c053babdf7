package ingest

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/listings-api/internal/store"
)

// CreateProject is the project flavor of the create pipeline. Identical to
// CreateProperty except for the extra site-layout category.
func (p *Pipeline) CreateProject(ctx context.Context, userID string, in ProjectInput) (*store.Project, error) {
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
	siteLayout, err := p.uploadList(ctx, id, CategorySiteLayout, in.SiteLayoutImagesBase64, MaxSiteLayoutImages)
	if err != nil {
		return nil, err
	}

	proj := &store.Project{
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
		SiteLayoutImageURLs: siteLayout,
		ThumbnailURL:        deriveThumbnail(banner, gallery),
		ImageURLs:           combineImageURLs(floorplans, clubhouse, gallery),
		WebsiteLink:         in.WebsiteLink,
		BrochureURL:         brochure,
		WalkthroughVideoURL: in.WalkthroughVideoURL,
		Highlights:          in.Highlights,
		Amenities:           in.Amenities,
		IsArchived:          false,
	}
	if err := p.Store.CreateProject(ctx, proj); err != nil {
		p.log().Error("project insert failed", zap.Error(err))
		return nil, internalErr(err)
	}
	created, err := p.Store.GetProjectByID(ctx, id)
	if err != nil {
		return nil, internalErr(err)
	}
	return created, nil
}

// UpdateProject applies an update payload to an existing project. Ownership
// is checked before anything is uploaded or mutated.
func (p *Pipeline) UpdateProject(ctx context.Context, userID, projectID string, in ProjectInput) (*store.Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, badRequest("Project ID is required")
	}
	existing, err := p.Store.GetProjectByID(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Project not found")
	}
	if err != nil {
		return nil, internalErr(err)
	}
	if existing.PostedByUserID != userID {
		return nil, forbidden("You are not authorized to update this project")
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

	siteLayout, err := p.uploadList(ctx, existing.ID, CategorySiteLayout, in.SiteLayoutImagesBase64, MaxSiteLayoutImages)
	if err != nil {
		return nil, err
	}
	next.SiteLayoutImageURLs = applyList(existing.SiteLayoutImageURLs, keep.SiteLayout, siteLayout, MaxSiteLayoutImages)

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

	if err := p.Store.UpdateProject(ctx, &next); err != nil {
		p.log().Error("project update failed", zap.Error(err))
		return nil, internalErr(err)
	}
	updated, err := p.Store.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, internalErr(err)
	}
	return updated, nil
}

// SetProjectArchived flips the archive flag; owner-only.
func (p *Pipeline) SetProjectArchived(ctx context.Context, userID, projectID string, archived bool) (*store.Project, error) {
	existing, err := p.ownedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if err := p.Store.SetProjectArchived(ctx, existing.ID, archived); err != nil {
		return nil, internalErr(err)
	}
	updated, err := p.Store.GetProjectByID(ctx, existing.ID)
	if err != nil {
		return nil, internalErr(err)
	}
	return updated, nil
}

// SetProjectSold flips the sold flag; owner-only.
func (p *Pipeline) SetProjectSold(ctx context.Context, userID, projectID string, sold bool) (*store.Project, error) {
	existing, err := p.ownedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if err := p.Store.SetProjectSold(ctx, existing.ID, sold); err != nil {
		return nil, internalErr(err)
	}
	updated, err := p.Store.GetProjectByID(ctx, existing.ID)
	if err != nil {
		return nil, internalErr(err)
	}
	return updated, nil
}

// GetProject fetches one project with relations.
func (p *Pipeline) GetProject(ctx context.Context, projectID string) (*store.Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, badRequest("Project ID is required")
	}
	proj, err := p.Store.GetProjectByID(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Project not found")
	}
	if err != nil {
		return nil, internalErr(err)
	}
	return proj, nil
}

func (p *Pipeline) ownedProject(ctx context.Context, userID, projectID string) (*store.Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, badRequest("Project ID is required")
	}
	existing, err := p.Store.GetProjectByID(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Project not found")
	}
	if err != nil {
		return nil, internalErr(err)
	}
	if existing.PostedByUserID != userID {
		return nil, forbidden("You are not authorized to update this project")
	}
	return existing, nil
}
