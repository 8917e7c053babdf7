package ingest

// KeepExistingImages carries the per-category keep flags of an update payload.
// Pointers distinguish "flag absent" (category untouched unless new uploads
// arrive) from an explicit false (replace, or clear when nothing new comes).
type KeepExistingImages struct {
	Banner     *bool `json:"banner,omitempty"`
	Brochure   *bool `json:"brochure,omitempty"`
	Floorplans *bool `json:"floorplans,omitempty"`
	Clubhouse  *bool `json:"clubhouse,omitempty"`
	Gallery    *bool `json:"gallery,omitempty"`
	SiteLayout *bool `json:"siteLayout,omitempty"`
}

// PropertyInput is the typed request body shared by property create and
// update. It is decoded once at the HTTP boundary and validated here.
type PropertyInput struct {
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	Type                  string             `json:"type,omitempty"`
	BuilderID             string             `json:"builderId"`
	LocationAddress       string             `json:"locationAddress,omitempty"`
	WebsiteLink           string             `json:"websiteLink,omitempty"`
	WalkthroughVideoURL   string             `json:"walkthroughVideoUrl,omitempty"`
	Highlights            []string           `json:"highlights,omitempty"`
	Amenities             []string           `json:"amenities,omitempty"`
	BannerImageBase64     string             `json:"bannerImageBase64,omitempty"`
	BrochureBase64        string             `json:"brochureBase64,omitempty"`
	FloorplanImagesBase64 []string           `json:"floorplanImagesBase64,omitempty"`
	ClubhouseImagesBase64 []string           `json:"clubhouseImagesBase64,omitempty"`
	GalleryImagesBase64   []string           `json:"galleryImagesBase64,omitempty"`
	KeepExistingImages    KeepExistingImages `json:"keepExistingImages,omitempty"`
}

func (in PropertyInput) validate(requireLocation bool) error {
	if in.Name == "" || in.Description == "" || in.BuilderID == "" {
		return badRequest("Missing required fields")
	}
	if requireLocation && in.LocationAddress == "" {
		return badRequest("Missing required fields")
	}
	return nil
}

// ProjectInput is the project flavor; projects additionally carry a
// site-layout category.
type ProjectInput struct {
	Name                   string             `json:"name"`
	Description            string             `json:"description"`
	Type                   string             `json:"type,omitempty"`
	BuilderID              string             `json:"builderId"`
	LocationAddress        string             `json:"locationAddress,omitempty"`
	WebsiteLink            string             `json:"websiteLink,omitempty"`
	WalkthroughVideoURL    string             `json:"walkthroughVideoUrl,omitempty"`
	Highlights             []string           `json:"highlights,omitempty"`
	Amenities              []string           `json:"amenities,omitempty"`
	BannerImageBase64      string             `json:"bannerImageBase64,omitempty"`
	BrochureBase64         string             `json:"brochureBase64,omitempty"`
	FloorplanImagesBase64  []string           `json:"floorplanImagesBase64,omitempty"`
	ClubhouseImagesBase64  []string           `json:"clubhouseImagesBase64,omitempty"`
	GalleryImagesBase64    []string           `json:"galleryImagesBase64,omitempty"`
	SiteLayoutImagesBase64 []string           `json:"siteLayoutImagesBase64,omitempty"`
	KeepExistingImages     KeepExistingImages `json:"keepExistingImages,omitempty"`
}

func (in ProjectInput) validate(requireLocation bool) error {
	if in.Name == "" || in.Description == "" || in.BuilderID == "" {
		return badRequest("Missing required fields")
	}
	if requireLocation && in.LocationAddress == "" {
		return badRequest("Missing required fields")
	}
	return nil
}
